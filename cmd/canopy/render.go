package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy"
	"github.com/canopyhq/canopy/pkg/domain"
	htmlrender "github.com/canopyhq/canopy/pkg/render/html"
)

var renderCmd = &cobra.Command{
	Use:   "render [messages.json]",
	Short: "Apply a message stream from a file and print the rendered surface",
	Long: `Reads a JSON array of protocol messages from the given file (or stdin when
the argument is "-" or omitted), applies it to a fresh engine, and prints the
rendered surface to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		surfaceID, _ := cmd.Flags().GetString("surface")
		format, _ := cmd.Flags().GetString("format")
		baseURL, _ := cmd.Flags().GetString("base-url")

		messages, err := readMessages(args)
		if err != nil {
			return err
		}

		ctx := context.Background()
		engine := canopy.New()
		if err := engine.ApplyAll(ctx, messages); err != nil {
			return fmt.Errorf("failed to apply messages: %w", err)
		}

		full, _ := cmd.Flags().GetBool("full")

		for _, renderer := range engine.Renderers(baseURL) {
			if renderer.Backend() != format {
				continue
			}
			out, err := renderer.RenderSurface(ctx, surfaceID)
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			if full && format == "html" {
				out = fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n<style>\n%s</style>\n</head>\n<body>\n%s\n</body>\n</html>\n", htmlrender.CSS(), out)
			}
			fmt.Fprint(os.Stdout, out)
			return nil
		}
		return fmt.Errorf("unknown format %q (supported: html, markdown)", format)
	},
}

func readMessages(args []string) ([]domain.Message, error) {
	var reader io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open messages file: %w", err)
		}
		defer f.Close()
		reader = f
	}

	var messages []domain.Message
	if err := json.NewDecoder(reader).Decode(&messages); err != nil {
		return nil, fmt.Errorf("invalid message stream: %w", err)
	}
	return messages, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("surface", "s", domain.DefaultSurfaceID, "Surface id to render")
	renderCmd.Flags().StringP("format", "f", "html", "Output format: 'html' or 'markdown'")
	renderCmd.Flags().String("base-url", "", "Base URL for relative image sources")
	renderCmd.Flags().Bool("full", false, "Wrap HTML output in a full page with the default stylesheet")
}
