package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/canopyhq/canopy"
	"github.com/canopyhq/canopy/internal/presentation/tui"
	"github.com/canopyhq/canopy/pkg/domain"
)

var viewCmd = &cobra.Command{
	Use:   "view [messages.json]",
	Short: "Preview a surface in the terminal",
	Long: `Like render, but styled for humans: the surface is rendered to Markdown and
pretty-printed when stdout is a terminal. Piped output stays plain Markdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		surfaceID, _ := cmd.Flags().GetString("surface")

		messages, err := readMessages(args)
		if err != nil {
			return err
		}

		ctx := context.Background()
		engine := canopy.New()
		if err := engine.ApplyAll(ctx, messages); err != nil {
			return fmt.Errorf("failed to apply messages: %w", err)
		}

		var out string
		for _, renderer := range engine.Renderers("") {
			if renderer.Backend() != "markdown" {
				continue
			}
			out, err = renderer.RenderSurface(ctx, surfaceID)
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprint(os.Stdout, out)
			return nil
		}

		tui.PrintBanner(canopy.Version)
		pretty := tui.NewRenderer()
		styled, err := pretty(out)
		if err != nil {
			// Glamour failures should not hide the content.
			fmt.Fprint(os.Stdout, out)
			return nil
		}
		fmt.Fprint(os.Stdout, styled)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringP("surface", "s", domain.DefaultSurfaceID, "Surface id to preview")
}
