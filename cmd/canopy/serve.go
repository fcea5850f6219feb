package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canopyhq/canopy"
	httpAdapter "github.com/canopyhq/canopy/internal/adapters/http"
	redisAdapter "github.com/canopyhq/canopy/internal/adapters/redis"
	"github.com/canopyhq/canopy/internal/config"
	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/pkg/adapters/memory"
	"github.com/canopyhq/canopy/pkg/persistence/middleware"
	"github.com/canopyhq/canopy/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the surface state HTTP server",
	Long: `Starts the Canopy engine in server mode, accepting protocol messages on
POST /v0/messages and serving rendered surfaces on GET /v0/surfaces/{id}/view.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		if cmd.Flags().Changed("listen") {
			cfg.Listen, _ = cmd.Flags().GetString("listen")
		}
		if cmd.Flags().Changed("static") {
			cfg.StaticDir, _ = cmd.Flags().GetString("static")
		}
		if cmd.Flags().Changed("redis") {
			cfg.Redis.Addr, _ = cmd.Flags().GetString("redis")
		}

		logger := logging.New(cfg.LogLevel)

		var store ports.SurfaceStore
		if cfg.Redis.Addr != "" {
			var redisOpts []redisAdapter.Option
			if cfg.Redis.Prefix != "" {
				redisOpts = append(redisOpts, redisAdapter.WithPrefix(cfg.Redis.Prefix))
			}
			if cfg.Redis.TTL > 0 {
				redisOpts = append(redisOpts, redisAdapter.WithTTL(cfg.Redis.TTL))
			}
			rs := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisOpts...)
			defer rs.Close()
			store = rs
			logger.Info("Using Redis surface store", "addr", cfg.Redis.Addr)
		} else {
			store = memory.New()
		}
		store = middleware.Chain(store,
			middleware.NewLoggingMiddleware(logger),
			middleware.NewInstrumentationMiddleware(),
		)

		engine := canopy.New(
			canopy.WithLogger(logger),
			canopy.WithStore(store),
		)

		handler := httpAdapter.NewHandler(engine, engine.Renderers(cfg.BaseURL),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithStaticDir(cfg.StaticDir),
			httpAdapter.WithCORSOrigin(cfg.CORSOrigin),
		)

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Canopy Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Canopy Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":10004", "Address to listen on")
	serveCmd.Flags().String("static", "", "Directory of static assets to serve at /")
	serveCmd.Flags().String("redis", "", "Redis address for persistent surface state (empty = in-memory)")
}
