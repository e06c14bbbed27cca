package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jjenkins/gazette/internal/handlers"
	"github.com/jjenkins/gazette/internal/query"
	"github.com/jjenkins/gazette/internal/service"
)

const sessionIdle = 2 * time.Hour

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gazette search web server",
	Long: `Start the web server to search, filter, page through and export legal
notices. Set reload in the config file (or GAZETTE_RELOAD) to a cron
expression to refresh the notices while serving.`,
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		load, closeSource, err := snapshotSource(cfg)
		if err != nil {
			log.Fatalf("Failed to open notice source: %v", err)
		}
		defer closeSource()

		engine := query.NewEngine(nil)
		reloader := service.NewReloader(engine, load)
		if err := reloader.Reload(ctx); err != nil {
			log.Fatalf("Failed to load notices: %v", err)
		}

		sessions := handlers.NewSessions()

		scheduler := cron.New()
		if cfg.Reload != "" {
			_, err := scheduler.AddFunc(cfg.Reload, func() {
				// Failures are logged by the reloader
				_ = reloader.Reload(ctx)
			})
			if err != nil {
				log.Fatalf("Invalid reload schedule: %v", err)
			}
			log.Printf("Reloading notices on schedule %q", cfg.Reload)
		}
		_, err = scheduler.AddFunc("@every 10m", func() {
			if n := sessions.Prune(sessionIdle); n > 0 {
				log.Printf("Pruned %d idle sessions", n)
			}
		})
		if err != nil {
			log.Fatalf("Failed to schedule session pruning: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		app := fiber.New(fiber.Config{
			AppName:   "Gazette Search",
			Immutable: true,
		})

		app.Use(recover.New())
		app.Use(logger.New())
		app.Use(compress.New())

		// Routes
		app.Get("/", handlers.SearchHandler(engine, sessions))
		app.Get("/export", handlers.ExportHandler(engine))
		app.Get("/healthz", handlers.HealthHandler(engine, sessions))

		// Handle interrupt signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			log.Println("Received interrupt signal, shutting down...")
			cancel()
			if err := app.Shutdown(); err != nil {
				log.Printf("Error shutting down server: %v", err)
			}
		}()

		log.Printf("Starting server on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
