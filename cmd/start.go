package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"dependency-manager/core/loader"
	"dependency-manager/core/logger"
	"dependency-manager/core/middleware/auth"
	"dependency-manager/core/middleware/rayid"

	"dependency-manager/feature/history"
	"dependency-manager/feature/modernize"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the dependency report server",
	Long:  `Starts the HTTP server exposing pass history, dry-run plans and modernization suggestions.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load configuration and wire collaborators
		a, err := newApp()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := a.log
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 3. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(history.NewFeature(a.store, a.spec, a.cfg.Server.PlanTTL, logg))
		mgr.Register(modernize.NewFeature(a.tracked))

		// 4. RayID (must be first to trace everything)
		app.Use(rayid.New())

		// 5. Request logging
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 6. Auth
		if a.cfg.Server.AuthEnabled() {
			app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))
		} else {
			logg.Warn("Server API key is empty, requests are not authenticated")
		}

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
