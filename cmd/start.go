package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asset-inventory/core/loader"
	"asset-inventory/core/logger"
	"asset-inventory/core/middleware/auth"
	"asset-inventory/core/middleware/rayid"
	"asset-inventory/core/storage"

	"asset-inventory/feature/criticality"
	"asset-inventory/feature/evidence"
	"asset-inventory/feature/integrity"
	"asset-inventory/feature/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "asset-inventory/docs/swagger"
)

// @title Asset Inventory API
// @version 1.0
// @description Criticality scoring, audit ledger and evidence storage for IT assets.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the asset inventory server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Config, logger, database
		rt, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := rt.store.Migrate(cmd.Context()); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}
		if seeded, err := rt.store.SeedCatalog(cmd.Context()); err != nil {
			logg.Fatal("Failed to seed priority catalog", zap.Error(err))
		} else if seeded > 0 {
			logg.Info("Seeded priority catalog", zap.Int("tiers", seeded))
		}

		// 2. Storage
		client, err := storage.NewClient(rt.cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             rt.cfg.Server.BodyLimitBytes(),
		})

		// 3. Features
		engine := rt.engine()
		mgr := loader.NewManager()
		mgr.Register(criticality.NewFeature(engine, rt.store, logg))
		mgr.Register(report.NewFeature(engine, rt.store, client, rt.cfg.Storage.Bucket, logg))
		mgr.Register(evidence.NewFeature(client, rt.cfg.Storage, rt.store, logg))
		mgr.Register(integrity.NewFeature(client, rt.cfg.Storage, logg, rt.db))

		// RayID must be first to trace everything
		app.Use(rayid.New())
		app.Use(logger.Requests(logg))

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("address", rt.cfg.Server.Address()))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
