package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scorebook/core/config"
	"scorebook/core/database"
	"scorebook/core/loader"
	"scorebook/core/logger"
	"scorebook/core/middleware/auth"
	"scorebook/core/middleware/rayid"
	"scorebook/core/scoring"
	"scorebook/core/storage"
	"scorebook/core/store"
	"scorebook/core/upsert"

	"scorebook/feature/catalog"
	"scorebook/feature/doctor"
	"scorebook/feature/event"
	"scorebook/feature/golf"
	"scorebook/feature/photo"
	"scorebook/feature/roster"
	"scorebook/feature/sync"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "scorebook/docs/swagger"
)

// @title Scorebook API
// @version 1.0
// @description API for recording competitive events and moving them between devices.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scorebook server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the store database. Everything lives here, so unlike
		// the object storage below this connection is not optional.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate database", zap.Error(err))
		}
		if missing := database.MissingTables(db); len(missing) > 0 {
			logg.Fatal("Store schema incomplete after migration", zap.Strings("missing", missing))
		}

		// The local storage row names this device in every snapshot it
		// exports. Minted once, kept forever.
		local, err := database.EnsureLocalStorage(db, cfg.Store.Name)
		if err != nil {
			logg.Fatal("Failed to establish store identity", zap.Error(err))
		}
		logg = logg.With(zap.String("store", local.ID))
		logg.Info("Store ready", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		// 5. Wire the store, the reconciling writer and the scoring registry.
		st := store.NewGorm(db)
		engine := upsert.New(st, logg)
		registry := scoring.NewRegistry(st, engine, logg)
		if err := registry.Register(golf.New()); err != nil {
			logg.Fatal("Failed to register sport plugin", zap.Error(err))
		}

		// 6. Object storage for photo payloads (optional).
		var objects storage.Client
		if cfg.Storage.Enabled {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			if err := storage.EnsureBucket(context.Background(), client, cfg.Storage.Bucket); err != nil {
				logg.Fatal("Failed to ensure photo bucket", zap.Error(err))
			}
			objects = client
		}

		// 7. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		// Register Features
		mgr.Register(catalog.NewFeature(st, engine, registry, logg))
		mgr.Register(roster.NewFeature(st, engine, logg))
		mgr.Register(event.NewFeature(st, engine, registry, logg))
		mgr.Register(sync.NewFeature(st, engine, logg))
		mgr.Register(photo.NewFeature(st, objects, cfg.Storage.Bucket, logg))
		mgr.Register(doctor.NewFeature(st, db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			// Log error if happened
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
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
