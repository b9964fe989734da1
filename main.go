package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fdp_backend/internals/broker"
	"fdp_backend/internals/configs"
	database "fdp_backend/internals/databases"
	adminService "fdp_backend/internals/features/admin/service"
	certService "fdp_backend/internals/features/certificates/service"
	"fdp_backend/internals/features/communications/scheduler"
	commService "fdp_backend/internals/features/communications/service"
	payService "fdp_backend/internals/features/payments/service"
	pipelineService "fdp_backend/internals/features/pipeline/service"
	helper "fdp_backend/internals/helpers"
	"fdp_backend/internals/helpers/blob"
	"fdp_backend/internals/metrics"
	middlewares "fdp_backend/internals/middlewares"
	routes "fdp_backend/internals/route"
	"fdp_backend/internals/seeds"
	"fdp_backend/internals/store"
)

// requestTimeout bounds a whole request; bulk certificate runs are the slowest.
const requestTimeout = 2 * time.Minute

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               cfg.Storage.MaxUploadBytes + 1<<20,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// request id + context deadline
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app, cfg.Server)

	// 🔌 DB connect + pool + schema
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("❌ DB connect: %v", err)
	}
	database.TunePool(db, cfg.Database)
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("❌ migrate: %v", err)
	}
	database.WarmUpQueries(db)
	if cfg.Database.SeedOnStart {
		if err := seeds.RunAllSeeds(db, cfg.Database.SeedDir); err != nil {
			log.Printf("❌ seeding failed: %v", err)
		}
	}

	st := store.New(db)
	blobs := blob.NewStore(cfg.Storage)

	provider := payService.NewProvider(cfg.Payment)
	gateway := payService.NewGateway(st, provider, cfg.Payment, cfg.Server)
	log.Printf("💳 payment gateway: %s", gateway.ProviderName())

	dispatcher := commService.NewDispatcher(
		commService.NewEmailSender(cfg.SMTP),
		commService.NewWhatsAppSender(cfg.WhatsApp),
		st,
	)
	renderer := certService.NewRenderer(certService.NewChromePDFEngine(cfg.Certificates), blobs)
	publisher := broker.New(cfg.Broker)

	pipeline := pipelineService.New(st, gateway, dispatcher, renderer, publisher, cfg.Bulk)

	metrics.Register()
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	routes.SetupRoutes(app, routes.Deps{
		DB:       db,
		Config:   cfg,
		Pipeline: pipeline,
		Auth:     adminService.NewAuthService(cfg.Auth),
		Blobs:    blobs,
	})

	// ⏱ reminders after the DB is ready
	var stopCron func() context.Context
	if cfg.Reminders.Enabled {
		c, err := scheduler.StartReminderScheduler(cfg.Reminders, pipeline)
		if err != nil {
			log.Printf("❌ reminder scheduler not started: %v", err)
		} else {
			stopCron = c.Stop
		}
	}

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = requestTimeout + 10*time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", cfg.Server.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Server.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if stopCron != nil {
		select {
		case <-stopCron().Done():
		case <-ctx.Done():
		}
	}
	publisher.Close()
	database.Close(db)
}
