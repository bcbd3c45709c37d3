package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/GaganMittal847/Companio/internal/cache"
	"github.com/GaganMittal847/Companio/internal/config"
	"github.com/GaganMittal847/Companio/internal/database"
	"github.com/GaganMittal847/Companio/internal/events"
	"github.com/GaganMittal847/Companio/internal/handlers"
	"github.com/GaganMittal847/Companio/internal/logger"
	"github.com/GaganMittal847/Companio/internal/middleware"
	"github.com/GaganMittal847/Companio/internal/registry"
	"github.com/GaganMittal847/Companio/internal/repository"
	"github.com/GaganMittal847/Companio/internal/routes"
	"github.com/GaganMittal847/Companio/internal/server"
	"github.com/GaganMittal847/Companio/internal/services"
	"github.com/GaganMittal847/Companio/internal/sms"
	"github.com/GaganMittal847/Companio/internal/workers"
	"github.com/gofiber/fiber/v2"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(logger.Config{Development: cfg.IsDevelopment()})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	sugar := zl.Sugar()
	sugar.Infof("Starting companio in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo, "companio", sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	var store cache.Cache = cache.Noop{}
	var redisCache *cache.Client
	if cfg.Redis.Enabled {
		rdb, err := database.ConnectRedis(cfg.Redis, sugar)
		if err != nil {
			sugar.Fatal(err)
		}
		redisCache = cache.NewRedis(rdb, "companio")
		store = redisCache
	} else {
		sugar.Warn("Redis disabled. Catalog caching and shared rate limits are off.")
	}

	publisher, err := events.FromConfig(cfg.Events)
	if err != nil {
		sugar.Fatalf("failed to init event publisher: %v", err)
	}
	sender := sms.FromConfig(cfg.SMS, sugar)

	// Repositories
	users := repository.NewMongoUserRepo(db)
	counters := repository.NewMongoCounterRepo(db)
	otps := repository.NewMongoOTPRepo(db)
	categories := repository.NewMongoCategoryRepo(db)
	subcategories := repository.NewMongoSubcategoryRepo(db)
	banners := repository.NewMongoBannerRepo(db)
	calendars := repository.NewMongoCalendarRepo(db)
	bookings := repository.NewMongoBookingRepo(db)
	messages := repository.NewMongoMessageRepo(db)
	chatLists := repository.NewMongoChatListRepo(db)
	addresses := repository.NewMongoAddressRepo(db)

	// Services
	authSvc := services.NewAuthService(users, otps, services.NewUserIDGenerator(counters), store, sender, services.AuthConfig{
		ExposeOTP:           cfg.Security.ExposeOTP,
		OTPTTL:              time.Duration(cfg.Security.OtpTTLSeconds) * time.Second,
		OTPRateLimitPerHour: cfg.Security.OtpRateLimitPerHour,
	}, sugar)
	catalogSvc := services.NewCatalogService(categories, subcategories, banners, store, cfg.Redis.CacheTTL, sugar)
	calendarSvc := services.NewCalendarService(calendars, users, sugar)
	discoverySvc := services.NewDiscoveryService(users, services.DiscoveryConfig{
		MaxDistanceMeters: cfg.Discovery.MaxDistanceMeters,
		Limit:             cfg.Discovery.Limit,
	}, sugar)
	bookingSvc := services.NewBookingService(bookings, users, categories, subcategories,
		database.NewTransactor(mongoClient, cfg.Mongo.Transactions), publisher,
		services.BookingConfig{DefaultLock: cfg.Booking.DefaultLock, Location: cfg.Location}, sugar)
	chatSvc := services.NewChatService(messages, chatLists, publisher, sugar)
	addressSvc := services.NewAddressService(addresses, users, sugar)

	app := server.New(server.Options{
		AppName:        "companio",
		ReadTimeout:    cfg.App.ReadTimeout,
		WriteTimeout:   cfg.App.WriteTimeout,
		IdleTimeout:    cfg.App.IdleTimeout,
		RequestTimeout: cfg.App.RequestTimeout,
		Development:    cfg.IsDevelopment(),
	}, sugar)

	metrics := middleware.NewMetrics("companio")
	app.Use(metrics.Middleware())

	var ipLimit fiber.Handler
	if redisCache != nil {
		ipLimit = middleware.NewRateLimiter(store, "rl:otp", cfg.Security.IPRateLimitPerMinute, time.Minute, sugar).MiddlewareByKey(middleware.ByIP)
	} else {
		ipLimit = middleware.NewLocalLimiter(cfg.Security.IPRateLimitPerMinute).MiddlewareByKey(middleware.ByIP)
	}

	routes.Register(app, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc, sugar),
		Catalog:  handlers.NewCatalogHandler(catalogSvc, sugar),
		Calendar: handlers.NewCalendarHandler(calendarSvc, sugar),
		Seller:   handlers.NewSellerHandler(discoverySvc, sugar),
		Booking:  handlers.NewBookingHandler(bookingSvc, sugar),
		Chat:     handlers.NewChatHandler(chatSvc, sugar),
		Address:  handlers.NewAddressHandler(addressSvc, sugar),
		Health:   handlers.NewHealthHandler(cfg.App.Port),
	}, ipLimit, metrics.Handler())

	reg, err := registry.Register(registry.Options{
		Addr:        cfg.Consul.Addr,
		ServiceName: cfg.Consul.ServiceName,
		ServiceHost: cfg.Consul.ServiceHost,
		Port:        cfg.App.Port,
		HealthPath:  "/cms/health",
	}, sugar)
	if err != nil {
		sugar.Warnf("consul registration failed: %v", err)
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	go workers.NewLockReaper(users, cfg.Booking.ReaperInterval, sugar).Run(workerCtx)

	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	stopWorkers()
	reg.Deregister()

	ctxShut, cancelShut := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		sugar.Errorf("event publisher close error: %v", err)
	}
	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}

	sugar.Info("Graceful shutdown complete.")
}
