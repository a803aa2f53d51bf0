package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"prelaunch/docs"
	"prelaunch/internal/auth"
	"prelaunch/internal/config"
	"prelaunch/internal/database"
	"prelaunch/internal/database/migration"
	"prelaunch/internal/email"
	handlers "prelaunch/internal/http/handler"
	"prelaunch/internal/http/middleware"
	"prelaunch/internal/lock"
	"prelaunch/internal/logger"
	"prelaunch/internal/metrics"
	"prelaunch/internal/notify"
	"prelaunch/internal/otel"
	"prelaunch/internal/repository/mongodb"
	"prelaunch/internal/service"
	"prelaunch/internal/storage"
)

const (
	// Multipart overhead on top of the largest accepted image.
	bodyLimit       = service.MaxImageSize + 1<<20
	shutdownTimeout = 15 * time.Second
)

// @title Prelaunch API
// @version 1.0
// @description Pre-launch storefront backend: newsletter subscriptions, catalogue, accounts, images and blog.
// @BasePath /
// @securityDefinitions.apikey AdminSession
// @in header
// @name Authorization
// @description Admin session token as "Bearer <token>". The admin_session cookie is accepted too.
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	log := logger.New(os.Stdout, cfg.LogLevel, loc)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "tracing_init_failed", err)
	}

	// MongoDB holds every collection; indexes are ensured before serving traffic
	db, err := database.NewMongo(cfg.Mongo)
	if err != nil {
		fatal(log, "db_connect_failed", err)
	}
	if err := migration.EnsureIndexes(ctx, db.DB, log, cfg.Mongo.Host); err != nil {
		fatal(log, "db_index_failed", err)
	}

	// S3-compatible object storage for uploaded images
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		fatal(log, "storage_init_failed", err)
	}

	var (
		locker      lock.Locker
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		locker = lock.NewRedis(redisClient, cfg.Redis.LockTTL, log)
		log.Info("lock_configured", "backend", "redis", "addr", cfg.Redis.Addr)
	} else {
		locker = lock.NewLocal()
		log.Info("lock_configured", "backend", "local")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	subMetrics, err := metrics.NewSubscription(reg)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "metrics_init_failed", err)
	}

	sender, err := email.New(ctx, cfg.Email, log)
	if err != nil {
		fatal(log, "email_init_failed", err)
	}
	renderer, err := email.NewRenderer(cfg.BrandName, cfg.SiteURL)
	if err != nil {
		fatal(log, "email_init_failed", err)
	}
	notifier := notify.New(cfg.Notify, notify.Options{
		Sender:   sender,
		Composer: renderer,
		Recorder: subMetrics,
		Log:      log,
	})

	secret := cfg.Admin.JWTSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn("admin_jwt_secret_generated", "detail", "sessions will not survive a restart")
	}
	if cfg.Admin.PasswordHash == "" {
		log.Warn("admin_password_unset", "detail", "admin login is disabled")
	}
	tokens := auth.NewTokens(secret, cfg.Admin.SessionTTL)

	// Initialize repositories and services
	subSvc := service.NewSubscriberService(mongodb.NewSubscriberMongo(db.DB), locker, notifier, subMetrics, log)
	productSvc := service.NewProductService(mongodb.NewProductMongo(db.DB))
	userSvc := service.NewUserService(mongodb.NewUserMongo(db.DB), tokens)
	imageSvc := service.NewImageService(objStore, mongodb.NewImageMongo(db.DB))
	blogSvc := service.NewBlogService(mongodb.NewBlogPostMongo(db.DB))

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(httpMetrics.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowCredentials: cfg.CORSAllowOrigins != "*",
	}))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:           db,
		Metrics:      reg,
		Admin:        auth.NewGate(cfg.Admin.PasswordHash, tokens),
		SecureCookie: cfg.Admin.CookieSecure,
		Subscribers:  subSvc,
		Products:     productSvc,
		Users:        userSvc,
		Images:       imageSvc,
		Blog:         blogSvc,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	listenErr := make(chan error, 1)
	go func() {
		log.Info("server_started", "addr", addr)
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			log.Error("server_failed", "error_message", err.Error())
		}
	case <-ctx.Done():
		log.Info("server_stopping")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop HTTP before draining the welcome queue
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server_shutdown_failed", "error_message", err.Error())
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		log.Error("notify_shutdown_failed", "error_message", err.Error())
	}
	if err := shutdownTracing(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("tracing_shutdown_failed", "error_message", err.Error())
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error("db_close_failed", "error_message", err.Error())
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("redis_close_failed", "error_message", err.Error())
		}
	}
	log.Info("server_stopped")
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error_message", err.Error())
	os.Exit(1)
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
