package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/linkbio/backend/internal/application/identity"
	linkbioapp "github.com/linkbio/backend/internal/application/linkbio"
	"github.com/linkbio/backend/internal/infrastructure/auth"
	"github.com/linkbio/backend/internal/infrastructure/config"
	"github.com/linkbio/backend/internal/infrastructure/logger"
	"github.com/linkbio/backend/internal/infrastructure/persistence"
	"github.com/linkbio/backend/internal/interfaces/http/handler"
	"github.com/linkbio/backend/internal/interfaces/http/middleware"
	"github.com/linkbio/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting linkbio backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Session token blacklist: Redis when configured, in-process otherwise.
	// The in-memory fallback is fine for a single instance; revocations do
	// not survive a restart.
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("Using in-memory token blacklist")
	}

	// Initialize repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	linkRepo := persistence.NewGormLinkRepository(db.DB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(accountRepo, profileRepo, jwtService, blacklist, log)
	profileService := linkbioapp.NewProfileService(profileRepo, accountRepo, log)
	linkService := linkbioapp.NewLinkService(linkRepo, log)
	publicService := linkbioapp.NewPublicProfileService(profileRepo, linkRepo, log)

	// Shared middleware
	sessionAuth := middleware.SessionAuth(middleware.SessionAuthConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		CookieName:     cfg.Cookie.Name,
		Logger:         log,
	})
	credentialLimiter := middleware.RateLimit(middleware.NewRateLimiter(10, time.Minute))
	clickLimiter := middleware.RateLimit(middleware.NewRateLimiter(120, time.Minute))

	// Set up the engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Server-rendered public profile pages
	engine.LoadHTMLGlob("web/templates/*")

	// Register routes
	r := router.NewRouter(engine)
	r.Register(handler.NewAuthHandler(authService, cfg.Cookie, sessionAuth, credentialLimiter))
	r.Register(handler.NewProfileHandler(profileService, sessionAuth))
	r.Register(handler.NewLinkHandler(linkService, sessionAuth, clickLimiter))
	r.Register(handler.NewPublicHandler(publicService))
	r.Register(handler.NewSystemHandler(db))
	r.RegisterPages(handler.NewPageHandler(publicService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
