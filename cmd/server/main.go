package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory_tracker/internal/chat"
	"inventory_tracker/internal/config"
	"inventory_tracker/internal/handler"
	"inventory_tracker/internal/logger"
	"inventory_tracker/internal/middleware"
	"inventory_tracker/internal/repository"
	"inventory_tracker/internal/service"
	"inventory_tracker/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(logger.Options{ServiceName: "inventory"})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		ServiceName: "inventory",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found, relying on environment variables")
	}

	images, err := service.NewImageStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare uploads directory")
	}
	log.Info().Str("dir", cfg.Uploads.Dir).Msg("uploads directory ready")

	// A database that is down at startup is logged, not fatal: requests
	// still reach the repositories and fail one by one.
	ctx := context.Background()
	dbPool, err := config.ConnectDB(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid database configuration")
	}
	defer dbPool.Close()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := dbPool.Ping(pingCtx); err != nil {
		log.Error().Err(err).Msg("database unreachable at startup, continuing anyway")
	} else {
		log.Info().Msg("connected to PostgreSQL")
		if err := config.AutoMigrate(ctx, dbPool); err != nil {
			log.Error().Err(err).Msg("failed to apply migrations")
		}
	}
	cancelPing()

	sessions := newSessionStore(ctx, cfg, log)

	// --- Repositories, services, handlers ---
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)

	authService := service.NewAuthService(userRepo)
	productService := service.NewProductService(productRepo)

	hub := chat.NewHub(log)
	go hub.Run()

	authHandler := handler.NewAuthHandler(authService, sessions, cfg.Session.CookieName, log)
	productHandler := handler.NewProductHandler(productService, images, log)
	chatHandler := handler.NewChatHandler(hub, log)

	// --- Router ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.Recovery())
	router.Use(middleware.LoadSession(sessions, cfg.Session.CookieName, int(cfg.Session.TTL.Seconds()), log))

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/assets", cfg.App.PublicDir)
	router.Static("/uploads", cfg.Uploads.Dir)

	authGate := middleware.RequireLogin(sessions, log)
	authHandler.RegisterAuthRoutes(router)
	productHandler.RegisterProductRoutes(router, authGate)
	chatHandler.RegisterChatRoutes(router, authGate)

	router.GET("/healthz", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start server ---
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}

// newSessionStore prefers Redis when configured and reachable, falling
// back to the in-process store so the app keeps serving either way.
func newSessionStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) session.Store {
	if cfg.Redis.Address == "" {
		log.Info().Msg("no redis address configured, using in-memory sessions")
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	store, err := session.NewRedisStore(pingCtx, client, cfg.Session.TTL)
	if err != nil {
		log.Error().Err(err).Str("addr", cfg.Redis.Address).
			Msg("redis unreachable, falling back to in-memory sessions")
		return session.NewMemoryStore()
	}

	log.Info().Str("addr", cfg.Redis.Address).Msg("connected to Redis")
	return store
}
