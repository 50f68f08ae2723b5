package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/config"
	"github.com/skymarket/skymarket-api/internal/domain/admin"
	"github.com/skymarket/skymarket-api/internal/domain/auth"
	"github.com/skymarket/skymarket-api/internal/domain/bridge"
	"github.com/skymarket/skymarket-api/internal/domain/credit"
	"github.com/skymarket/skymarket-api/internal/domain/news"
	"github.com/skymarket/skymarket-api/internal/domain/order"
	"github.com/skymarket/skymarket-api/internal/domain/product"
	"github.com/skymarket/skymarket-api/internal/domain/settings"
	"github.com/skymarket/skymarket-api/internal/domain/upload"
	"github.com/skymarket/skymarket-api/internal/domain/user"
	"github.com/skymarket/skymarket-api/internal/middleware"
	"github.com/skymarket/skymarket-api/internal/pkg/database"
	"github.com/skymarket/skymarket-api/internal/pkg/email"
	"github.com/skymarket/skymarket-api/internal/pkg/logger"
	"github.com/skymarket/skymarket-api/internal/pkg/storage"
	"github.com/skymarket/skymarket-api/internal/pkg/token"
	"github.com/skymarket/skymarket-api/internal/ratelimit"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting SkyMarket API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	// Redis is optional: with it the rate-limit window is shared across
	// instances, without it each instance counts on its own.
	var limiterStore ratelimit.Store
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redisClient != nil {
		defer database.CloseRedis(redisClient)
		limiterStore = ratelimit.NewRedisStore(redisClient)
		log.Info().Msg("Rate limiting backed by Redis")
	} else {
		memStore := ratelimit.NewMemoryStore()
		defer memStore.Close()
		limiterStore = memStore
	}

	tokens := token.NewService(cfg.JWTSecret, cfg.UserTokenTTL, cfg.AdminTokenTTL, cfg.IsProduction())
	limiter := ratelimit.NewLimiter(limiterStore)
	loginGuard := ratelimit.NewLoginGuard()

	emailService := email.NewService(email.ResendConfig{
		APIKey:    cfg.ResendAPIKey,
		FromEmail: cfg.EmailFrom,
	}, cfg.BaseURL)
	defer emailService.Close()

	uploadStore, err := newUploadStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize upload storage")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	adminRepo := admin.NewRepository(db)
	loginLogRepo := admin.NewLoginLogRepository(db)
	resetTokenRepo := auth.NewResetTokenRepository(db)
	creditRepo := credit.NewRepository(db)
	productRepo := product.NewRepository(db)
	orderRepo := order.NewRepository(db)
	newsRepo := news.NewRepository(db)
	settingsRepo := settings.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, resetTokenRepo, emailService)
	adminService := admin.NewService(adminRepo, loginLogRepo, loginGuard)
	creditService := credit.NewService(creditRepo, emailService)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService, tokens)
	adminHandler := admin.NewHandler(adminService, creditService, userRepo, tokens)
	creditHandler := credit.NewHandler(creditService, userRepo)
	productHandler := product.NewHandler(productRepo)
	newsHandler := news.NewHandler(newsRepo)
	settingsHandler := settings.NewHandler(settingsRepo, productRepo, newsRepo)
	uploadHandler := upload.NewHandler(uploadStore)
	bridgeHandler := bridge.NewHandler(orderRepo, userRepo)

	userAuth := middleware.UserAuth(tokens)
	adminAuth := admin.Auth(tokens, adminRepo)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(limiter))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(userAuth))
		r.Mount("/market", creditHandler.MarketRoutes(userAuth))
		r.Mount("/credits", creditHandler.Routes(userAuth))

		r.Route("/public", func(r chi.Router) {
			r.Mount("/products", productHandler.PublicRoutes())
			r.Mount("/news", newsHandler.PublicRoutes())
			r.Mount("/settings", settingsHandler.PublicRoutes())
			r.Get("/home", settingsHandler.Home)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Mount("/", adminHandler.Routes(adminAuth))
			r.Mount("/products", productHandler.AdminRoutes(adminAuth))
			r.Mount("/news", newsHandler.AdminRoutes(adminAuth))
			r.Mount("/settings", settingsHandler.AdminRoutes(adminAuth))
			r.Mount("/upload", uploadHandler.AdminRoutes(adminAuth))
		})

		r.Mount("/mc", bridgeHandler.Routes(cfg.BridgeAPIKey))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newUploadStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.S3Endpoint != "" {
		log.Info().Str("bucket", cfg.S3Bucket).Msg("Uploads stored in S3")
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			Bucket:          cfg.S3Bucket,
			PublicURL:       cfg.S3PublicURL,
		})
	}

	log.Info().Str("dir", cfg.LocalUploadDir).Msg("Uploads stored on local disk")
	return storage.NewLocalStorage(cfg.LocalUploadDir, "/uploads")
}
