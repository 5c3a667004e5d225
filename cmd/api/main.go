package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"promptfeed/internal/adapter/repo"
	"promptfeed/internal/auth"
	"promptfeed/internal/domain"
	"promptfeed/internal/events"
	"promptfeed/internal/feed"
	"promptfeed/internal/http/handlers"
	"promptfeed/internal/http/httpapi"
	"promptfeed/internal/imagegen"
	"promptfeed/internal/infra"
	"promptfeed/internal/infra/geoip"
	"promptfeed/internal/metrics"
	"promptfeed/internal/middleware"
	"promptfeed/internal/publish"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	sqlRunner := infra.NewSQLRunner(dbpool, logger)
	images := repo.NewImageRepository(sqlRunner)

	var publisher domain.EventPublisher = events.Noop{}
	if cfg.NATSURL != "" {
		nats, err := events.Connect(cfg.NATSURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, image.published events disabled")
		} else {
			defer nats.Close()
			publisher = nats
		}
	}

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	authSvc := auth.NewService(
		repo.NewUserRepository(sqlRunner),
		auth.NewPasswordHasher(auth.DefaultArgon2Params),
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL),
	)

	app := &handlers.App{
		Feed:      feed.NewService(images),
		Publisher: publish.NewService(images, publisher, logger),
		Posts:     publish.NewPostService(repo.NewPostRepository(sqlRunner)),
		Generator: imagegen.NewOpenAIClient(imagegen.OpenAIOptions{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIImageModel,
			Timeout: cfg.ImageGenTimeout,
		}),
		Auth:    authSvc,
		Metrics: metrics.New(),
		DB:      dbpool,
		Logger:  logger,
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, logger)
	stopSweeper := make(chan struct{})
	limiter.StartSweeper(5*time.Minute, stopSweeper)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		CountryLookup:  resolver.Lookup(),
		RateLimiter:    limiter,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	close(stopSweeper)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
