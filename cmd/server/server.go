package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/namestorm/server/internal/config"
	"github.com/namestorm/server/internal/domain/brainstorm"
	"github.com/namestorm/server/internal/domain/chat"
	"github.com/namestorm/server/internal/domain/domaincheck"
	"github.com/namestorm/server/internal/infrastructure/cache"
	"github.com/namestorm/server/internal/infrastructure/dns"
	"github.com/namestorm/server/internal/infrastructure/llmprovider"
	"github.com/namestorm/server/internal/infrastructure/logger"
	"github.com/namestorm/server/internal/infrastructure/observability"
	"github.com/namestorm/server/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	var checker domaincheck.Checker = dns.New(dns.Config{
		Timeout:     cfg.DNSTimeout,
		Concurrency: cfg.DNSConcurrency,
	}, log)

	if cfg.CacheEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, lookup cache disabled")
		} else {
			checker = cache.New(redisClient, checker, cfg.CacheTTL, log)
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error().Err(err).Msg("close redis client")
				}
			}()
		}
	}

	gateway := llmprovider.NewClient(cfg.LLMAPIURL, cfg.LLMAPIKey)

	opts := brainstorm.DefaultOptions()
	opts.Model = cfg.LLMModel
	opts.Temperature = cfg.LLMTemperature
	engine := brainstorm.NewEngine(gateway, checker, opts, log)

	chatService := chat.NewService(engine, checker, cfg.DefaultTLDs, cfg.GatewayConfigured(), log)

	httpServer := httpserver.New(cfg, log, chatService)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
