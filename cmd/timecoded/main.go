package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/zsiec/timecode/internal/api"
	"github.com/zsiec/timecode/internal/cache"
	"github.com/zsiec/timecode/internal/config"
	"github.com/zsiec/timecode/internal/logger"
	"github.com/zsiec/timecode/internal/server"
	"github.com/zsiec/timecode/pkg/version"
)

func main() {
	var (
		configPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "configs/default.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Println(version.GetInfo().String())
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(version.GetInfo().Fields()).Info("Starting timecode service")
	log.WithField("config_path", configPath).Debug("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := connectRedis(ctx, &cfg.Redis, log)

	conversions := newCache(cfg, redisClient, log)

	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics, log)
	}

	srv := server.New(cfg, log, redisClient)

	handlers, err := api.NewHandlers(cfg.Timecode, conversions, srv.ErrorHandler(),
		logger.NewLogrusAdapter(logger.WithComponent(log, "api")))
	if err != nil {
		log.WithError(err).Fatal("Failed to create API handlers")
	}
	srv.RegisterRoutes(handlers.RegisterRoutes)

	if err := srv.Start(ctx); err != nil {
		log.WithError(err).Error("Server error")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.WithError(err).Error("Failed to close Redis connection")
		}
	}

	log.Info("Server shutdown complete")
}

// connectRedis returns nil when Redis is disabled. An unreachable Redis is
// not fatal: the cache degrades to misses and health reports it.
func connectRedis(ctx context.Context, cfg *config.RedisConfig, log *logrus.Logger) redis.UniversalClient {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        cfg.Addresses,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis is unreachable, continuing without a warm cache")
	} else {
		log.WithField("addresses", cfg.Addresses).Info("Connected to Redis")
	}
	return client
}

func newCache(cfg *config.Config, client redis.UniversalClient, log *logrus.Logger) cache.Cache {
	if !cfg.Cache.Enabled || client == nil {
		return cache.Noop{}
	}
	return cache.NewRedisCache(client,
		logger.NewLogrusAdapter(logger.WithComponent(log, "cache")),
		cfg.Cache.Prefix, cfg.Cache.TTL)
}

func startMetricsServer(cfg config.MetricsConfig, log *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.WithField("addr", addr).Info("Starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("Metrics server error")
	}
}
