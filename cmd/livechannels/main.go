package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/voyagen/livechannels/internal/cache"
	"github.com/voyagen/livechannels/internal/config"
	"github.com/voyagen/livechannels/internal/fetcher"
	"github.com/voyagen/livechannels/internal/models"
	"github.com/voyagen/livechannels/internal/server"
	"github.com/voyagen/livechannels/internal/service"
	"github.com/voyagen/livechannels/internal/store"
)

// configLockTTL bounds how long a crashed replica can hold the source list lock.
const configLockTTL = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "Optional config file path (YAML); else use environment variables")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sources store.Store
	if cfg.DatabaseURL != "" {
		if err := store.RunMigrations(cfg.DatabaseURL, "file://"+migrationsDir()); err != nil {
			logger.Error("migrate", "error", err)
			os.Exit(1)
		}
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		sources = pg
		logger.Info("source store: postgres")
	} else {
		sources = store.NewFile(cfg.SourcesFile)
		logger.Info("source store: file", "path", cfg.SourcesFile)
	}

	var opts []service.Option
	var rds *cache.Redis
	var refreshQueue *cache.RefreshQueue
	if cfg.RedisURL != "" {
		rds, err = cache.New(cfg.RedisURL)
		if err != nil {
			logger.Error("redis", "error", err)
			os.Exit(1)
		}
		defer rds.Close()

		if err := rds.Ping(ctx); err != nil {
			logger.Error("redis ping", "error", err)
			os.Exit(1)
		}

		sources = store.NewCachedStore(sources, rds, logger)
		opts = append(opts, service.WithLocker(cache.NewLocker(rds, models.KeyLiveConfigsLock, configLockTTL)))
		refreshQueue = cache.NewRefreshQueue(rds, cache.DefaultQueue)
		logger.Info("redis connected (shared lock and refresh queue enabled)")
	} else {
		logger.Info("redis disabled (REDIS_URL not set)")
	}

	var channels service.ChannelCache
	switch cfg.CacheBackend {
	case config.CacheRedis:
		channels = cache.NewRedisChannels(rds)
	case config.CacheSQLite:
		sq, err := cache.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			logger.Error("sqlite", "error", err)
			os.Exit(1)
		}
		defer sq.Close()
		channels = sq
	default:
		channels = cache.NewMemory()
	}
	logger.Info("channel cache", "backend", cfg.CacheBackend)

	opts = append(opts, service.WithFetchTimeout(cfg.FetchTimeout))
	live := service.NewLiveChannels(sources, channels, fetcher.New(cfg.UserAgent, cfg.FetchTimeout), logger, opts...)

	var queue server.RefreshQueue
	if refreshQueue != nil {
		queue = refreshQueue
		for i := 0; i < cfg.RefreshWorkers; i++ {
			go runRefreshWorker(ctx, refreshQueue, live, logger.With("worker", i))
		}
	}

	srv := server.New(live, cfg, queue, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
}

// migrationsDir looks for migrations/ in the working directory, then next to the executable.
func migrationsDir() string {
	dir, err := filepath.Abs("migrations")
	if err != nil {
		dir = "migrations"
	}
	if _, err := os.Stat(dir); err != nil {
		if exe, e := os.Executable(); e == nil {
			dir = filepath.Join(filepath.Dir(exe), "migrations")
		}
	}
	return dir
}

// runRefreshWorker dequeues forced refresh jobs until ctx is cancelled.
func runRefreshWorker(ctx context.Context, q *cache.RefreshQueue, live *service.LiveChannels, logger *slog.Logger) {
	logger.Info("refresh worker started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("refresh worker stopping")
			return
		default:
		}

		job, err := q.Next(ctx, 5*time.Second)
		if err != nil {
			logger.Error("dequeue", "error", err)
			time.Sleep(2 * time.Second)
			continue
		}
		if job == nil {
			continue
		}

		res, err := live.Refresh(ctx, job.SourceKey)
		if err != nil {
			logger.Warn("refresh job failed", "source", job.SourceKey, "error", err)
			continue
		}
		logger.Info("refresh job done",
			"source", job.SourceKey,
			"channels", len(res.Channels),
			"queued_for", time.Since(job.RequestedAt),
		)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
