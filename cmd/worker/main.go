package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/afero"

	"github.com/cjovignot/orderNow/internal/app"
	"github.com/cjovignot/orderNow/internal/backup"
	"github.com/cjovignot/orderNow/internal/platform/cache"
	"github.com/cjovignot/orderNow/internal/platform/db"
	"github.com/cjovignot/orderNow/internal/store"
	"github.com/cjovignot/orderNow/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	kv, closeKV, err := openKV(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeKV()

	st := store.New(kv, logger)
	backupSvc := backup.NewService(st)

	snapshotJob := &jobs.SnapshotWriter{
		Exporter: backupSvc,
		FS:       afero.NewOsFs(),
		Dir:      cfg.BackupDir,
		Logger:   logger,
	}

	snapshotTask, err := jobs.NewBackupSnapshotTask(time.Now().UTC())
	if err != nil {
		logger.Error("build snapshot task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskBackupSnapshot, Handler: snapshotJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.BackupCron, Task: snapshotTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

func openKV(ctx context.Context, cfg *app.Config, logger *slog.Logger) (store.KV, func(), error) {
	switch cfg.StoreDriver {
	case app.StoreDriverRedis:
		client, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisKV(client), func() {
			if err := client.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}, nil
	case app.StoreDriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresKV(pool), pool.Close, nil
	default:
		kv, err := store.NewFileKV(afero.NewOsFs(), cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil
	}
}
