package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/spf13/afero"

	"github.com/cjovignot/orderNow/internal/app"
	"github.com/cjovignot/orderNow/internal/backup"
	"github.com/cjovignot/orderNow/internal/catalog"
	"github.com/cjovignot/orderNow/internal/export"
	"github.com/cjovignot/orderNow/internal/orders"
	"github.com/cjovignot/orderNow/internal/platform/cache"
	"github.com/cjovignot/orderNow/internal/platform/db"
	"github.com/cjovignot/orderNow/internal/prefs"
	"github.com/cjovignot/orderNow/internal/scan"
	"github.com/cjovignot/orderNow/internal/store"
	"github.com/cjovignot/orderNow/internal/suppliers"
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

	supplierSvc := suppliers.NewService(ctx, st)
	catalogSvc := catalog.NewService(ctx, st, supplierSvc)
	orderSvc := orders.NewService(ctx, st, catalogSvc, supplierSvc)
	prefSvc := prefs.NewService(ctx, st)
	backupSvc := backup.NewService(st, supplierSvc, catalogSvc, orderSvc, prefSvc)

	var renderer orders.DocumentRenderer
	if cfg.GotenbergURL != "" {
		renderer = &export.PDFExporter{Endpoint: cfg.GotenbergURL, Client: http.DefaultClient}
	}

	var jobsHandler *jobs.Handler
	if cfg.StoreDriver == app.StoreDriverRedis {
		inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobsHandler = jobs.NewHandler(inspector, logger)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SuppliersHandler: suppliers.NewHandler(logger, supplierSvc),
		CatalogHandler:   catalog.NewHandler(logger, catalogSvc),
		OrdersHandler:    orders.NewHandler(logger, orderSvc, supplierSvc, renderer),
		PrefsHandler:     prefs.NewHandler(logger, prefSvc),
		ScanHandler:      scan.NewHandler(logger, catalogSvc, orderSvc),
		BackupHandler:    backup.NewHandler(logger, backupSvc),
		JobsHandler:      jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// openKV selects the persistence driver from configuration. The returned
// func releases driver resources on shutdown.
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
