package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awrteam/awr/internal/api"
	"github.com/awrteam/awr/internal/config"
	"github.com/awrteam/awr/internal/domain/inventory"
	"github.com/awrteam/awr/internal/domain/materials"
	"github.com/awrteam/awr/internal/domain/reports"
	"github.com/awrteam/awr/internal/domain/tasks"
	"github.com/awrteam/awr/internal/domain/teams"
	"github.com/awrteam/awr/internal/identity"
	"github.com/awrteam/awr/internal/infra/db"
	"github.com/awrteam/awr/internal/infra/logger"
	"github.com/awrteam/awr/internal/upload"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(os.Stdout, cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	files, err := upload.New(cfg.Uploads.Dir)
	if err != nil {
		log.Error("uploads dir init failed", "err", err)
		return
	}

	taskRepo := tasks.NewRepo(pool)
	reportRepo := reports.NewRepo(pool)
	ledger := inventory.NewRepo(pool)
	reportSvc := reports.NewService(log, taskRepo, reportRepo, ledger, files)

	srv := api.New(cfg.HTTP.Addr, log, api.Deps{
		Tokens:     identity.NewTokenService(cfg.Auth.Secret, cfg.Auth.TTL),
		BotToken:   cfg.Telegram.Token,
		Users:      identity.NewRepo(pool),
		Tasks:      taskRepo,
		Reports:    reportSvc,
		Ledger:     ledger,
		Materials:  materials.NewRepo(pool),
		Teams:      teams.NewRepo(pool),
		UploadsDir: files.Dir(),
		Metrics:    cfg.Metrics.Enabled,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
	log.Info("graceful shutdown complete")
}
