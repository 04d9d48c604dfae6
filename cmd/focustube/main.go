package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"focustube/internal/auth"
	"focustube/internal/chat"
	"focustube/internal/config"
	"focustube/internal/db"
	httpx "focustube/internal/http"
	"focustube/internal/ledger"
	"focustube/internal/note"
	"focustube/internal/timer"
	"focustube/internal/timetable"
	"focustube/internal/video"

	"github.com/lmittmann/tint"
)

func main() {
	cfg, _ := config.Load()

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("database connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	ledgerSvc := &ledger.Service{DB: gdb}
	sessions := &timer.Service{DB: gdb}
	engine := timer.NewEngine(ctx, sessions, ledgerSvc, logger)

	r := httpx.NewRouter(httpx.Deps{
		Config: cfg,
		DB:     gdb,
		JWT:    jwtSvc,
		Videos: &video.Client{APIKey: cfg.YouTubeAPIKey},
		Chat:   &chat.Client{APIKey: cfg.OpenRouterAPIKey, Model: cfg.OpenRouterModel},
		Ledger: ledgerSvc,
		Notes:  &note.Service{DB: gdb, Ledger: ledgerSvc, Logger: logger},
		Events: &timetable.Service{DB: gdb},
		Timer:  engine,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// graceful shutdown; cancelling ctx stops every running timer tick loop
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newLogger(level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "warn", "warning":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}

	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.RFC3339,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
