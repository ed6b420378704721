package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"

	"queout/internal/audit"
	"queout/internal/auth"
	"queout/internal/callerid"
	"queout/internal/calls"
	"queout/internal/config"
	"queout/internal/httpapi"
	"queout/internal/luron"
	"queout/internal/persona"
	"queout/internal/quicksched"
	"queout/internal/subscription"
	"queout/internal/users"
	"queout/internal/verification"
	"queout/internal/voices"
	"queout/pkg/logger"
	"queout/pkg/utils"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	luronClient := luron.NewClient(cfg.Luron)
	auditSvc := audit.NewService(audit.NewPostgresRepo(db))

	h := httpapi.Handlers{
		Auth:           authManager,
		Users:          users.NewService(db),
		Verification:   verification.NewService(verification.NewPostgresRepo(db), luronClient, auditSvc),
		Luron:          luronClient,
		CallerIDs:      callerid.NewService(db),
		Personas:       persona.NewService(db),
		Calls:          calls.NewService(db),
		QuickSchedules: quicksched.NewService(db),
		Subscriptions:  subscription.NewService(db),
		Voices:         voices.NewService(db, rdb, log),
		Audit:          auditSvc,
		DB:             db,
		RDB:            rdb,
		Log:            log,
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, h, auth.RequireAccessToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
