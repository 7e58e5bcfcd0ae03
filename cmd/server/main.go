package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediboard/hospital-system/internal/api"
	"github.com/mediboard/hospital-system/internal/core/service"
	"github.com/mediboard/hospital-system/internal/infrastructure/config"
	mongodb "github.com/mediboard/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/mediboard/hospital-system/internal/infrastructure/db/redis"
	"github.com/mediboard/hospital-system/internal/infrastructure/queue"
	"github.com/mediboard/hospital-system/pkg/logger"

	_ "github.com/mediboard/hospital-system/docs"
)

// @title                      Hospital Administration API
// @version                    1.0
// @description                Patient registry, appointments, staff, inventory, billing, and audit trail.
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	recordRepo := mongodb.NewRecordRepository(db)

	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create account indexes")
	}
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create audit indexes")
	}
	if err := recordRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create record indexes")
	}

	// --- Core services ---
	auditSvc := service.NewAuditService(auditRepo, log)
	credSvc := service.NewCredentialService(accountRepo, log)
	revocations := redisdb.NewRevocationStore(rdb)
	sessionSvc := service.NewSessionService(credSvc, revocations, cfg.JWTSecret, cfg.TokenTTL)

	dispatcher := queue.NewDispatcher(cfg.AlertWorkers, auditSvc, log)
	dispatcher.Start(ctx)

	recordSvc := service.NewRecordService(recordRepo, auditSvc, dispatcher, log)
	reportSvc := service.NewReportService(recordRepo, accountRepo, log)

	e := api.NewRouter(db, rdb, api.Services{
		Credentials: credSvc,
		Sessions:    sessionSvc,
		Audit:       auditSvc,
		Records:     recordSvc,
		Reports:     reportSvc,
		Revocations: revocations,
	}, cfg.JWTSecret, log)

	// --- Serve ---
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
