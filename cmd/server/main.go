package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventdesk/event-management-api/internal/api"
	"github.com/eventdesk/event-management-api/internal/core/tokens"
	"github.com/eventdesk/event-management-api/internal/infrastructure/config"
	mongostore "github.com/eventdesk/event-management-api/internal/infrastructure/db/mongo"
	redisstore "github.com/eventdesk/event-management-api/internal/infrastructure/db/redis"
	"github.com/eventdesk/event-management-api/internal/infrastructure/queue"
	"github.com/eventdesk/event-management-api/pkg/logger"

	_ "github.com/eventdesk/event-management-api/docs"
)

const shutdownTimeout = 10 * time.Second

// @title           Event Management API
// @version         1.0
// @description     REST backend for events, users and projects with JWT authentication and role-based access control.
// @BasePath        /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index setup failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	issuer := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	revocations := redisstore.NewRevocationStore(rdb)

	audit := queue.NewAuditDispatcher(0, mongostore.NewAuditRepository(db), log)
	audit.Start(ctx)

	e := api.NewRouter(db, rdb, issuer, revocations, audit, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
