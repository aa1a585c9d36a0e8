package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akukesepian/backend/internal/ai"
	"github.com/akukesepian/backend/internal/cache"
	"github.com/akukesepian/backend/internal/catalog"
	"github.com/akukesepian/backend/internal/config"
	"github.com/akukesepian/backend/internal/database"
	"github.com/akukesepian/backend/internal/handlers"
	"github.com/akukesepian/backend/internal/jobs"
	"github.com/akukesepian/backend/internal/log"
	"github.com/akukesepian/backend/internal/mail"
	"github.com/akukesepian/backend/internal/repository"
	"github.com/akukesepian/backend/internal/server"
	"github.com/akukesepian/backend/internal/service"
	"github.com/akukesepian/backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := log.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewClient(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Error().Err(err).Msg("mongo close failed")
		}
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ensure indexes failed")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("object store init failed")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ensure bucket failed")
	}

	userRepo := repository.NewUserRepository(db.Users())
	tokenRepo := repository.NewTokenRepository(db.ResetTokens())
	characterRepo := repository.NewCharacterRepository(db.Characters())
	chatRepo := repository.NewChatRepository(db.ChatSessions(), db.Messages())

	if err := catalog.Seed(ctx, characterRepo, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed characters failed")
	}

	mailer := mail.NewSender(cfg.Mail, cfg.FrontendURL, logger)
	responder := ai.NewResponder(cfg.AI, logger)
	catalogCache := cache.NewCatalogCache(redisClient, cfg.Redis.CatalogTTL, logger)

	authService := service.NewAuthService(userRepo, tokenRepo, mailer, objectStore, cfg.Security, cfg.Admin, logger)
	chatService := service.NewChatService(chatRepo, characterRepo, responder, catalogCache, cfg.AI.MaxHistory, logger)
	adminService := service.NewAdminService(userRepo, chatRepo, cfg.Admin, logger)

	handlerSet := handlers.NewHandlerSet(logger, cfg, authService, chatService, adminService, userRepo, db, redisClient)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(tokenRepo, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("scheduler start failed")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server failed")
		}
	}

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
}
