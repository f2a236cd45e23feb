package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"inspector-chingum/internal/bot"
	"inspector-chingum/internal/config"
	"inspector-chingum/internal/content"
	"inspector-chingum/internal/logger"
	"inspector-chingum/internal/repository"
	"inspector-chingum/internal/server"
	"inspector-chingum/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("chingum", false)
		logger.Fatal().Err(err).Msg("config")
	}

	logger.Init("chingum", cfg.Debug)

	db, err := repository.Open(cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("db")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("bot api")
	}
	logger.Info().Str("account", api.Self.UserName).Msg("bot authorized")

	scheduler := service.NewSchedulerService(time.Local)
	scheduler.Start()
	defer scheduler.Stop()

	gateway := bot.NewTelegramGateway(api)
	dispatcher := bot.NewDispatcher(userRepo, groupRepo, gateway, gateway, content.Default(), scheduler, cfg.Telegram.RevealDelay)

	srv := server.New(dispatcher, cfg.Server.Port, cfg.Server.WebhookPath)
	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	logger.Info().Msg("shutdown complete")
}
