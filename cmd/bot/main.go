package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/awrteam/awr/internal/bot"
	"github.com/awrteam/awr/internal/config"
	"github.com/awrteam/awr/internal/infra/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(os.Stdout, cfg.App.Env)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	log.Info("bot authorized", "username", api.Self.UserName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := bot.New(api, log, cfg.Telegram.WebAppURL)
	if err := b.Run(ctx, 30); err != nil && err != context.Canceled {
		log.Error("bot stopped", "err", err)
	}
}
