package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"teacherdash/internal/config"
	"teacherdash/internal/lesson"
	"teacherdash/internal/notes"
	"teacherdash/internal/schedule"
	"teacherdash/internal/storage"
	"teacherdash/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	// The bot reads the same persisted state the server writes.
	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	scheduleStore := schedule.NewStore(store)
	scheduleStore.Restore()
	lessonStore := lesson.NewStore(store)
	lessonStore.Restore()
	noteStore := notes.NewStore(store)
	noteStore.Restore()

	bot, err := telegram.NewBot(cfg, scheduleStore, lessonStore, noteStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("dashbot polling for updates")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot stopped: %v", err)
	}
	log.Println("Bot exiting")
}
