package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"nutrient-bot/config"
	telegram "nutrient-bot/internal/api"
	"nutrient-bot/internal/container"
	"nutrient-bot/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Shared()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Telegram.Token == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	if err := cfg.SMTP.Validate(); err != nil {
		log.Printf("Email alerts disabled: %v", err)
	}

	// Хранилище результатов анализа
	records, closeRecords, err := container.OpenRecordStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer closeRecords()

	// Собираем сервисы приложения
	appContainer := container.New(cfg, storage.NewMemoryUserRepository(), records)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.Telegram.Token, appContainer)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Bot is running...")
	if err := bot.Run(ctx); err != nil {
		log.Printf("Bot error: %v", err)
	}
	log.Println("Bot stopped")
}
