package container

import (
	"nutrient-bot/config"
	app "nutrient-bot/internal/application"
	"nutrient-bot/internal/domain/port"
	"nutrient-bot/internal/infrastructure/notify"
	"nutrient-bot/internal/infrastructure/storage"
	"nutrient-bot/internal/infrastructure/vision"
)

type Container struct {
	UserService     *app.UserService
	NutrientService *app.NutrientService
	Highlighter     port.RegionHighlighter
}

func New(cfg *config.Config, userRepo port.UserRepository, records port.RecordStore) *Container {
	decoder := vision.NewDecoder()

	nutrientService := app.NewNutrientService(
		decoder,
		notify.NewWhatsAppLinkBuilder(),
		notify.NewSMTPMailer(cfg.SMTP),
		records,
	)
	if cfg.SMTP.Timeout > 0 {
		nutrientService.MailTimeout = cfg.SMTP.Timeout
	}
	if cfg.Database.Timeout > 0 {
		nutrientService.RecordTimeout = cfg.Database.Timeout
	}

	return &Container{
		UserService:     app.NewUserService(userRepo),
		NutrientService: nutrientService,
		Highlighter:     decoder,
	}
}

// OpenRecordStore выбирает хранилище результатов: SQLite по пути из конфига или память.
// Возвращаемую функцию нужно вызвать при завершении процесса.
func OpenRecordStore(cfg *config.Config) (port.RecordStore, func() error, error) {
	if cfg.Database.Path == "" {
		return storage.NewMemoryRecordStore(), func() error { return nil }, nil
	}

	store, err := storage.OpenSQLiteRecordStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
