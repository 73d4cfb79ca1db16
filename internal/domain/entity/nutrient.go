package entity

import (
	"errors"
	"time"
)

// ErrInvalidInput — изображение не декодируется или не содержит пикселей.
var ErrInvalidInput = errors.New("invalid input")

// NotificationOutcome хранит итог обоих каналов оповещения.
// Отсутствие значения — нормальное конечное состояние, а не ошибка.
type NotificationOutcome struct {
	WhatsAppURL *string // nil, если ссылка не построена
	EmailError  error   // nil, если письмо отправлено или не требовалось
	EmailSent   bool
}

// NutrientResult — ответ на запрос анализа снимка.
type NutrientResult struct {
	RegionCount int            `json:"medium_red_region_count"`
	Regions     []Region       `json:"regions"`
	Messages    []AlertMessage `json:"whatsapp_messages"`
	WhatsAppURL *string        `json:"whatsapp_url"`
	EmailSentTo *string        `json:"email_sent_to"`
}

// ContactInput — контактные данные из запроса.
type ContactInput struct {
	MobileNumber string `json:"mobile_number"`
	Email        string `json:"email"`
}

// NutrientRecord — документ, который передаётся во внешнее хранилище результатов.
type NutrientRecord struct {
	ID         string         `json:"id"`
	Prediction NutrientResult `json:"prediction"`
	Input      ContactInput   `json:"input"`
	UserID     *string        `json:"user_id"`
	Timestamp  time.Time      `json:"timestamp"`
}
