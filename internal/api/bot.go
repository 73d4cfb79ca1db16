package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "nutrient-bot/internal/application"
	"nutrient-bot/internal/container"
	"nutrient-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я ищу на снимках посевов участки с признаками дефицита питания.

📸 Отправьте фото листа или посева, и я отмечу подозрительные области.

📋 Команды:
/check — начать проверку снимка
/phone — указать номер для WhatsApp
/email — указать почту для оповещений
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Укажите номер телефона (/phone) и почту (/email)
2️⃣ Отправьте фото посева
3️⃣ Получите список областей, ссылку для WhatsApp и письмо с оповещением

💡 Рекомендации:
• Снимайте сверху при ровном освещении
• Лучше всего подходят снимки в ложных цветах или тепловые

📋 Команды:
/check — начать проверку
/phone — номер телефона
/email — почта
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото посева для проверки."
	msgAwaitingPhone   = "📱 Отправьте номер телефона с кодом страны, например 15551234567."
	msgAwaitingEmail   = "📧 Отправьте адрес электронной почты."
	msgPhoneSaved      = "✅ Номер сохранён: %s"
	msgEmailSaved      = "✅ Почта сохранена: %s"
	msgInvalidPhone    = "⚠️ Не похоже на номер телефона. Попробуйте ещё раз или /cancel."
	msgInvalidEmail    = "⚠️ Не похоже на адрес почты. Попробуйте ещё раз или /cancel."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото посева для проверки."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю изображение..."
	msgNoRegions       = "✅ Подозрительных областей не найдено."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
	msgInvalidImage    = "⚠️ Файл не похож на изображение. Отправьте JPEG или PNG."
	msgRegionsFound    = "🔍 Найдено областей: %d"
	msgWhatsAppLink    = "📲 Ссылка для WhatsApp:\n%s"
	msgNoPhone         = "ℹ️ Укажите номер командой /phone, чтобы получить ссылку для WhatsApp."
	msgLinkTooLong     = "ℹ️ Ссылка для WhatsApp слишком длинная для Telegram и не отправлена."
	msgEmailSent       = "📧 Оповещение отправлено на %s"
	msgEmailFailed     = "⚠️ Письмо не отправлено: %v"
	msgNoEmail         = "ℹ️ Укажите почту командой /email, чтобы получать письма."
	msgMoreRegions     = "… и ещё %d"
)

const (
	// maxListedRegions ограничивает число строк с областями в ответе
	maxListedRegions = 15
	// telegramMessageLimit — максимальная длина текста сообщения в Telegram (в символах)
	telegramMessageLimit = 4096
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	container *container.Container
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		container: c,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	users := b.container.UserService
	user, err := users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото и изображений, присланных файлом
	if fileID, ok := imageFileID(msg); ok {
		b.handlePhoto(ctx, msg, user, fileID)
		return
	}

	switch user.State {
	case entity.StateAwaitingPhone:
		b.handlePhone(ctx, msg)
	case entity.StateAwaitingEmail:
		b.handleEmail(ctx, msg)
	default:
		b.sendMessage(msg.Chat.ID, msgSendPhoto)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	users := b.container.UserService
	userID, chatID := msg.From.ID, msg.Chat.ID

	var (
		reply string
		err   error
	)
	switch msg.Command() {
	case "start":
		_, err = users.Cancel(ctx, userID, chatID)
		reply = msgStart

	case "help":
		reply = msgHelp

	case "check":
		_, err = users.BeginCheck(ctx, userID, chatID)
		reply = msgAwaitingPhoto

	case "phone":
		if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
			b.savePhone(ctx, msg, arg)
			return
		}
		_, err = users.RequestPhone(ctx, userID, chatID)
		reply = msgAwaitingPhone

	case "email":
		if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
			b.saveEmail(ctx, msg, arg)
			return
		}
		_, err = users.RequestEmail(ctx, userID, chatID)
		reply = msgAwaitingEmail

	case "cancel":
		_, err = users.Cancel(ctx, userID, chatID)
		reply = msgCancelled

	default:
		reply = msgUnknownCommand
	}

	if err != nil {
		log.Printf("Error updating user state: %v", err)
	}
	b.sendMessage(chatID, reply)
}

func (b *Bot) handlePhone(ctx context.Context, msg *tgbotapi.Message) {
	b.savePhone(ctx, msg, msg.Text)
}

func (b *Bot) handleEmail(ctx context.Context, msg *tgbotapi.Message) {
	b.saveEmail(ctx, msg, msg.Text)
}

func (b *Bot) savePhone(ctx context.Context, msg *tgbotapi.Message, text string) {
	user, err := b.container.UserService.SavePhone(ctx, msg.From.ID, msg.Chat.ID, text)
	if err != nil {
		if !errors.Is(err, app.ErrInvalidContact) {
			log.Printf("Error saving phone: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgInvalidPhone)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgPhoneSaved, user.MobileNumber))
}

func (b *Bot) saveEmail(ctx context.Context, msg *tgbotapi.Message, text string) {
	user, err := b.container.UserService.SaveEmail(ctx, msg.From.ID, msg.Chat.ID, text)
	if err != nil {
		if !errors.Is(err, app.ErrInvalidContact) {
			log.Printf("Error saving email: %v", err)
		}
		b.sendMessage(msg.Chat.ID, msgInvalidEmail)
		return
	}
	b.sendMessage(msg.Chat.ID, fmt.Sprintf(msgEmailSaved, user.Email))
}

// handlePhoto запускает анализ снимка и отправляет результат
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, user *entity.User, fileID string) {
	users := b.container.UserService

	// Устанавливаем состояние "обработка"
	if _, err := users.SetState(ctx, user.ID, user.ChatID, entity.StateProcessing); err != nil {
		log.Printf("Error updating user state: %v", err)
	}
	// Возвращаем в главное меню при любом исходе
	defer func() {
		if _, err := users.Cancel(ctx, user.ID, user.ChatID); err != nil {
			log.Printf("Error updating user state: %v", err)
		}
	}()

	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(fileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.container.NutrientService.AnalyzeForUser(ctx, user, imageData)
	if err != nil {
		log.Printf("Error analyzing photo from user %d: %v", user.ID, err)
		if errors.Is(err, entity.ErrInvalidInput) {
			b.sendMessage(msg.Chat.ID, msgInvalidImage)
		} else {
			b.sendMessage(msg.Chat.ID, msgProcessingError)
		}
		return
	}

	b.sendMessage(msg.Chat.ID, formatResult(user, out))
	if link, ok := linkMessage(out.Result); ok {
		b.sendMessage(msg.Chat.ID, link)
	}

	if out.Result.RegionCount == 0 || b.container.Highlighter == nil {
		return
	}
	highlighted, err := b.container.Highlighter.Highlight(imageData, out.Result.Regions)
	if err != nil {
		log.Printf("Error highlighting regions: %v", err)
		return
	}
	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "regions.jpg", Bytes: highlighted})
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}

// formatResult собирает текст ответа пользователю
func formatResult(user *entity.User, out *app.NutrientOutput) string {
	res := out.Result
	var sb strings.Builder

	if res.RegionCount == 0 {
		sb.WriteString(msgNoRegions)
	} else {
		fmt.Fprintf(&sb, msgRegionsFound, res.RegionCount)
		sb.WriteString("\n")
		for i, m := range res.Messages {
			if i == maxListedRegions {
				sb.WriteString("\n")
				fmt.Fprintf(&sb, msgMoreRegions, len(res.Messages)-maxListedRegions)
				break
			}
			sb.WriteString("\n")
			sb.WriteString(m.Text)
		}
	}

	sb.WriteString("\n\n")
	switch {
	case res.WhatsAppURL != nil:
		// Сама ссылка уходит отдельным сообщением, см. linkMessage.
		if _, ok := linkMessage(res); !ok {
			sb.WriteString(msgLinkTooLong)
			sb.WriteString("\n")
		}
	case res.RegionCount > 0 && user.MobileNumber == "":
		sb.WriteString(msgNoPhone)
		sb.WriteString("\n")
	}

	switch {
	case res.EmailSentTo != nil:
		fmt.Fprintf(&sb, msgEmailSent, *res.EmailSentTo)
	case out.Notification.EmailError != nil:
		fmt.Fprintf(&sb, msgEmailFailed, out.Notification.EmailError)
	default:
		sb.WriteString(msgNoEmail)
	}

	return strings.TrimSpace(sb.String())
}

// linkMessage возвращает сообщение со ссылкой WhatsApp, если она есть и влезает в лимит Telegram
func linkMessage(res *entity.NutrientResult) (string, bool) {
	if res.WhatsAppURL == nil {
		return "", false
	}
	text := fmt.Sprintf(msgWhatsAppLink, *res.WhatsAppURL)
	if utf8.RuneCountInString(text) > telegramMessageLimit {
		return "", false
	}
	return text, true
}

// imageFileID возвращает файл с максимальным разрешением или изображение-документ
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
