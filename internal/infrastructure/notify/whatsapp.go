package notify

import (
	"net/url"
	"strings"

	"nutrient-bot/internal/domain/port"
)

// WhatsAppBaseURL — адрес для ссылок вида https://wa.me/<номер>?text=<текст>
const WhatsAppBaseURL = "https://wa.me/"

// WhatsAppLinkBuilder строит click-to-chat ссылку для WhatsApp
type WhatsAppLinkBuilder struct {
	BaseURL string
}

// NewWhatsAppLinkBuilder создаёт построитель ссылок на wa.me
func NewWhatsAppLinkBuilder() *WhatsAppLinkBuilder {
	return &WhatsAppLinkBuilder{BaseURL: WhatsAppBaseURL}
}

// BuildLink возвращает ссылку, если заданы и номер, и текст.
func (b *WhatsAppLinkBuilder) BuildLink(mobileNumber, body string) (string, bool) {
	if mobileNumber == "" || body == "" {
		return "", false
	}
	return b.BaseURL + url.PathEscape(mobileNumber) + "?text=" + escapeText(body), true
}

// escapeText кодирует текст по RFC 3986: всё, кроме unreserved, уходит в %XX.
// QueryEscape кодирует «+» как %2B, так что оставшиеся «+» — это пробелы.
func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Проверка реализации интерфейса
var _ port.LinkBuilder = (*WhatsAppLinkBuilder)(nil)
