package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"nutrient-bot/config"
	"nutrient-bot/internal/domain/port"
)

// SMTPMailer отправляет письма через SMTP с обязательным STARTTLS
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer создаёт почтовый адаптер. Конфигурация проверяется при каждой отправке.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = config.DefaultSMTPPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultSMTPTimeout
	}
	return &SMTPMailer{cfg: cfg}
}

// Send отправляет текстовое письмо. Любая ошибка возвращается, а не пробрасывается паникой.
func (m *SMTPMailer) Send(ctx context.Context, subject, body, recipient string) error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}
	if recipient == "" {
		return errors.New("empty recipient")
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.Mailer = (*SMTPMailer)(nil)
