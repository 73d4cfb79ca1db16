package port

import "context"

// LinkBuilder строит ссылку для мессенджера с готовым текстом сообщения
type LinkBuilder interface {
	// BuildLink возвращает ok=false, если номер или текст пустые
	BuildLink(mobileNumber, body string) (url string, ok bool)
}

// Mailer отправляет текстовое письмо
type Mailer interface {
	// Send возвращает ошибку вместо паники; вызывающий код не прерывается
	Send(ctx context.Context, subject, body, recipient string) error
}
