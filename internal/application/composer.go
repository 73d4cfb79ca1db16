package app

import (
	"fmt"
	"strings"

	"nutrient-bot/internal/domain/entity"
)

const (
	// AlertSubject — тема письма с оповещением
	AlertSubject = "Crop Nutrient Deficiency Alert"
	// NoRegionsMessage — текст, когда подозрительных областей нет
	NoRegionsMessage = "No significant deficiency regions detected."
)

// ComposeAlert формирует строку оповещения для одной области.
func ComposeAlert(r entity.Region) entity.AlertMessage {
	return entity.AlertMessage{
		RegionIndex: r.Index,
		Text: fmt.Sprintf(
			"Region %d: Possible nutrient deficiency detected in area (%d,%d) to (%d,%d). "+
				"Please inspect this region and consider soil testing or targeted fertilization.",
			r.Index, r.XStart, r.YStart, r.XStop, r.YStop,
		),
	}
}

// ComposeMessages возвращает по сообщению на область и общий текст через перевод строки.
// Для пустого списка сообщений нет, а текст равен NoRegionsMessage.
func ComposeMessages(regions []entity.Region) ([]entity.AlertMessage, string) {
	messages := make([]entity.AlertMessage, 0, len(regions))
	if len(regions) == 0 {
		return messages, NoRegionsMessage
	}

	lines := make([]string, 0, len(regions))
	for _, r := range regions {
		msg := ComposeAlert(r)
		messages = append(messages, msg)
		lines = append(lines, msg.Text)
	}
	return messages, strings.Join(lines, "\n")
}
