package port

import (
	"context"

	"nutrient-bot/internal/domain/entity"
)

// RecordStore внешнее хранилище результатов анализа
type RecordStore interface {
	// Save сохраняет документ; ошибка не влияет на уже посчитанный ответ
	Save(ctx context.Context, record *entity.NutrientRecord) error
}
