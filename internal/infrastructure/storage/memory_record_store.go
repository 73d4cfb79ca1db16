package storage

import (
	"context"
	"sync"

	"nutrient-bot/internal/domain/entity"
	"nutrient-bot/internal/domain/port"
)

// MemoryRecordStore хранит документы результатов в памяти процесса
type MemoryRecordStore struct {
	mu      sync.RWMutex
	records []entity.NutrientRecord
}

// NewMemoryRecordStore создаёт пустое in-memory хранилище результатов
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{}
}

// Save добавляет копию документа
func (s *MemoryRecordStore) Save(ctx context.Context, record *entity.NutrientRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.records = append(s.records, *record)
	s.mu.Unlock()

	return nil
}

// Records возвращает сохранённые документы в порядке записи
func (s *MemoryRecordStore) Records() []entity.NutrientRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.NutrientRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Проверка реализации интерфейса
var _ port.RecordStore = (*MemoryRecordStore)(nil)
