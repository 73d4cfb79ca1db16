package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"nutrient-bot/internal/domain/entity"
	"nutrient-bot/internal/domain/port"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRecordStore сохраняет документы результатов в таблицу nutrient_records
type SQLiteRecordStore struct {
	db *sql.DB
}

// OpenSQLiteRecordStore открывает базу и применяет миграции
func OpenSQLiteRecordStore(path string) (*SQLiteRecordStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("record store ready at %s", path)
	return &SQLiteRecordStore{db: db}, nil
}

// Save записывает документ; пустой ID заменяется новым UUID
func (s *SQLiteRecordStore) Save(ctx context.Context, record *entity.NutrientRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	prediction, err := json.Marshal(record.Prediction)
	if err != nil {
		return fmt.Errorf("encode prediction: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO nutrient_records (
			record_id, user_id, mobile_number, email, region_count, prediction, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		nullString(record.UserID),
		record.Input.MobileNumber,
		record.Input.Email,
		record.Prediction.RegionCount,
		string(prediction),
		record.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert nutrient record: %w", err)
	}
	return nil
}

// Get читает документ по ID
func (s *SQLiteRecordStore) Get(ctx context.Context, id string) (*entity.NutrientRecord, error) {
	var (
		record     entity.NutrientRecord
		userID     sql.NullString
		prediction string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT record_id, user_id, mobile_number, email, prediction, created_at
		FROM nutrient_records WHERE record_id = ?`, id,
	).Scan(&record.ID, &userID, &record.Input.MobileNumber, &record.Input.Email, &prediction, &record.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("get nutrient record %s: %w", id, err)
	}

	if userID.Valid {
		record.UserID = &userID.String
	}
	if err := json.Unmarshal([]byte(prediction), &record.Prediction); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}
	return &record, nil
}

// Count возвращает число сохранённых документов
func (s *SQLiteRecordStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nutrient_records`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close закрывает соединение с базой
func (s *SQLiteRecordStore) Close() error {
	return s.db.Close()
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	// m не закрываем: это закрыло бы общее соединение с базой.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (migrateLogger) Verbose() bool {
	return false
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Проверка реализации интерфейса
var _ port.RecordStore = (*SQLiteRecordStore)(nil)
