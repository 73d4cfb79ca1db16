package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"nutrient-bot/internal/domain/entity"
)

func openTestStore(t *testing.T) *SQLiteRecordStore {
	t.Helper()
	store, err := OpenSQLiteRecordStore(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteRecordStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	url := "https://wa.me/15551234567?text=Region%201"
	email := "farmer@example.com"
	userID := "42"
	record := &entity.NutrientRecord{
		Prediction: entity.NutrientResult{
			RegionCount: 1,
			Regions:     []entity.Region{{Index: 1, XStart: 5, XStop: 7, YStart: 3, YStop: 5}},
			Messages:    []entity.AlertMessage{{RegionIndex: 1, Text: "Region 1"}},
			WhatsAppURL: &url,
			EmailSentTo: &email,
		},
		Input:     entity.ContactInput{MobileNumber: "15551234567", Email: email},
		UserID:    &userID,
		Timestamp: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Save(ctx, record))
	require.NotEmpty(t, record.ID)

	got, err := store.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, record.Input, got.Input)
	require.Equal(t, "42", *got.UserID)
	require.True(t, record.Timestamp.Equal(got.Timestamp))

	// Index и RegionIndex не сериализуются, поэтому сравниваем только координаты и текст.
	want := []entity.Region{{XStart: 5, XStop: 7, YStart: 3, YStop: 5}}
	if diff := cmp.Diff(want, got.Prediction.Regions); diff != "" {
		t.Fatalf("regions mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 1, got.Prediction.RegionCount)
	require.Equal(t, url, *got.Prediction.WhatsAppURL)
}

func TestSQLiteRecordStore_NullUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := &entity.NutrientRecord{
		Prediction: entity.NutrientResult{Regions: []entity.Region{}, Messages: []entity.AlertMessage{}},
	}
	require.NoError(t, store.Save(ctx, record))

	got, err := store.Get(ctx, record.ID)
	require.NoError(t, err)
	require.Nil(t, got.UserID)
	require.Nil(t, got.Prediction.WhatsAppURL)
	require.Nil(t, got.Prediction.EmailSentTo)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestSQLiteRecordStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")

	store, err := OpenSQLiteRecordStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), &entity.NutrientRecord{}))
	require.NoError(t, store.Close())

	store, err = OpenSQLiteRecordStore(path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
