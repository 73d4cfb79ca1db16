package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"nutrient-bot/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreates(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)

	// Изменения копии не видны без Save.
	user.SetState(entity.StateProcessing)
	again, err := repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, again.State)

	require.NoError(t, repo.Save(ctx, user))
	again, err = repo.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, again.State)
}

func TestMemoryUserRepository_UpdateContact(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	_, err := repo.Get(ctx, 2, 20)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateContact(ctx, 2, entity.ContactInput{MobileNumber: "15551234567"}))
	require.NoError(t, repo.UpdateContact(ctx, 2, entity.ContactInput{Email: "farmer@example.com"}))
	require.NoError(t, repo.UpdateState(ctx, 2, entity.StateAwaitingPhoto))

	user, err := repo.Get(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, "15551234567", user.MobileNumber)
	require.Equal(t, "farmer@example.com", user.Email)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}
