package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultState(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
	require.Empty(t, u.MobileNumber)
	require.Empty(t, u.Email)
}

func TestUser_Contact(t *testing.T) {
	u := NewUser(1, 10)
	u.MobileNumber = "15551234567"
	u.Email = "farmer@example.com"
	require.Equal(t, ContactInput{MobileNumber: "15551234567", Email: "farmer@example.com"}, u.Contact())
}
