package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negatiview/negatiview/internal/client/storage"
)

// создаём тестовое BoltDB хранилище с auth bucket
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "client_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStorage_SaveGetDeleteAuth(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	auth := &storage.AuthData{
		Email:        "a@b.com",
		DisplayName:  "Ann",
		AccessToken:  "access-token-value",
		RefreshToken: "refresh-token-value",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	}

	// GetAuth до сохранения выдает ErrAuthNotFound
	_, err := store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	// Сохраняем сессию
	err = store.SaveAuth(ctx, auth)
	require.NoError(t, err)

	// Получаем и сравниваем
	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, auth.Email, got.Email)
	assert.Equal(t, auth.DisplayName, got.DisplayName)
	assert.Equal(t, auth.AccessToken, got.AccessToken)
	assert.Equal(t, auth.RefreshToken, got.RefreshToken)
	assert.Equal(t, auth.ExpiresAt, got.ExpiresAt)

	// Удаляем
	err = store.DeleteAuth(ctx)
	require.NoError(t, err)

	_, err = store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	// Повторное удаление — ошибка отсутствия данных
	err = store.DeleteAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestStorage_IsAuthenticated(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Нет сессии — не аутентифицирован, но и не ошибка
	ok, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	auth := &storage.AuthData{
		Email:       "a@b.com",
		AccessToken: "access-token-value",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}
	require.NoError(t, store.SaveAuth(ctx, auth))

	ok, err = store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// Истекший токен — сессия не считается живой
	auth.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	require.NoError(t, store.SaveAuth(ctx, auth))

	ok, err = store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_SaveAuthOverwrites(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	first := &storage.AuthData{Email: "a@b.com", AccessToken: "first"}
	require.NoError(t, store.SaveAuth(ctx, first))

	second := &storage.AuthData{Email: "a@b.com", AccessToken: "second"}
	require.NoError(t, store.SaveAuth(ctx, second))

	got, err := store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got.AccessToken)
}
