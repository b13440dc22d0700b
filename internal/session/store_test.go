package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EmptyWhenFileMissing(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)

	assert.Equal(t, "", s.Token())
	assert.False(t, s.IsAuthenticated())
}

func TestStore_SetAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("abc123"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "abc123", s.Token())

	// Новый Store видит сохранённый токен
	reloaded, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", reloaded.Token())
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("abc123"))
	require.NoError(t, s.Clear())

	assert.False(t, s.IsAuthenticated())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Повторный Clear без файла не ошибка
	assert.NoError(t, s.Clear())
}

func TestStore_Notify(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)

	var seen []string
	s.Subscribe(func(token string) { seen = append(seen, token) })

	require.NoError(t, s.SetToken("first"))
	require.NoError(t, s.SetToken("second"))
	require.NoError(t, s.Clear())

	assert.Equal(t, []string{"first", "second", ""}, seen)
}
