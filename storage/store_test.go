package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fittrack/go-fitness-client/storage"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name    string         `json:"name"`
	Age     int            `json:"age"`
	Extras  map[string]int `json:"extras,omitempty"`
	Checked bool           `json:"checked"`
}

func newStore(t *testing.T, opts ...storage.Option) *storage.Store {
	t.Helper()
	return storage.New(t.TempDir(), opts...)
}

func TestRoundTrip(t *testing.T) {
	s := newStore(t)

	want := profile{Name: "John", Age: 42, Extras: map[string]int{"weight": 80}, Checked: true}
	s.Set(storage.KeyUser, want)

	got, ok := storage.Get[profile](s, storage.KeyUser)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestGetUntouchedKeyReturnsNothing(t *testing.T) {
	s := newStore(t)

	_, ok := storage.Get[string](s, storage.KeyTheme)
	require.False(t, ok)
	require.False(t, s.Has(storage.KeyTheme))
}

func TestGetLiteralNullAndUndefined(t *testing.T) {
	s := newStore(t)

	path := filepath.Join(s.Dir(), string(storage.KeyTheme)+".json")

	require.NoError(t, os.WriteFile(path, []byte("null"), 0o600))
	_, ok := storage.Get[string](s, storage.KeyTheme)
	require.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("undefined"), 0o600))
	_, ok = storage.Get[string](s, storage.KeyTheme)
	require.False(t, ok)
	// "undefined" is not JSON; get self-heals by deleting the entry.
	require.False(t, s.Has(storage.KeyTheme))
}

func TestGetCorruptEntrySelfHeals(t *testing.T) {
	s := newStore(t)

	path := filepath.Join(s.Dir(), string(storage.KeyUser)+".json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": truncated`), 0o600))

	_, ok := storage.Get[profile](s, storage.KeyUser)
	require.False(t, ok)
	require.False(t, s.Has(storage.KeyUser))
}

func TestRemoveAndClear(t *testing.T) {
	s := newStore(t)

	s.Set(storage.KeyTheme, "dark")
	s.Set(storage.KeyRememberMe, true)
	require.True(t, s.Has(storage.KeyTheme))

	s.Remove(storage.KeyTheme)
	require.False(t, s.Has(storage.KeyTheme))

	// Removing a missing key is fine.
	s.Remove(storage.KeyTheme)

	s.Clear()
	require.False(t, s.Has(storage.KeyRememberMe))
}

func TestTokenHelpers(t *testing.T) {
	s := newStore(t)

	require.Empty(t, s.GetToken())

	s.SetToken("access-token")
	s.Set(storage.KeyRefreshToken, "refresh-token")
	require.Equal(t, "access-token", s.GetToken())

	s.RemoveToken()
	require.Empty(t, s.GetToken())
	// Removing the access token always removes the refresh token too.
	require.False(t, s.Has(storage.KeyRefreshToken))
}

func TestUnavailableStoreIsNoOp(t *testing.T) {
	// A file in place of the profile directory makes MkdirAll fail.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o600))

	s := storage.New(filepath.Join(blocked, "profile"))
	require.False(t, s.Available())

	s.Set(storage.KeyTheme, "dark")
	_, ok := storage.Get[string](s, storage.KeyTheme)
	require.False(t, ok)
	require.False(t, s.Has(storage.KeyTheme))
	s.Remove(storage.KeyTheme)
	s.Clear()
}

func TestEncryptedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := storage.New(dir, storage.WithPassphrase("correct horse battery staple"))

	s.SetToken("secret-access-token")
	require.Equal(t, "secret-access-token", s.GetToken())

	// The value on disk must not be recognizable plaintext.
	raw, err := os.ReadFile(filepath.Join(dir, string(storage.KeyAccessToken)+".json"))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret-access-token")

	// A second store with the same passphrase reads it back.
	again := storage.New(dir, storage.WithPassphrase("correct horse battery staple"))
	require.Equal(t, "secret-access-token", again.GetToken())
}

func TestEncryptedEntryWithWrongPassphraseSelfHeals(t *testing.T) {
	dir := t.TempDir()
	s := storage.New(dir, storage.WithPassphrase("first"))
	s.SetToken("secret")

	// Same salt, different passphrase: decrypt fails, entry is removed.
	other := storage.New(dir, storage.WithPassphrase("second"))
	require.Empty(t, other.GetToken())
	require.False(t, other.Has(storage.KeyAccessToken))
}
