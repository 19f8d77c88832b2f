// Package storage is the client's durable key-value store: a small fixed
// set of named slots (credentials, cached user, preferences) persisted
// under a profile directory, one file per slot.
//
// Storage failures never propagate. Every operation degrades to a logged
// no-op so a missing, full or unwritable disk can never break the session
// layer; the worst outcome is an unauthenticated start.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Key names a storage slot. The set is fixed; each slot holds one
// JSON-serialized value.
type Key string

// Persisted slots
const (
	KeyAccessToken  Key = "fitness_access_token"
	KeyRefreshToken Key = "fitness_refresh_token"
	KeyUser         Key = "fitness_user"
	KeyTheme        Key = "fitness_theme"
	KeyRememberMe   Key = "fitness_remember_me"
)

// Keys lists every persisted slot.
var Keys = []Key{KeyAccessToken, KeyRefreshToken, KeyUser, KeyTheme, KeyRememberMe}

// Store persists slots under a profile directory.
type Store struct {
	dir        string
	log        zerolog.Logger
	enc        encryptor
	passphrase string
	available  bool

	mu         sync.Mutex
	selfWrites map[Key]int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithPassphrase enables AES-GCM encryption at rest, with the key derived
// from the passphrase. An empty passphrase leaves values in plaintext.
func WithPassphrase(passphrase string) Option {
	return func(s *Store) {
		s.enc = nil // resolved in New once the directory exists
		s.passphrase = passphrase
	}
}

// New creates a Store rooted at dir. When the directory cannot be created
// or written the store is marked unavailable and every operation becomes a
// no-op, mirroring environments with no persistent storage at all.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:        dir,
		log:        zerolog.Nop(),
		selfWrites: make(map[Key]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		s.log.Warn().Err(err).Str("dir", dir).Msg("storage unavailable, operating as no-op")
		s.available = false
		s.enc = noopEncryptor{}
		return s
	}
	s.available = true

	if s.enc == nil {
		s.enc = newEncryptor(s.passphrase, dir, s.log)
	}
	return s
}

// Available reports whether the store can persist anything. When false,
// Set/Remove/Clear do nothing and Get/Has report absence.
func (s *Store) Available() bool {
	return s.available
}

// Dir returns the profile directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Set serializes v into the slot. Failures are logged, never returned.
func (s *Store) Set(key Key, v any) {
	if !s.available {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", string(key)).Msg("storage set: marshal failed")
		return
	}

	sealed, err := s.enc.seal(data)
	if err != nil {
		s.log.Error().Err(err).Str("key", string(key)).Msg("storage set: encrypt failed")
		return
	}

	s.markSelfWrite(key)
	if err := writeFileAtomic(s.path(key), sealed); err != nil {
		s.unmarkSelfWrite(key)
		s.log.Error().Err(err).Str("key", string(key)).Msg("storage set: write failed")
	}
}

// Get deserializes the slot into out. It reports false when the slot is
// absent, holds the literal text "null" or "undefined", or cannot be
// parsed; unparsable slots are deleted so the corruption cannot recur.
func Get[T any](s *Store, key Key) (T, bool) {
	var zero T
	if !s.available {
		return zero, false
	}

	sealed, err := os.ReadFile(s.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("key", string(key)).Msg("storage get: read failed")
		}
		return zero, false
	}

	data, err := s.enc.open(sealed)
	if err != nil {
		s.log.Error().Err(err).Str("key", string(key)).Msg("storage get: decrypt failed, removing entry")
		s.Remove(key)
		return zero, false
	}

	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" || text == "undefined" {
		if text == "undefined" {
			// Not valid JSON; clean it up like any other corrupt entry.
			s.Remove(key)
		}
		return zero, false
	}

	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		s.log.Error().Err(err).Str("key", string(key)).Msg("storage get: parse failed, removing entry")
		s.Remove(key)
		return zero, false
	}
	return v, true
}

// Remove deletes the slot. Missing slots are not an error.
func (s *Store) Remove(key Key) {
	if !s.available {
		return
	}
	s.markSelfWrite(key)
	if err := os.Remove(s.path(key)); err != nil {
		// Nothing was deleted, so no event will arrive to consume the mark.
		s.unmarkSelfWrite(key)
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("key", string(key)).Msg("storage remove failed")
		}
	}
}

// Has reports whether the slot exists.
func (s *Store) Has(key Key) bool {
	if !s.available {
		return false
	}
	_, err := os.Stat(s.path(key))
	return err == nil
}

// Clear removes every known slot.
func (s *Store) Clear() {
	for _, key := range Keys {
		s.Remove(key)
	}
}

// GetToken returns the stored access token, or "" when absent.
func (s *Store) GetToken() string {
	raw, _ := Get[string](s, KeyAccessToken)
	return raw
}

// SetToken stores the access token.
func (s *Store) SetToken(token string) {
	s.Set(KeyAccessToken, token)
}

// RemoveToken deletes the access token and, with it, the refresh token:
// neither credential is useful without the other.
func (s *Store) RemoveToken() {
	s.Remove(KeyAccessToken)
	s.Remove(KeyRefreshToken)
}

func (s *Store) path(key Key) string {
	return filepath.Join(s.dir, string(key)+".json")
}

// markSelfWrite records that the next filesystem event for key originates
// from this process, so the change watcher can tell local mutations from
// external ones.
func (s *Store) markSelfWrite(key Key) {
	s.mu.Lock()
	s.selfWrites[key]++
	s.mu.Unlock()
}

// unmarkSelfWrite releases a mark whose filesystem operation did not
// happen, keeping the counter in step with the events that will arrive.
func (s *Store) unmarkSelfWrite(key Key) {
	s.mu.Lock()
	if s.selfWrites[key] > 0 {
		s.selfWrites[key]--
	}
	s.mu.Unlock()
}

func (s *Store) consumeSelfWrite(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selfWrites[key] > 0 {
		s.selfWrites[key]--
		return true
	}
	return false
}

// writeFileAtomic writes via a temp file and rename so watchers observe a
// single event with complete contents.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o600); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
