package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/scrypt"
)

// encryptor seals and opens slot contents at rest.
type encryptor interface {
	seal(plaintext []byte) ([]byte, error)
	open(sealed []byte) ([]byte, error)
}

// noopEncryptor stores values in plaintext.
type noopEncryptor struct{}

func (noopEncryptor) seal(plaintext []byte) ([]byte, error) { return plaintext, nil }
func (noopEncryptor) open(sealed []byte) ([]byte, error)    { return sealed, nil }

const saltFile = "storage.salt"

// newEncryptor builds an AES-GCM encryptor keyed by scrypt of the
// passphrase. A per-profile random salt lives alongside the slots. Any
// failure falls back to plaintext with a warning rather than making the
// store unusable.
func newEncryptor(passphrase, dir string, log zerolog.Logger) encryptor {
	if passphrase == "" {
		return noopEncryptor{}
	}

	salt, err := loadOrCreateSalt(filepath.Join(dir, saltFile))
	if err != nil {
		log.Warn().Err(err).Msg("storage encryption salt unavailable, storing plaintext")
		return noopEncryptor{}
	}

	key, err := scrypt.Key([]byte(passphrase), salt, 1<<15, 8, 1, 32)
	if err != nil {
		log.Warn().Err(err).Msg("storage key derivation failed, storing plaintext")
		return noopEncryptor{}
	}

	enc, err := newAESGCMEncryptor(key)
	if err != nil {
		log.Warn().Err(err).Msg("storage encryption unavailable, storing plaintext")
		return noopEncryptor{}
	}
	return enc
}

func loadOrCreateSalt(path string) ([]byte, error) {
	if salt, err := os.ReadFile(path); err == nil && len(salt) == 16 {
		return salt, nil
	}
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "[loadOrCreateSalt] rand.Read")
	}
	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, errors.Wrap(err, "[loadOrCreateSalt] write salt")
	}
	return salt, nil
}

// aesGCMEncryptor seals with AES-256-GCM, nonce prepended to ciphertext.
type aesGCMEncryptor struct {
	aead cipher.AEAD
}

func newAESGCMEncryptor(key []byte) (*aesGCMEncryptor, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "[newAESGCMEncryptor] aes.NewCipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "[newAESGCMEncryptor] cipher.NewGCM")
	}
	return &aesGCMEncryptor{aead: aead}, nil
}

func (e *aesGCMEncryptor) seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Wrap(err, "[seal] nonce")
	}
	return e.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (e *aesGCMEncryptor) open(sealed []byte) ([]byte, error) {
	if len(sealed) < e.aead.NonceSize() {
		return nil, errors.New("[open] sealed data too short")
	}
	nonce, ciphertext := sealed[:e.aead.NonceSize()], sealed[e.aead.NonceSize():]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[open] aead.Open")
	}
	return plaintext, nil
}
