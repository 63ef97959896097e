package auth

import (
	"errors"
	"sync"
	"time"
)

// Names of the persisted values the token lifecycle uses.
const (
	// SecretAccessToken names the stored access token
	SecretAccessToken = "accessToken"
	// SecretRefreshToken names the stored refresh token
	SecretRefreshToken = "refreshToken"
	// SettingExpiration keys the persisted access token expiration date
	SettingExpiration = "accessTokenExpirationDate"
)

// ErrSecretNotFound indicates the named secret has never been stored or
// was deleted.
var ErrSecretNotFound = errors.New("secret not found")

// SecretStore persists opaque named secrets. Implementations can use a
// keychain, an encrypted file, or other backends.
type SecretStore interface {
	// Get retrieves a secret by name. Returns ErrSecretNotFound when absent.
	Get(name string) ([]byte, error)

	// Set stores a secret, replacing any previous value.
	Set(name string, value []byte) error

	// Delete removes a secret. Deleting an absent secret is not an error.
	Delete(name string) error
}

// Settings persists named timestamps alongside the secrets.
type Settings interface {
	// GetTime retrieves a timestamp by key. ok is false when absent.
	GetTime(key string) (t time.Time, ok bool)

	// SetTime stores a timestamp, replacing any previous value.
	SetTime(key string, t time.Time) error

	// DeleteTime removes a timestamp. Deleting an absent key is not an error.
	DeleteTime(key string) error
}

// MemoryStore is an in-memory SecretStore and Settings implementation.
// Values do not survive the process; intended for tests and throwaway use.
type MemoryStore struct {
	mu       sync.Mutex
	secrets  map[string][]byte
	settings map[string]time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		secrets:  make(map[string][]byte),
		settings: make(map[string]time.Time),
	}
}

// Get implements SecretStore.
func (s *MemoryStore) Get(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.secrets[name]
	if !ok {
		return nil, ErrSecretNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements SecretStore.
func (s *MemoryStore) Set(name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.secrets[name] = stored
	return nil
}

// Delete implements SecretStore.
func (s *MemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.secrets, name)
	return nil
}

// GetTime implements Settings.
func (s *MemoryStore) GetTime(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.settings[key]
	return t, ok
}

// SetTime implements Settings.
func (s *MemoryStore) SetTime(key string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = t
	return nil
}

// DeleteTime implements Settings.
func (s *MemoryStore) DeleteTime(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.settings, key)
	return nil
}
