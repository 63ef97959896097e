package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists secrets and settings in a single JSON file with
// owner-only permissions. It implements both SecretStore and Settings.
type FileStore struct {
	path string
	mu   sync.Mutex
}

type fileStoreData struct {
	Secrets  map[string]string    `json:"secrets,omitempty"`
	Settings map[string]time.Time `json:"settings,omitempty"`
}

// NewFileStore creates a FileStore backed by the file at path. The parent
// directory is created if missing; the file itself is created on first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("credentials file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) load() (*fileStoreData, error) {
	data := &fileStoreData{
		Secrets:  make(map[string]string),
		Settings: make(map[string]time.Time),
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if data.Secrets == nil {
		data.Secrets = make(map[string]string)
	}
	if data.Settings == nil {
		data.Settings = make(map[string]time.Time)
	}
	return data, nil
}

func (s *FileStore) save(data *fileStoreData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	// Write to a temp file and rename so partial writes never land.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace credentials file: %w", err)
	}
	return nil
}

// Get implements SecretStore.
func (s *FileStore) Get(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return nil, err
	}
	value, ok := data.Secrets[name]
	if !ok {
		return nil, ErrSecretNotFound
	}
	return []byte(value), nil
}

// Set implements SecretStore.
func (s *FileStore) Set(name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data.Secrets[name] = string(value)
	return s.save(data)
}

// Delete implements SecretStore.
func (s *FileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data.Secrets[name]; !ok {
		return nil
	}
	delete(data.Secrets, name)
	return s.save(data)
}

// GetTime implements Settings.
func (s *FileStore) GetTime(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return time.Time{}, false
	}
	t, ok := data.Settings[key]
	return t, ok
}

// SetTime implements Settings.
func (s *FileStore) SetTime(key string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	data.Settings[key] = t
	return s.save(data)
}

// DeleteTime implements Settings.
func (s *FileStore) DeleteTime(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data.Settings[key]; !ok {
		return nil
	}
	delete(data.Settings, key)
	return s.save(data)
}
