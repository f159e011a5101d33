package secret

import (
	"encoding/base64"
	"fmt"
	"sync"
)

// KV is the slice of storage.SettingsStore the secret store needs.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

const keyPrefix = "secret."

// SettingsStore implements SecretStore on top of the app settings table.
// Values are base64-encoded and namespaced under "secret.", which keeps them
// apart from ordinary settings but is not encryption.
type SettingsStore struct {
	kv KV
}

// NewSettingsStore creates a SettingsStore over kv.
func NewSettingsStore(kv KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

func (s *SettingsStore) Set(key string, value []byte) error {
	if err := s.kv.Set(keyPrefix+key, base64.StdEncoding.EncodeToString(value)); err != nil {
		return fmt.Errorf("secret set: %w", err)
	}
	return nil
}

func (s *SettingsStore) Get(key string) ([]byte, error) {
	raw, ok, err := s.kv.Get(keyPrefix + key)
	if err != nil {
		return nil, fmt.Errorf("secret get: %w", err)
	}
	if !ok {
		return []byte{}, nil
	}
	v, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("secret get: decode %s: %w", key, err)
	}
	return v, nil
}

func (s *SettingsStore) Delete(key string) error {
	if err := s.kv.Delete(keyPrefix + key); err != nil {
		return fmt.Errorf("secret delete: %w", err)
	}
	return nil
}

// MemoryStore is an in-process SecretStore, used in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return []byte{}, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
