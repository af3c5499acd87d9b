package memory

import (
	"context"
	"strings"
	"sync"

	"medassist/internal/ports/kv"
)

// KVStore guarda los valores en un map. Se pierde todo al reiniciar; sirve para
// dev y tests.
type KVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewKVStore() *KVStore {
	return &KVStore{
		values: make(map[string][]byte),
	}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return kv.ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
