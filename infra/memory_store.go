package infra

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tnqbao/gau-ticketing-service/service"
)

// MemoryObjectStore is an in-process object store for local runs and tests.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: make(map[string][]byte)}
}

func (m *MemoryObjectStore) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrObjectNotFound, key)
	}
	return append([]byte(nil), data...), nil
}

// List returns matching keys in lexical order, like S3 does.
func (m *MemoryObjectStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryObjectStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// DisabledObjectStore fails every call. Ticket writes still succeed because
// mirroring is best effort; mirror reads report not found.
type DisabledObjectStore struct{}

var errObjectStoreDisabled = errors.New("object store is disabled")

func (DisabledObjectStore) Put(context.Context, string, []byte) error {
	return errObjectStoreDisabled
}

func (DisabledObjectStore) Get(context.Context, string) ([]byte, error) {
	return nil, errObjectStoreDisabled
}

func (DisabledObjectStore) List(context.Context, string) ([]string, error) {
	return nil, errObjectStoreDisabled
}

func (DisabledObjectStore) Delete(context.Context, string) error {
	return errObjectStoreDisabled
}
