// Package storage provides the string-valued key-value stores that hold the
// application state, and the typed transaction store on top of them.
package storage

import (
	"context"
	"sync"
)

// Keys used by the application.
const (
	KeyTransactions = "rfa_transactions_v1"
	KeyUser         = "rfa_user"
	KeyDarkMode     = "dark-mode"
)

// KeyValue is a string-valued store, the role local storage plays in a
// browser.
type KeyValue interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes the key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// MemoryKV keeps values in a map. It is the default backend and the one used
// in tests.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }

var (
	_ KeyValue = (*MemoryKV)(nil)
	_ KeyValue = (*SQLiteKV)(nil)
	_ KeyValue = (*RedisKV)(nil)
)
