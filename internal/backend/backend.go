// Package backend opens the key-value store selected in the configuration.
package backend

import (
	"context"
	"fmt"

	"fintrack/internal/storage"
)

// Type names a storage backend.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
	Redis  Type = "redis"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite, Redis:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{Memory, SQLite, Redis}
}

// Config holds what the factory needs to open a store.
type Config struct {
	Type Type

	SQLiteDBPath string

	Redis storage.RedisConfig
}

// Validate checks the fields required by the selected type.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Type {
	case SQLite:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case Redis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("Redis address is required for redis backend")
		}
	}
	return nil
}

// Opener opens a key-value store.
type Opener interface {
	Open(ctx context.Context, config Config) (storage.KeyValue, error)
}
