package backend

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/storage"
)

// Factory opens stores and logs which one was chosen.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Open returns the store for config.Type. The caller owns the store and must
// Close it.
func (f *Factory) Open(ctx context.Context, config Config) (storage.KeyValue, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLite:
		kv, err := storage.NewSQLiteKV(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return kv, nil

	case Redis:
		kv, err := storage.NewRedisKV(ctx, config.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis store: %w", err)
		}
		f.logger.Info("Initialized Redis backend", "addr", config.Redis.Addr, "db", config.Redis.DB)
		return kv, nil

	case Memory:
		f.logger.Info("Initialized memory backend")
		return storage.NewMemoryKV(), nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

var _ Opener = (*Factory)(nil)
