package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
)

// TransactionStore loads and saves the serialized transaction list.
type TransactionStore struct {
	kv  KeyValue
	key string
}

func NewTransactionStore(kv KeyValue) *TransactionStore {
	return &TransactionStore{kv: kv, key: KeyTransactions}
}

// Load returns the stored list. Malformed stored data reads as an empty list;
// only backend failures are returned as errors.
func (s *TransactionStore) Load(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if !ok || raw == "" {
		return []core.Transaction{}, nil
	}

	var list []core.Transaction
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		slog.WarnContext(ctx, "Stored transactions are malformed, starting empty",
			"key", s.key, "error", err)
		return []core.Transaction{}, nil
	}
	if list == nil {
		list = []core.Transaction{}
	}
	return list, nil
}

func (s *TransactionStore) Save(ctx context.Context, list []core.Transaction) error {
	if list == nil {
		list = []core.Transaction{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}
