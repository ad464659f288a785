package memory

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestMirrorUpsertAndRemove(t *testing.T) {
	ctx := context.Background()
	m := New()

	_ = m.Upsert(ctx, core.Transaction{ID: "a", Amount: 1})
	_ = m.Upsert(ctx, core.Transaction{ID: "b", Amount: 2})
	_ = m.Upsert(ctx, core.Transaction{ID: "a", Amount: 3})

	rows := m.Rows()
	if len(rows) != 2 || rows[0].ID != "a" || rows[0].Amount != 3 || rows[1].ID != "b" {
		t.Fatalf("Rows() = %+v", rows)
	}

	if err := m.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := m.Remove(ctx, "missing"); err != nil {
		t.Fatalf("Remove(missing) error = %v", err)
	}
	if _, ok := m.Get("a"); ok {
		t.Error("a should be gone")
	}
	if rows := m.Rows(); len(rows) != 1 || rows[0].ID != "b" {
		t.Errorf("Rows() after remove = %+v", rows)
	}
}
