package storage

import (
	"context"
	"path/filepath"
	"testing"
)

// exerciseKV runs the behaviour every backend must share.
func exerciseKV(t *testing.T, kv KeyValue) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get(k) = %q ok=%v err=%v", v, ok, err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Fatalf("key still present after delete")
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete of missing key should not fail: %v", err)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestSQLiteKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fintrack.db")
	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("NewSQLiteKV: %v", err)
	}
	defer kv.Close()
	exerciseKV(t, kv)
	if got := kv.SchemaVersion(); got != 1 {
		t.Errorf("SchemaVersion() = %d, want 1", got)
	}
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")
	ctx := context.Background()

	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("NewSQLiteKV: %v", err)
	}
	if err := kv.Set(ctx, KeyDarkMode, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	kv.Close()

	// Reopening runs migrations again; they must be a no-op.
	kv, err = NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()
	if got := kv.SchemaVersion(); got != 1 {
		t.Errorf("SchemaVersion() after reopen = %d, want 1", got)
	}
	v, ok, err := kv.Get(ctx, KeyDarkMode)
	if err != nil || !ok || v != "true" {
		t.Fatalf("Get after reopen = %q ok=%v err=%v", v, ok, err)
	}
}
