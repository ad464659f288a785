package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/sheets/memory"
)

func TestHandleAppliesEvents(t *testing.T) {
	ctx := context.Background()
	mirror := memory.New()
	w := NewMirrorWorker(mirror, 2)

	tx := core.Transaction{ID: "local-1", Description: "Tea", Amount: 3, Category: core.Food, Type: core.Expense}
	if err := w.Handle(ctx, amqp.NewTransactionEvent(amqp.ActionCreated, tx)); err != nil {
		t.Fatalf("Handle(created) error = %v", err)
	}

	tx.Amount = 5
	if err := w.Handle(ctx, amqp.NewTransactionEvent(amqp.ActionUpdated, tx)); err != nil {
		t.Fatalf("Handle(updated) error = %v", err)
	}
	if got, ok := mirror.Get("local-1"); !ok || got.Amount != 5 {
		t.Fatalf("mirror row = %+v, %v", got, ok)
	}

	if err := w.Handle(ctx, amqp.NewTransactionEvent(amqp.ActionDeleted, tx)); err != nil {
		t.Fatalf("Handle(deleted) error = %v", err)
	}
	if len(mirror.Rows()) != 0 {
		t.Errorf("rows after delete = %+v", mirror.Rows())
	}

	err := w.Handle(ctx, &amqp.TransactionEvent{Action: "moved", ID: "x"})
	if !errors.Is(err, amqp.ErrInvalidEvent) {
		t.Errorf("Handle(unknown) error = %v", err)
	}
}

func TestResync(t *testing.T) {
	mirror := memory.New()
	w := NewMirrorWorker(mirror, 3)

	list := make([]core.Transaction, 20)
	for i := range list {
		list[i] = core.Transaction{ID: fmt.Sprintf("local-%d", i), Amount: float64(i)}
	}
	if err := w.Resync(context.Background(), list); err != nil {
		t.Fatalf("Resync() error = %v", err)
	}
	if got := len(mirror.Rows()); got != 20 {
		t.Errorf("mirrored rows = %d, want 20", got)
	}
}

type failingMirror struct {
	calls atomic.Int32
}

func (f *failingMirror) Upsert(context.Context, core.Transaction) error {
	f.calls.Add(1)
	return errors.New("quota exceeded")
}

func (f *failingMirror) Remove(context.Context, string) error { return nil }

func TestResyncStopsOnError(t *testing.T) {
	f := &failingMirror{}
	w := NewMirrorWorker(f, 1)

	list := []core.Transaction{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	err := w.Resync(context.Background(), list)
	if err == nil {
		t.Fatal("expected error")
	}
	if n := f.calls.Load(); n < 1 || n > 3 {
		t.Errorf("calls = %d", n)
	}
}

func TestResyncEmpty(t *testing.T) {
	w := NewMirrorWorker(memory.New(), 0)
	if err := w.Resync(context.Background(), nil); err != nil {
		t.Fatalf("Resync(nil) error = %v", err)
	}
}
