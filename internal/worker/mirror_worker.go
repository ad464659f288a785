// Package worker applies transaction change events to the spreadsheet mirror.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/sheets"
)

// MirrorWorker keeps a sheets.Mirror in step with the stored transactions.
type MirrorWorker struct {
	mirror      sheets.Mirror
	concurrency int
}

func NewMirrorWorker(mirror sheets.Mirror, concurrency int) *MirrorWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &MirrorWorker{mirror: mirror, concurrency: concurrency}
}

// Handle applies one event. Returning an error makes the consumer requeue it.
func (w *MirrorWorker) Handle(ctx context.Context, ev *amqp.TransactionEvent) error {
	switch ev.Action {
	case amqp.ActionCreated, amqp.ActionUpdated:
		if err := w.mirror.Upsert(ctx, *ev.Transaction); err != nil {
			return fmt.Errorf("mirror %s %s: %w", ev.Action, ev.ID, err)
		}
	case amqp.ActionDeleted:
		if err := w.mirror.Remove(ctx, ev.ID); err != nil {
			return fmt.Errorf("mirror delete %s: %w", ev.ID, err)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", amqp.ErrInvalidEvent, ev.Action)
	}

	slog.InfoContext(ctx, "Mirrored transaction event",
		"action", ev.Action, "transaction_id", ev.ID)
	return nil
}

// Resync upserts every transaction in list, at most concurrency at a time.
// It is a backup for events lost while the worker was down. The first
// failure cancels the remaining upserts.
func (w *MirrorWorker) Resync(ctx context.Context, list []core.Transaction) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for _, tx := range list {
		g.Go(func() error {
			if err := w.mirror.Upsert(ctx, tx); err != nil {
				return fmt.Errorf("resync %s: %w", tx.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Mirror resync completed", "count", len(list))
	return nil
}
