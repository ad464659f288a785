// Package services holds the transaction workflow: it loads the stored list,
// applies one change, saves it back and announces the change.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/csvio"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/parser"
	"fintrack/internal/report"
	"fintrack/internal/storage"
)

const dashboardKey = "dashboard"

// Publisher announces transaction changes.
type Publisher interface {
	Publish(ctx context.Context, action amqp.Action, tx core.Transaction) error
}

// TransactionService owns the transaction list of this process. Every
// mutation is a load-modify-save under one lock.
type TransactionService struct {
	mu        sync.Mutex
	store     *storage.TransactionStore
	parser    *parser.Parser
	publisher Publisher
	dashboard cache.Cache[core.Dashboard]
	newID     func() string
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*TransactionService)

// WithPublisher sends change events to p.
func WithPublisher(p Publisher) Option {
	return func(s *TransactionService) { s.publisher = p }
}

// WithDashboardCache caches the aggregated dashboard in c.
func WithDashboardCache(c cache.Cache[core.Dashboard]) Option {
	return func(s *TransactionService) { s.dashboard = c }
}

func WithIDGenerator(f func() string) Option {
	return func(s *TransactionService) { s.newID = f }
}

func WithClock(now func() time.Time) Option {
	return func(s *TransactionService) { s.now = now }
}

func WithParser(p *parser.Parser) Option {
	return func(s *TransactionService) { s.parser = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *TransactionService) { s.logger = l }
}

// NewID returns a fresh local identifier.
func NewID() string {
	return "local-" + uuid.NewString()
}

func NewTransactionService(store *storage.TransactionStore, opts ...Option) *TransactionService {
	s := &TransactionService{
		store:  store,
		newID:  NewID,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.parser == nil {
		s.parser = parser.New(parser.WithClock(s.now))
	}
	s.logger = s.logger.With(log.FieldComponent, log.ComponentTransaction)
	return s
}

// Parse previews the draft a free-text entry would produce.
func (s *TransactionService) Parse(text string) core.Draft {
	return s.parser.Parse(text)
}

// Create validates d, finalizes it for userID and puts it at the front of
// the list.
func (s *TransactionService) Create(ctx context.Context, userID string, d core.Draft) (core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	tx := core.Finalize(d, s.newID(), userID, s.now())
	if err := s.save(ctx, ledger.Add(list, tx)); err != nil {
		return core.Transaction{}, err
	}

	s.logger.InfoContext(ctx, "Transaction created", log.NewFields().
		WithOperation(log.OpCreate).
		WithTransaction(tx.ID, tx.UserID, tx.Amount, tx.Category.String(), tx.Type.String()).
		ToSlice()...)
	s.publish(ctx, amqp.ActionCreated, tx)
	return tx, nil
}

// Update replaces the editable fields of the record with the given id. The
// id and owner are kept; a zero date keeps the stored date.
func (s *TransactionService) Update(ctx context.Context, id string, d core.Draft) (core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	existing, ok := ledger.Find(list, id)
	if !ok {
		return core.Transaction{}, fmt.Errorf("update %s: %w", id, core.ErrNotFound)
	}
	if d.Date.IsZero() {
		d.Date = existing.Date
	}
	tx := core.Finalize(d, id, existing.UserID, s.now())
	list, _ = ledger.Replace(list, id, tx)
	if err := s.save(ctx, list); err != nil {
		return core.Transaction{}, err
	}

	s.logger.InfoContext(ctx, "Transaction updated", log.NewFields().
		WithOperation(log.OpUpdate).
		WithTransaction(tx.ID, tx.UserID, tx.Amount, tx.Category.String(), tx.Type.String()).
		ToSlice()...)
	s.publish(ctx, amqp.ActionUpdated, tx)
	return tx, nil
}

// Delete removes the record with the given id. Unknown ids are a no-op and
// report false.
func (s *TransactionService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	tx, ok := ledger.Find(list, id)
	if !ok {
		return false, nil
	}
	if err := s.save(ctx, ledger.Delete(list, id)); err != nil {
		return false, err
	}

	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldOperation, log.OpDelete, log.FieldTxID, id)
	s.publish(ctx, amqp.ActionDeleted, tx)
	return true, nil
}

// Get returns the record with the given id.
func (s *TransactionService) Get(ctx context.Context, id string) (core.Transaction, error) {
	list, err := s.store.Load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	tx, ok := ledger.Find(list, id)
	if !ok {
		return core.Transaction{}, fmt.Errorf("get %s: %w", id, core.ErrNotFound)
	}
	return tx, nil
}

// List returns the records matching f, newest first.
func (s *TransactionService) List(ctx context.Context, f ledger.Filter) ([]core.Transaction, error) {
	list, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Apply(list, f), nil
}

// Dashboard aggregates the whole list. The result is cached until the next
// mutation or until the cache entry expires.
func (s *TransactionService) Dashboard(ctx context.Context) (core.Dashboard, error) {
	if s.dashboard != nil {
		if d, ok := s.dashboard.Get(dashboardKey); ok {
			return d, nil
		}
	}

	// Filled under the write lock so a concurrent save cannot purge before
	// an older aggregate is stored.
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return core.Dashboard{}, err
	}
	d := report.Aggregate(list)
	if s.dashboard != nil {
		s.dashboard.Set(dashboardKey, d)
	}
	return d, nil
}

// ExportCSV writes the whole list to w.
func (s *TransactionService) ExportCSV(ctx context.Context, w io.Writer) error {
	list, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := csvio.Export(w, list); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Transactions exported", log.FieldOperation, log.OpExport, log.FieldCount, len(list))
	return nil
}

// ImportCSV reads records from r, assigns them to userID and puts them in
// front of the existing list in file order.
func (s *TransactionService) ImportCSV(ctx context.Context, userID string, r io.Reader) ([]core.Transaction, error) {
	im := csvio.Importer{UserID: userID, NewID: s.newID, Now: s.now}
	imported, err := im.Import(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, ledger.Prepend(list, imported)); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Transactions imported",
		log.FieldOperation, log.OpImport, log.FieldUserID, userID, log.FieldCount, len(imported))
	for _, tx := range imported {
		s.publish(ctx, amqp.ActionCreated, tx)
	}
	return imported, nil
}

// All returns the stored list unfiltered.
func (s *TransactionService) All(ctx context.Context) ([]core.Transaction, error) {
	return s.store.Load(ctx)
}

func (s *TransactionService) save(ctx context.Context, list []core.Transaction) error {
	if err := s.store.Save(ctx, list); err != nil {
		return err
	}
	if s.dashboard != nil {
		s.dashboard.Purge()
	}
	return nil
}

// publish logs failures instead of returning them; the record is already
// stored.
func (s *TransactionService) publish(ctx context.Context, action amqp.Action, tx core.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, action, tx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			"action", action, log.FieldTxID, tx.ID, log.FieldError, err)
	}
}
