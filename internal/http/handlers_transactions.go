package http

import (
	"bytes"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		ErrorFor(err).Write(w)
		return
	}
	list, err := s.transactions.List(r.Context(), f)
	if err != nil {
		s.fail(w, r, "Failed to list transactions", err)
		return
	}
	if list == nil {
		list = []core.Transaction{}
	}
	NewResponse().JSON(list).Write(w)
}

// handleCreateTransaction stores a new record. When the body carries a text
// field, the parsed draft is the starting point and explicit fields
// override it.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		ErrorFor(err).Write(w)
		return
	}

	var base core.Draft
	if text := p.Get("text"); text != "" {
		base = s.transactions.Parse(text)
	}
	d, err := draftFromBody(p, base)
	if err != nil {
		ErrorFor(err).Write(w)
		return
	}

	tx, err := s.transactions.Create(ctx, s.sessions.UserID(ctx), d)
	if err != nil {
		s.fail(w, r, "Failed to create transaction", err)
		return
	}
	NewResponse().Status(http.StatusCreated).JSON(tx).Write(w)
}

// handleUpdateTransaction overlays the body on the stored record, so fields
// left out keep their value.
func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	existing, err := s.transactions.Get(ctx, id)
	if err != nil {
		s.fail(w, r, "Failed to load transaction", err)
		return
	}

	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		ErrorFor(err).Write(w)
		return
	}
	d, err := draftFromBody(p, existing.Draft())
	if err != nil {
		ErrorFor(err).Write(w)
		return
	}

	tx, err := s.transactions.Update(ctx, id, d)
	if err != nil {
		s.fail(w, r, "Failed to update transaction", err)
		return
	}
	NewResponse().JSON(tx).Write(w)
}

// handleDeleteTransaction is idempotent: unknown ids answer deleted=false.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.transactions.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, "Failed to delete transaction", err)
		return
	}
	NewResponse().JSON(map[string]bool{"deleted": deleted}).Write(w)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.transactions.Dashboard(r.Context())
	if err != nil {
		s.fail(w, r, "Failed to build dashboard", err)
		return
	}
	NewResponse().JSON(d).Write(w)
}

// handleExport sends the whole list as a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.transactions.ExportCSV(r.Context(), &buf); err != nil {
		s.fail(w, r, "Failed to export transactions", err)
		return
	}
	NewResponse().
		Header("Content-Disposition", `attachment; filename="transactions.csv"`).
		Body("text/csv; charset=utf-8", buf.Bytes()).
		Write(w)
}

// handleImport reads a CSV body and prepends its records.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)

	imported, err := s.transactions.ImportCSV(ctx, s.sessions.UserID(ctx), body)
	if err != nil {
		s.fail(w, r, "Failed to import transactions", err)
		return
	}
	if imported == nil {
		imported = []core.Transaction{}
	}
	log.FromContext(ctx).InfoContext(ctx, "CSV imported", log.FieldCount, len(imported))
	NewResponse().Status(http.StatusCreated).JSON(map[string]any{
		"imported":     len(imported),
		"transactions": imported,
	}).Write(w)
}
