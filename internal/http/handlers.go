package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/session"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	}).Write(w)
}

// handleReady verifies the store can be read.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if _, err := s.transactions.All(ctx); err != nil {
		checks["store"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.limiter.ActiveClients(),
		"status":         "ok",
	}

	NewResponse().Status(httpStatus).JSON(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics reports counters in a Prometheus-like text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	traceMetrics := s.tracer.GetMetrics()

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_server_errors_total Responses with a 5xx status\n")
	fmt.Fprintf(w, "# TYPE http_server_errors_total counter\n")
	fmt.Fprintf(w, "http_server_errors_total %d\n\n", traceMetrics.ServerErrors)

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", s.limiter.Hits())

	fmt.Fprintf(w, "# HELP suspicious_requests_total Total suspicious requests detected\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n\n", s.detector.SuspiciousCount())

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", s.limiter.ActiveClients())

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", time.Since(s.started).Seconds())
}

type sessionResponse struct {
	SignedIn bool          `json:"signedIn"`
	User     *session.User `json:"user,omitempty"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	u, ok, err := s.sessions.Current(r.Context())
	if err != nil {
		s.fail(w, r, "Failed to load session", err)
		return
	}
	resp := sessionResponse{SignedIn: ok}
	if ok {
		resp.User = &u
	}
	NewResponse().JSON(resp).Write(w)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	u, err := s.sessions.SignIn(r.Context())
	if err != nil {
		s.fail(w, r, "Failed to sign in", err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "User signed in", log.FieldUserID, u.ID)
	NewResponse().JSON(sessionResponse{SignedIn: true, User: &u}).Write(w)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.SignOut(r.Context()); err != nil {
		s.fail(w, r, "Failed to sign out", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type themeResponse struct {
	Dark bool `json:"dark"`
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	dark, err := s.theme.Dark(r.Context())
	if err != nil {
		s.fail(w, r, "Failed to load theme", err)
		return
	}
	NewResponse().JSON(themeResponse{Dark: dark}).Write(w)
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		ErrorFor(err).Write(w)
		return
	}
	dark, err := strconv.ParseBool(p.Get("dark"))
	if err != nil {
		BadRequestError("dark must be true or false").Write(w)
		return
	}
	if err := s.theme.SetDark(r.Context(), dark); err != nil {
		s.fail(w, r, "Failed to save theme", err)
		return
	}
	NewResponse().JSON(themeResponse{Dark: dark}).Write(w)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	dark, err := s.theme.Toggle(r.Context())
	if err != nil {
		s.fail(w, r, "Failed to toggle theme", err)
		return
	}
	NewResponse().JSON(themeResponse{Dark: dark}).Write(w)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	NewResponse().JSON(map[string]any{
		"categories": core.Categories(),
		"types":      []core.TxType{core.Expense, core.Income},
	}).Write(w)
}

// handleParse previews the draft for a free-text entry. Nothing is stored.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		ErrorFor(err).Write(w)
		return
	}
	text := p.Get("text")
	if text == "" {
		BadRequestError("text is required").Write(w)
		return
	}
	NewResponse().JSON(s.transactions.Parse(text)).Write(w)
}

// fail logs an unexpected error and answers with the mapped status.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	resp := ErrorFor(err)
	if resp.statusCode >= http.StatusInternalServerError {
		log.FromContext(r.Context()).ErrorContext(r.Context(), msg, log.FieldError, err)
	}
	resp.Write(w)
}
