package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentTransaction, Output: &buf})
	l.Info("created", FieldTxID, "local-1")

	out := buf.String()
	if !strings.Contains(out, "component=transaction") || !strings.Contains(out, "transaction_id=local-1") {
		t.Fatalf("unexpected output: %s", out)
	}

	buf.Reset()
	child := l.WithComponent(ComponentStorage)
	if child.Component() != ComponentStorage {
		t.Fatalf("component = %q", child.Component())
	}
	child.Debug("loaded")
	if !strings.Contains(buf.String(), "component=storage") {
		t.Fatalf("child output missing component: %s", buf.String())
	}
}

func TestFieldsWithError(t *testing.T) {
	f := NewFields().WithError(nil)
	if _, ok := f[FieldError]; ok {
		t.Fatalf("nil error should not be recorded")
	}
	f.WithError(errors.New("boom"))
	if f[FieldError] != "boom" {
		t.Fatalf("error field = %v", f[FieldError])
	}
	if len(f.ToSlice()) != 2 {
		t.Fatalf("ToSlice length = %d", len(f.ToSlice()))
	}
}

func TestLogRequestUsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Component: ComponentHTTP, Output: &buf})

	r := httptest.NewRequest(http.MethodGet, "/api/transactions?q=tea", nil)
	ctx := NewContext(r.Context(), base.With(FieldRequestID, "req-42"))
	LogRequest(ctx, r, http.StatusNotFound, 3, "10.0.0.1")

	out := buf.String()
	for _, want := range []string{"level=WARN", "request_id=req-42", "status_code=404", `query="q=tea"`, "client_ip=10.0.0.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestFromContextDefault(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Logger == nil {
		t.Fatalf("FromContext should never return nil")
	}
}
