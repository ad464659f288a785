package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	goption "google.golang.org/api/option"

	"fintrack/internal/core"
)

func TestFindRow(t *testing.T) {
	values := [][]any{{"ID"}, {}, {"local-1"}, {" local-2 "}}
	tests := []struct {
		id   string
		want int
	}{
		{"local-1", 3},
		{"local-2", 4},
		{"ID", 1},
		{"missing", 0},
	}
	for _, tt := range tests {
		if got := findRow(values, tt.id); got != tt.want {
			t.Errorf("findRow(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestRowValues(t *testing.T) {
	tx := core.Transaction{
		ID: "local-1", UserID: "local-uid-1", Description: "Lunch", Amount: 12.5,
		Category: core.Food, Type: core.Expense,
		Date: time.Date(2024, 3, 5, 10, 0, 0, 0, time.FixedZone("X", 3600)),
	}
	got := rowValues(tx)
	want := []any{"local-1", "Lunch", 12.5, "Food", "expense", "2024-03-05T09:00:00Z", "local-uid-1"}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("col %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNew_MissingSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{SpreadsheetID: "sid"})
	if err == nil || !strings.Contains(err.Error(), "missing credentials") {
		t.Fatalf("unexpected error: %v", err)
	}
}

// fakeSheets serves the subset of the Sheets API the client uses.
type fakeSheets struct {
	mu      sync.Mutex
	ids     []string
	updates []string
	appends int
	deleted []int64
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.Contains(path, "/values/"):
		rows := make([][]any, 0, len(f.ids))
		for _, id := range f.ids {
			rows = append(rows, []any{id})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"values": rows})
	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		var vr struct {
			Values [][]any `json:"values"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &vr)
		rng := path[strings.Index(path, "/values/")+len("/values/"):]
		f.updates = append(f.updates, rng)
		if len(f.ids) == 0 && len(vr.Values) == 1 {
			f.ids = append(f.ids, fmtCell(vr.Values[0][0]))
		}
		_, _ = io.WriteString(w, `{}`)
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":append"):
		var vr struct {
			Values [][]any `json:"values"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &vr)
		f.appends++
		f.ids = append(f.ids, fmtCell(vr.Values[0][0]))
		_, _ = io.WriteString(w, `{}`)
	case r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"sheets":[{"properties":{"sheetId":0,"title":"Other"}},{"properties":{"sheetId":42,"title":"Transactions"}}]}`)
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		var req struct {
			Requests []struct {
				DeleteDimension struct {
					Range struct {
						SheetID    int64 `json:"sheetId"`
						StartIndex int64 `json:"startIndex"`
					} `json:"range"`
				} `json:"deleteDimension"`
			} `json:"requests"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		rg := req.Requests[0].DeleteDimension.Range
		if rg.SheetID == 42 && int(rg.StartIndex) < len(f.ids) {
			f.deleted = append(f.deleted, rg.StartIndex)
			f.ids = append(f.ids[:rg.StartIndex], f.ids[rg.StartIndex+1:]...)
		}
		_, _ = io.WriteString(w, `{}`)
	default:
		http.Error(w, "unexpected "+r.Method+" "+path, http.StatusNotFound)
	}
}

func fmtCell(v any) string {
	s, _ := v.(string)
	return s
}

func newTestClient(t *testing.T) (*Client, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), Config{
		SpreadsheetID: "sid",
		SheetName:     "Transactions",
		Options: []goption.ClientOption{
			goption.WithEndpoint(srv.URL + "/"),
			goption.WithoutAuthentication(),
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, fake
}

func TestClientUpsertAndRemove(t *testing.T) {
	ctx := context.Background()
	c, fake := newTestClient(t)

	tx := core.Transaction{ID: "local-1", Description: "Tea", Amount: 3, Category: core.Food, Type: core.Expense}
	if err := c.Upsert(ctx, tx); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if len(fake.ids) != 2 || fake.ids[0] != "ID" || fake.ids[1] != "local-1" || fake.appends != 1 {
		t.Fatalf("after first upsert ids = %v appends = %d", fake.ids, fake.appends)
	}

	tx.Amount = 4
	if err := c.Upsert(ctx, tx); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if fake.appends != 1 {
		t.Errorf("second upsert should update in place, appends = %d", fake.appends)
	}
	if last := fake.updates[len(fake.updates)-1]; last != "Transactions!A2:G2" {
		t.Errorf("last update range = %q", last)
	}

	if err := c.Remove(ctx, "local-1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != 1 {
		t.Errorf("deleted = %v", fake.deleted)
	}
	if err := c.Remove(ctx, "local-1"); err != nil {
		t.Errorf("Remove(missing) error = %v", err)
	}
}
