package export_test

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/annexlabs/annex/internal/export"
	"github.com/annexlabs/annex/internal/projects"
	"github.com/annexlabs/annex/pkg/routes"
)

type mockSystem struct {
	listFn func(ctx context.Context, projectID int64, approvedOnly bool) iter.Seq2[export.Record, error]
}

func (m *mockSystem) Handler() *export.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, projectID int64, approvedOnly bool) iter.Seq2[export.Record, error] {
	return m.listFn(ctx, projectID, approvedOnly)
}

func newTestHandler(sys export.System) *export.Handler {
	return export.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupMux(h *export.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func recordSeq(records []export.Record, err error) iter.Seq2[export.Record, error] {
	return func(yield func(export.Record, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
		if err != nil {
			yield(export.Record{}, err)
		}
	}
}

func sampleRecord(id int64, user string) export.Record {
	return export.Record{
		ID:        id,
		Data:      "Hello",
		Label:     []export.Label{export.TextLabel("greeting")},
		User:      user,
		Metadata:  map[string]any{},
		Relations: []export.RelationTuple{},
	}
}

func bodyLines(body string) []string {
	trimmed := strings.TrimSuffix(body, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

func TestHandlerStream(t *testing.T) {
	var capturedID int64
	var capturedApproved bool
	sys := &mockSystem{
		listFn: func(_ context.Context, projectID int64, approvedOnly bool) iter.Seq2[export.Record, error] {
			capturedID = projectID
			capturedApproved = approvedOnly
			return recordSeq([]export.Record{sampleRecord(1, "alice"), sampleRecord(1, "bob")}, nil)
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/7/export", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("content-type = %q, want application/x-ndjson", ct)
	}
	if capturedID != 7 {
		t.Errorf("project id = %d, want 7", capturedID)
	}
	if capturedApproved {
		t.Error("approvedOnly = true, want false when param absent")
	}

	lines := bodyLines(rec.Body.String())
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}

	wantUsers := []string{"alice", "bob"}
	for i, line := range lines {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i, err)
		}
		if parsed["user"] != wantUsers[i] {
			t.Errorf("line %d user = %v, want %s", i, parsed["user"], wantUsers[i])
		}
	}
}

func TestHandlerStreamApprovedParam(t *testing.T) {
	var capturedApproved bool
	sys := &mockSystem{
		listFn: func(_ context.Context, _ int64, approvedOnly bool) iter.Seq2[export.Record, error] {
			capturedApproved = approvedOnly
			return recordSeq(nil, nil)
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/7/export?approved=true", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !capturedApproved {
		t.Error("approvedOnly = false, want true")
	}
}

func TestHandlerStreamInvalidApproved(t *testing.T) {
	var listCalled bool
	sys := &mockSystem{
		listFn: func(_ context.Context, _ int64, _ bool) iter.Seq2[export.Record, error] {
			listCalled = true
			return recordSeq(nil, nil)
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/7/export?approved=banana", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if listCalled {
		t.Error("system should not be consulted for an invalid approved value")
	}
}

func TestHandlerStreamInvalidProjectID(t *testing.T) {
	sys := &mockSystem{}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/not-a-number/export", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerStreamProjectNotFound(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, _ int64, _ bool) iter.Seq2[export.Record, error] {
			return recordSeq(nil, projects.ErrNotFound)
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/404/export", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var parsed map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if parsed["error"] == "" {
		t.Error("error body is empty")
	}
}

func TestHandlerStreamUnsupportedType(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, _ int64, _ bool) iter.Seq2[export.Record, error] {
			return recordSeq(nil, export.ErrUnsupportedType)
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/7/export", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerStreamEmpty(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, _ int64, _ bool) iter.Seq2[export.Record, error] {
			return recordSeq(nil, nil)
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/7/export", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("content-type = %q, want application/x-ndjson", ct)
	}
	if body := rec.Body.String(); body != "" {
		t.Errorf("body = %q, want empty", body)
	}
}

func TestHandlerStreamAbortsMidStream(t *testing.T) {
	sys := &mockSystem{
		listFn: func(_ context.Context, _ int64, _ bool) iter.Seq2[export.Record, error] {
			return recordSeq([]export.Record{sampleRecord(1, "alice")}, projects.ErrNotFound)
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/7/export", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (headers sent before the failure)", rec.Code)
	}

	lines := bodyLines(rec.Body.String())
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2 (one record, one trailing error)", len(lines))
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("record line is not valid JSON: %v", err)
	}
	if record["user"] != "alice" {
		t.Errorf("user = %v, want alice", record["user"])
	}

	var trailer map[string]string
	if err := json.Unmarshal([]byte(lines[1]), &trailer); err != nil {
		t.Fatalf("error line is not valid JSON: %v", err)
	}
	if trailer["error"] == "" {
		t.Error("error line is empty")
	}
}

func TestHandlerRoutes(t *testing.T) {
	h := newTestHandler(&mockSystem{})
	group := h.Routes()

	if group.Prefix != "/projects/{projectID}/export" {
		t.Errorf("prefix = %q, want /projects/{projectID}/export", group.Prefix)
	}
	if len(group.Routes) != 1 {
		t.Fatalf("route count = %d, want 1", len(group.Routes))
	}
	if group.Routes[0].Method != "GET" || group.Routes[0].Pattern != "" {
		t.Errorf("route = %s %q, want GET \"\"", group.Routes[0].Method, group.Routes[0].Pattern)
	}
}
