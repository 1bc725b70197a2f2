package labels_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/annexlabs/annex/internal/labels"
	"github.com/annexlabs/annex/pkg/routes"
)

type mockSystem struct {
	listLabelTypesFn     func(ctx context.Context, projectID int64) ([]labels.LabelType, error)
	findLabelTypeFn      func(ctx context.Context, projectID, id int64) (*labels.LabelType, error)
	createLabelTypeFn    func(ctx context.Context, projectID int64, cmd labels.CreateLabelTypeCommand) (*labels.LabelType, error)
	updateLabelTypeFn    func(ctx context.Context, projectID, id int64, cmd labels.UpdateLabelTypeCommand) (*labels.LabelType, error)
	deleteLabelTypeFn    func(ctx context.Context, projectID, id int64) error
	listRelationTypesFn  func(ctx context.Context, projectID int64) ([]labels.RelationType, error)
	createRelationTypeFn func(ctx context.Context, projectID int64, cmd labels.CreateRelationTypeCommand) (*labels.RelationType, error)
	deleteRelationTypeFn func(ctx context.Context, projectID, id int64) error
}

func (m *mockSystem) Handler() *labels.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) ListLabelTypes(ctx context.Context, projectID int64) ([]labels.LabelType, error) {
	return m.listLabelTypesFn(ctx, projectID)
}

func (m *mockSystem) FindLabelType(ctx context.Context, projectID, id int64) (*labels.LabelType, error) {
	return m.findLabelTypeFn(ctx, projectID, id)
}

func (m *mockSystem) CreateLabelType(ctx context.Context, projectID int64, cmd labels.CreateLabelTypeCommand) (*labels.LabelType, error) {
	return m.createLabelTypeFn(ctx, projectID, cmd)
}

func (m *mockSystem) UpdateLabelType(ctx context.Context, projectID, id int64, cmd labels.UpdateLabelTypeCommand) (*labels.LabelType, error) {
	return m.updateLabelTypeFn(ctx, projectID, id, cmd)
}

func (m *mockSystem) DeleteLabelType(ctx context.Context, projectID, id int64) error {
	return m.deleteLabelTypeFn(ctx, projectID, id)
}

func (m *mockSystem) ListRelationTypes(ctx context.Context, projectID int64) ([]labels.RelationType, error) {
	return m.listRelationTypesFn(ctx, projectID)
}

func (m *mockSystem) CreateRelationType(ctx context.Context, projectID int64, cmd labels.CreateRelationTypeCommand) (*labels.RelationType, error) {
	return m.createRelationTypeFn(ctx, projectID, cmd)
}

func (m *mockSystem) DeleteRelationType(ctx context.Context, projectID, id int64) error {
	return m.deleteRelationTypeFn(ctx, projectID, id)
}

func newTestHandler(sys *mockSystem) *labels.Handler {
	return labels.NewHandler(sys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupMux(h *labels.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", labels.ErrNotFound, http.StatusNotFound},
		{"duplicate", labels.ErrDuplicate, http.StatusConflict},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", labels.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandlerListLabelTypes(t *testing.T) {
	t.Run("returns project catalog", func(t *testing.T) {
		var capturedProjectID int64
		sys := &mockSystem{
			listLabelTypesFn: func(_ context.Context, projectID int64) ([]labels.LabelType, error) {
				capturedProjectID = projectID
				return []labels.LabelType{
					{ID: 1, ProjectID: projectID, Text: "PER", BackgroundColor: "#209cee", TextColor: "#ffffff"},
					{ID: 2, ProjectID: projectID, Text: "ORG", BackgroundColor: "#ff3860", TextColor: "#ffffff"},
				}, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/projects/7/label-types", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if capturedProjectID != 7 {
			t.Errorf("project id = %d, want 7", capturedProjectID)
		}

		var got []labels.LabelType
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("label count = %d, want 2", len(got))
		}
		if got[0].Text != "PER" || got[1].Text != "ORG" {
			t.Errorf("labels = %s, %s, want PER, ORG", got[0].Text, got[1].Text)
		}
	})

	t.Run("invalid project id returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/projects/nope/label-types", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFindLabelType(t *testing.T) {
	t.Run("returns label type by id", func(t *testing.T) {
		sys := &mockSystem{
			findLabelTypeFn: func(_ context.Context, projectID, id int64) (*labels.LabelType, error) {
				return &labels.LabelType{ID: id, ProjectID: projectID, Text: "PER"}, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/projects/7/label-types/3", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got labels.LabelType
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != 3 {
			t.Errorf("id = %d, want 3", got.ID)
		}
		if got.ProjectID != 7 {
			t.Errorf("project id = %d, want 7", got.ProjectID)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findLabelTypeFn: func(_ context.Context, _, _ int64) (*labels.LabelType, error) {
				return nil, labels.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/projects/7/label-types/99", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerCreateLabelType(t *testing.T) {
	t.Run("creates label type", func(t *testing.T) {
		var capturedCmd labels.CreateLabelTypeCommand
		sys := &mockSystem{
			createLabelTypeFn: func(_ context.Context, projectID int64, cmd labels.CreateLabelTypeCommand) (*labels.LabelType, error) {
				capturedCmd = cmd
				return &labels.LabelType{ID: 1, ProjectID: projectID, Text: cmd.Text}, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(labels.CreateLabelTypeCommand{
			Text:            "LOC",
			BackgroundColor: "#23d160",
			TextColor:       "#ffffff",
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/projects/7/label-types", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if capturedCmd.Text != "LOC" {
			t.Errorf("text = %q, want LOC", capturedCmd.Text)
		}
		if capturedCmd.BackgroundColor != "#23d160" {
			t.Errorf("background_color = %q, want #23d160", capturedCmd.BackgroundColor)
		}
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/projects/7/label-types", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("duplicate text returns 409", func(t *testing.T) {
		sys := &mockSystem{
			createLabelTypeFn: func(_ context.Context, _ int64, _ labels.CreateLabelTypeCommand) (*labels.LabelType, error) {
				return nil, labels.ErrDuplicate
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(labels.CreateLabelTypeCommand{Text: "PER"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/projects/7/label-types", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})
}

func TestHandlerUpdateLabelType(t *testing.T) {
	t.Run("updates label type", func(t *testing.T) {
		var capturedID int64
		var capturedCmd labels.UpdateLabelTypeCommand
		sys := &mockSystem{
			updateLabelTypeFn: func(_ context.Context, projectID, id int64, cmd labels.UpdateLabelTypeCommand) (*labels.LabelType, error) {
				capturedID = id
				capturedCmd = cmd
				return &labels.LabelType{ID: id, ProjectID: projectID, Text: cmd.Text}, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(labels.UpdateLabelTypeCommand{Text: "PERSON"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/projects/7/label-types/3", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if capturedID != 3 {
			t.Errorf("id = %d, want 3", capturedID)
		}
		if capturedCmd.Text != "PERSON" {
			t.Errorf("text = %q, want PERSON", capturedCmd.Text)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			updateLabelTypeFn: func(_ context.Context, _, _ int64, _ labels.UpdateLabelTypeCommand) (*labels.LabelType, error) {
				return nil, labels.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(labels.UpdateLabelTypeCommand{Text: "PERSON"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/projects/7/label-types/99", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerDeleteLabelType(t *testing.T) {
	t.Run("deletes label type", func(t *testing.T) {
		var capturedProjectID, capturedID int64
		sys := &mockSystem{
			deleteLabelTypeFn: func(_ context.Context, projectID, id int64) error {
				capturedProjectID = projectID
				capturedID = id
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/projects/7/label-types/3", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if capturedProjectID != 7 || capturedID != 3 {
			t.Errorf("ids = %d/%d, want 7/3", capturedProjectID, capturedID)
		}
	})

	t.Run("invalid id returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/projects/7/label-types/nope", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerListRelationTypes(t *testing.T) {
	sys := &mockSystem{
		listRelationTypesFn: func(_ context.Context, projectID int64) ([]labels.RelationType, error) {
			return []labels.RelationType{
				{ID: 1, ProjectID: projectID, Name: "works_for"},
			}, nil
		},
	}
	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/projects/7/relation-types", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got []labels.RelationType
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("relation type count = %d, want 1", len(got))
	}
	if got[0].Name != "works_for" {
		t.Errorf("name = %q, want works_for", got[0].Name)
	}
}

func TestHandlerCreateRelationType(t *testing.T) {
	t.Run("creates relation type", func(t *testing.T) {
		var capturedCmd labels.CreateRelationTypeCommand
		sys := &mockSystem{
			createRelationTypeFn: func(_ context.Context, projectID int64, cmd labels.CreateRelationTypeCommand) (*labels.RelationType, error) {
				capturedCmd = cmd
				return &labels.RelationType{ID: 1, ProjectID: projectID, Name: cmd.Name}, nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(labels.CreateRelationTypeCommand{Name: "occurs_at"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/projects/7/relation-types", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if capturedCmd.Name != "occurs_at" {
			t.Errorf("name = %q, want occurs_at", capturedCmd.Name)
		}
	})

	t.Run("duplicate name returns 409", func(t *testing.T) {
		sys := &mockSystem{
			createRelationTypeFn: func(_ context.Context, _ int64, _ labels.CreateRelationTypeCommand) (*labels.RelationType, error) {
				return nil, labels.ErrDuplicate
			},
		}
		mux := setupMux(newTestHandler(sys))

		body, _ := json.Marshal(labels.CreateRelationTypeCommand{Name: "works_for"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/projects/7/relation-types", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})
}

func TestHandlerDeleteRelationType(t *testing.T) {
	t.Run("deletes relation type", func(t *testing.T) {
		var capturedID int64
		sys := &mockSystem{
			deleteRelationTypeFn: func(_ context.Context, _, id int64) error {
				capturedID = id
				return nil
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/projects/7/relation-types/4", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if capturedID != 4 {
			t.Errorf("id = %d, want 4", capturedID)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			deleteRelationTypeFn: func(_ context.Context, _, _ int64) error {
				return labels.ErrNotFound
			},
		}
		mux := setupMux(newTestHandler(sys))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/projects/7/relation-types/99", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerRoutes(t *testing.T) {
	sys := &mockSystem{}
	h := newTestHandler(sys)
	group := h.Routes()

	if group.Prefix != "/projects/{projectID}" {
		t.Errorf("prefix = %q, want /projects/{projectID}", group.Prefix)
	}
	if len(group.Children) != 2 {
		t.Fatalf("child group count = %d, want 2", len(group.Children))
	}

	labelTypes := group.Children[0]
	if labelTypes.Prefix != "/label-types" {
		t.Errorf("child prefix = %q, want /label-types", labelTypes.Prefix)
	}
	if len(labelTypes.Routes) != 5 {
		t.Errorf("label-types route count = %d, want 5", len(labelTypes.Routes))
	}

	relationTypes := group.Children[1]
	if relationTypes.Prefix != "/relation-types" {
		t.Errorf("child prefix = %q, want /relation-types", relationTypes.Prefix)
	}
	if len(relationTypes.Routes) != 3 {
		t.Errorf("relation-types route count = %d, want 3", len(relationTypes.Routes))
	}
}
