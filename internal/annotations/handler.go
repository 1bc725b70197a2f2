package annotations

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/annexlabs/annex/pkg/handlers"
	"github.com/annexlabs/annex/pkg/routes"
)

// Handler exposes annotation operations over HTTP.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler for the given annotation system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "annotations"),
	}
}

// Routes returns the annotation route table. Category, span, and text routes
// nest beneath an example; relation and stats routes nest beneath the project.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/projects/{projectID}",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/stats", Handler: h.Stats},
		},
		Children: []routes.Group{
			{
				Prefix: "/examples/{exampleID}/categories",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListCategories},
					{Method: "POST", Pattern: "", Handler: h.CreateCategory},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.DeleteCategory},
				},
			},
			{
				Prefix: "/examples/{exampleID}/spans",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListSpans},
					{Method: "POST", Pattern: "", Handler: h.CreateSpan},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.DeleteSpan},
				},
			},
			{
				Prefix: "/examples/{exampleID}/texts",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListTexts},
					{Method: "POST", Pattern: "", Handler: h.CreateText},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.DeleteText},
				},
			},
			{
				Prefix: "/relations",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.ListRelations},
					{Method: "POST", Pattern: "", Handler: h.CreateRelation},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.DeleteRelation},
				},
			},
		},
	}
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}

	result, err := h.sys.ListCategories(r.Context(), exampleID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}

	var cmd CreateCategoryCommand
	if ok := h.decode(w, r, &cmd); !ok {
		return
	}
	if ok := h.requireUser(w, cmd.UserName); !ok {
		return
	}

	result, err := h.sys.CreateCategory(r.Context(), exampleID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sys.DeleteCategory(r.Context(), exampleID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListSpans(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}

	result, err := h.sys.ListSpans(r.Context(), exampleID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateSpan(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}

	var cmd CreateSpanCommand
	if ok := h.decode(w, r, &cmd); !ok {
		return
	}
	if ok := h.requireUser(w, cmd.UserName); !ok {
		return
	}

	result, err := h.sys.CreateSpan(r.Context(), exampleID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) DeleteSpan(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sys.DeleteSpan(r.Context(), exampleID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListTexts(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}

	result, err := h.sys.ListTexts(r.Context(), exampleID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateText(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}

	var cmd CreateTextCommand
	if ok := h.decode(w, r, &cmd); !ok {
		return
	}
	if ok := h.requireUser(w, cmd.UserName); !ok {
		return
	}

	result, err := h.sys.CreateText(r.Context(), exampleID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) DeleteText(w http.ResponseWriter, r *http.Request) {
	exampleID, ok := h.pathID(w, r, "exampleID")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sys.DeleteText(r.Context(), exampleID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListRelations(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}

	result, err := h.sys.ListRelations(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateRelation(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}

	var cmd CreateRelationCommand
	if ok := h.decode(w, r, &cmd); !ok {
		return
	}
	if ok := h.requireUser(w, cmd.UserName); !ok {
		return
	}

	result, err := h.sys.CreateRelation(r.Context(), projectID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) DeleteRelation(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sys.DeleteRelation(r.Context(), projectID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats reports the project's stored annotation totals by kind.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}

	result, err := h.sys.Counts(r.Context(), projectID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (h *Handler) requireUser(w http.ResponseWriter, userName string) bool {
	if strings.TrimSpace(userName) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("user_name is required"))
		return false
	}
	return true
}
