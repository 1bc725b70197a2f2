package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/annexlabs/annex/internal/projects"
	"github.com/annexlabs/annex/pkg/handlers"
	"github.com/annexlabs/annex/pkg/routes"
)

// Handler streams export records over HTTP.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler for the given export system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "export"),
	}
}

// Routes returns the export route table, nested beneath the owning project.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/projects/{projectID}/export",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Stream},
		},
	}
}

// Stream writes the project's records as newline-delimited JSON, flushing
// each record as it is produced. The approved query parameter restricts
// output to examples with at least one recorded approval. An error after the
// first record aborts the stream with a trailing {"error": ...} line;
// everything written before it is valid.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(r.PathValue("projectID"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, projects.ErrNotFound)
		return
	}

	approvedOnly := false
	if v := r.URL.Query().Get("approved"); v != "" {
		approvedOnly, err = strconv.ParseBool(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid approved value %q", v))
			return
		}
	}

	flusher, _ := w.(http.Flusher)
	encoder := json.NewEncoder(w)
	started := false

	for record, err := range h.sys.List(r.Context(), projectID, approvedOnly) {
		if err != nil {
			if !started {
				handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
				return
			}
			h.logger.Error("export stream aborted", "project_id", projectID, "error", err)
			if encodeErr := encoder.Encode(map[string]string{"error": err.Error()}); encodeErr != nil {
				h.logger.Error("encode export error line", "project_id", projectID, "error", encodeErr)
			}
			return
		}

		if !started {
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.WriteHeader(http.StatusOK)
			started = true
		}

		if err := encoder.Encode(record); err != nil {
			h.logger.Error("encode export record", "project_id", projectID, "error", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	if !started {
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.WriteHeader(http.StatusOK)
	}
}
