package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/journal"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/metrics"
	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/workflow"

	"go.uber.org/zap"
)

// JournalReader is the read side of the event journal. Satisfied by
// *journal.Journal; kept as an interface so the API can run without a
// journal (nil disables the endpoint).
type JournalReader interface {
	Recent(ctx context.Context, limit int) ([]journal.Entry, error)
}

// PanelAPI serves the panel's JSON endpoints:
//   - POST /api/generate   - capture a snapshot and generate a preview
//   - POST /api/apply      - apply the current preview as a new layer
//   - POST /api/refresh    - re-read the document summary
//   - GET  /api/state      - current panel view
//   - GET  /api/metrics    - operation aggregates
//   - GET  /api/operations - recent operation records
//   - GET  /api/journal    - recent persisted workflow events
//   - GET  /api/status     - system health summary
type PanelAPI struct {
	controller *workflow.Controller
	store      *metrics.Store
	journal    JournalReader
	logger     *zap.Logger

	defaultLimit int
	maxLimit     int
}

// NewPanelAPI wires the API over its collaborators. journalReader may be nil.
func NewPanelAPI(controller *workflow.Controller, store *metrics.Store, journalReader JournalReader, logger *zap.Logger) *PanelAPI {
	return &PanelAPI{
		controller:   controller,
		store:        store,
		journal:      journalReader,
		logger:       logger,
		defaultLimit: 20,
		maxLimit:     100,
	}
}

// RegisterRoutes attaches all API handlers to mux.
func (a *PanelAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", a.handleGenerate)
	mux.HandleFunc("/api/apply", a.handleApply)
	mux.HandleFunc("/api/refresh", a.handleRefresh)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/metrics", a.handleMetrics)
	mux.HandleFunc("/api/operations", a.handleOperations)
	mux.HandleFunc("/api/journal", a.handleJournal)
	mux.HandleFunc("/api/status", a.handleStatus)
}

func (a *PanelAPI) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encoding response failed", zap.Error(err))
	}
}

func (a *PanelAPI) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, map[string]string{"error": msg})
}

func (a *PanelAPI) requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func (a *PanelAPI) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !a.requirePost(w, r) {
		return
	}
	var snap workflow.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.writeJSON(w, http.StatusOK, a.controller.Generate(r.Context(), snap))
}

func (a *PanelAPI) handleApply(w http.ResponseWriter, r *http.Request) {
	if !a.requirePost(w, r) {
		return
	}
	a.writeJSON(w, http.StatusOK, a.controller.Apply(r.Context()))
}

func (a *PanelAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !a.requirePost(w, r) {
		return
	}
	a.writeJSON(w, http.StatusOK, a.controller.Refresh(r.Context()))
}

func (a *PanelAPI) handleState(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.controller.View())
}

func (a *PanelAPI) handleMetrics(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.store.Metrics())
}

func (a *PanelAPI) handleOperations(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.store.Recent(a.limit(r)))
}

func (a *PanelAPI) handleJournal(w http.ResponseWriter, r *http.Request) {
	if a.journal == nil {
		a.writeError(w, http.StatusNotFound, "journal not enabled")
		return
	}
	entries, err := a.journal.Recent(r.Context(), a.limit(r))
	if err != nil {
		a.logger.Error("journal query failed", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "journal query failed")
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	a.writeJSON(w, http.StatusOK, entries)
}

func (a *PanelAPI) handleStatus(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.store.SystemStatus())
}

// limit parses the ?limit= query parameter, clamped to maxLimit.
func (a *PanelAPI) limit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return a.defaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return a.defaultLimit
	}
	if n > a.maxLimit {
		return a.maxLimit
	}
	return n
}
