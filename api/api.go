// Package api serves stored runs over HTTP. It only reads from the store.
//
//	GET /health
//	GET /runs
//	GET /runs/{id}                         id may be "latest"
//	GET /runs/{id}/scores?normalized=true
//	GET /runs/{id}/networks/{objective}    objective slug
//	GET /runs/{id}/geojson?segments=10
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/katalvlaran/railnet/export"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/score"
	"github.com/katalvlaran/railnet/store"
)

// RunReader is the part of the store the API needs.
type RunReader interface {
	ListRuns(ctx context.Context) ([]store.Summary, error)
	GetRun(ctx context.Context, id uuid.UUID) (*store.Run, error)
	LatestRun(ctx context.Context) (*store.Run, error)
}

// Handler serves the run API.
type Handler struct {
	runs RunReader
	log  *log.Logger
}

// NewHandler returns a Handler over runs. A nil logger discards.
func NewHandler(runs RunReader, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Handler{runs: runs, log: logger}
}

// RegisterRoutes adds the API routes to router.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.HandleFunc("/runs", h.ListRuns).Methods(http.MethodGet)
	router.HandleFunc("/runs/{id}", h.GetRun).Methods(http.MethodGet)
	router.HandleFunc("/runs/{id}/scores", h.GetScores).Methods(http.MethodGet)
	router.HandleFunc("/runs/{id}/networks/{objective}", h.GetNetwork).Methods(http.MethodGet)
	router.HandleFunc("/runs/{id}/geojson", h.GetGeoJSON).Methods(http.MethodGet)
}

// Router returns a new router with the API routes.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	return r
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListRuns lists run summaries, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.runs.ListRuns(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if runs == nil {
		runs = []store.Summary{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun returns one run with nodes, networks and scores.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

// ScoreResponse is the body of GetScores.
type ScoreResponse struct {
	Normalized bool        `json:"normalized"`
	Rows       []score.Row `json:"rows"`
}

// GetScores returns the score rows in display order, optionally normalized
// by column mean.
func (h *Handler) GetScores(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	normalized := false
	if v := r.URL.Query().Get("normalized"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid normalized: "+v)
			return
		}
		normalized = b
	}

	tbl := run.Table()
	if normalized {
		tbl = tbl.Normalized()
	}
	h.writeJSON(w, http.StatusOK, ScoreResponse{Normalized: normalized, Rows: tbl.Display()})
}

// GetNetwork returns one network of a run.
func (h *Handler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	obj, err := network.ParseObjective(mux.Vars(r)["objective"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	nw, found := run.Network(obj)
	if !found {
		h.writeError(w, http.StatusNotFound, "network not built: "+obj.Slug())
		return
	}
	h.writeJSON(w, http.StatusOK, nw)
}

// GetGeoJSON returns the nodes and networks of a run as a FeatureCollection.
func (h *Handler) GetGeoJSON(w http.ResponseWriter, r *http.Request) {
	run, ok := h.run(w, r)
	if !ok {
		return
	}
	segments := export.DefaultSegments
	if v := r.URL.Query().Get("segments"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 {
			h.writeError(w, http.StatusBadRequest, "invalid segments: "+v)
			return
		}
		segments = n
	}
	fc, err := export.FeatureCollection(run.Nodes, run.Networks, segments)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		h.log.Printf("api: encode geojson: %v", err)
	}
}

// run resolves {id}, writing the error response itself when it fails.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*store.Run, bool) {
	raw := mux.Vars(r)["id"]

	var (
		run *store.Run
		err error
	)
	if raw == "latest" {
		run, err = h.runs.LatestRun(r.Context())
	} else {
		id, perr := uuid.Parse(raw)
		if perr != nil {
			h.writeError(w, http.StatusBadRequest, "invalid run id: "+raw)
			return nil, false
		}
		run, err = h.runs.GetRun(r.Context(), id)
	}
	if err != nil {
		h.fail(w, err)
		return nil, false
	}

	return run, true
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.log.Printf("api: %v", err)
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Printf("api: encode response: %v", err)
	}
}
