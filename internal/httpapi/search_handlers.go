package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/events"
	"jobradar-engine/internal/search"
	"jobradar-engine/internal/store"
)

type SearchHandler struct {
	DB           *sql.DB
	CfgVal       *atomic.Value // config.Config
	SearchStatus *atomic.Value // search.Status
	Hub          *events.Hub
	RunSearch    func(ctx context.Context, cfg config.Config, req domain.SearchRequest) []domain.ScoredListing
}

// Run executes one search synchronously and returns the ranked list.
// "No results" is a 200 with an empty array, never an error.
func (h SearchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Keywords) == "" && req.Profile.Empty() {
		// still fine: the planner falls back to its default terms
		log.Printf("[api] search without keywords or profile; using planner defaults")
	}

	st := h.SearchStatus.Load().(search.Status)
	if st.Running {
		WriteError(w, r, http.StatusConflict, "busy", "a search is already running")
		return
	}
	now := time.Now()
	h.SearchStatus.Store(search.Status{
		Running:   true,
		LastRunAt: now.Format(time.RFC3339),
		LastOkAt:  st.LastOkAt,
	})

	cfg := h.CfgVal.Load().(config.Config)
	listings := h.RunSearch(r.Context(), cfg, req)
	dur := time.Since(now)

	h.SearchStatus.Store(search.Status{
		Running:     false,
		LastRunAt:   now.Format(time.RFC3339),
		LastOkAt:    time.Now().Format(time.RFC3339),
		LastResults: len(listings),
	})

	h.recordRun(r.Context(), cfg, req, listings, dur)

	writeJSON(w, listings)
}

func (h SearchHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.SearchStatus.Load().(search.Status)
	writeJSON(w, st)
}

func (h SearchHandler) recordRun(ctx context.Context, cfg config.Config, req domain.SearchRequest, listings []domain.ScoredListing, dur time.Duration) {
	if h.DB == nil {
		return
	}

	scored := 0
	for _, l := range listings {
		if l.Scored() {
			scored++
		}
	}

	// History writes are best-effort; a failed insert never fails the
	// search response.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	id, err := store.RecordRun(rctx, h.DB, store.Run{
		RanAt:      time.Now().UTC(),
		Keywords:   req.Keywords,
		Location:   req.Location,
		Sources:    req.Sources,
		Results:    len(listings),
		Scored:     scored,
		DurationMS: dur.Milliseconds(),
	}, listings)
	if err != nil {
		log.Printf("[history] record failed: %v", err)
		return
	}
	if err := store.PruneRuns(rctx, h.DB, cfg.History.KeepRuns); err != nil {
		log.Printf("[history] prune failed: %v", err)
	}

	reqID := RequestIDFrom(ctx)
	h.Hub.Publish(events.MakeEvent(reqID, "run_recorded", 1, map[string]any{"id": id}))
}
