package accounting

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes accounting HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/accounting", func(r chi.Router) {
		r.Post("/entries", h.createEntry)          // POST /api/v1/accounting/entries
		r.Get("/entries", h.listEntries)           // GET  /api/v1/accounting/entries?from=2026-08-01&to=2026-09-01&type=SALE
		r.Get("/entries/{id}", h.getEntry)         // GET  /api/v1/accounting/entries/{id}
		r.Get("/summary/daily", h.dailySummary)    // GET  /api/v1/accounting/summary/daily?date=2026-08-29
	})
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	e, err := h.service.CreateEntry(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "must") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, e)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	from, err := parseDate(r.URL.Query().Get("from"), time.Now().AddDate(0, -1, 0))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid from date"})
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"), time.Now().AddDate(0, 0, 1))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid to date"})
		return
	}
	entries, err := h.service.ListEntries(r.Context(), from, to, r.URL.Query().Get("type"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, entries)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	e, err := h.service.GetEntry(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "entry not found"})
		return
	}
	respond(w, http.StatusOK, e)
}

func (h *Handler) dailySummary(w http.ResponseWriter, r *http.Request) {
	day, err := parseDate(r.URL.Query().Get("date"), time.Now())
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid date"})
		return
	}
	summary, err := h.service.DailySummary(r.Context(), day)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, summary)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", s)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
