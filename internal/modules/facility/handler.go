package facility

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes facility HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/facilities", func(r chi.Router) {
		r.Get("/", h.listFacilities)                // GET /api/v1/facilities
		r.Post("/", h.createFacility)               // POST /api/v1/facilities
		r.Get("/{id}", h.getFacility)               // GET /api/v1/facilities/{id}
		r.Get("/{id}/sessions", h.listForFacility)  // GET /api/v1/facilities/{id}/sessions?status=OPEN
	})
	r.Route("/api/v1/facility-sessions", func(r chi.Router) {
		r.Get("/", h.listSessions)          // GET /api/v1/facility-sessions?status=OPEN
		r.Post("/", h.openSession)          // POST /api/v1/facility-sessions
		r.Post("/{id}/close", h.closeSession) // POST /api/v1/facility-sessions/{id}/close
	})
}

func (h *Handler) listFacilities(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListFacilities(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) createFacility(w http.ResponseWriter, r *http.Request) {
	var req CreateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	f, err := h.service.CreateFacility(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, f)
}

func (h *Handler) getFacility(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid facility id"})
		return
	}
	f, err := h.service.GetFacility(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "facility not found"})
		return
	}
	respond(w, http.StatusOK, f)
}

func (h *Handler) listForFacility(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid facility id"})
		return
	}
	out, err := h.service.ListSessions(r.Context(), &id, r.URL.Query().Get("status"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListSessions(r.Context(), nil, r.URL.Query().Get("status"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	session, err := h.service.OpenSession(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, session)
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return
	}
	var req CloseSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	session, err := h.service.CloseSession(r.Context(), id, req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, session)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "not open") || strings.Contains(msg, "at capacity") || strings.Contains(msg, "closed"):
		return http.StatusUnprocessableEntity
	case strings.Contains(msg, "invalid") || strings.Contains(msg, "required") || strings.Contains(msg, "must"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
