package rooms

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes room HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/rooms", func(r chi.Router) {
		r.Get("/", h.listRooms)              // GET /api/v1/rooms?status=AVAILABLE
		r.Post("/", h.createRoom)            // POST /api/v1/rooms
		r.Get("/{id}", h.getRoom)            // GET /api/v1/rooms/{id}
		r.Put("/{id}", h.updateRoom)         // PUT /api/v1/rooms/{id}
		r.Patch("/{id}/status", h.setStatus) // PATCH /api/v1/rooms/{id}/status
		r.Delete("/{id}", h.deleteRoom)      // DELETE /api/v1/rooms/{id}
	})
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListRooms(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	room, err := h.service.CreateRoom(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, room)
}

func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid room id"})
		return
	}
	room, err := h.service.GetRoom(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return
	}
	respond(w, http.StatusOK, room)
}

func (h *Handler) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid room id"})
		return
	}
	var req UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	room, err := h.service.UpdateRoom(r.Context(), id, req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, room)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid room id"})
		return
	}
	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	room, err := h.service.SetStatus(r.Context(), id, Status(strings.ToUpper(req.Status)))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, room)
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid room id"})
		return
	}
	if err := h.service.DeleteRoom(r.Context(), id); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "room deleted"})
}

// ── helpers ──────────────────────────────────────────────────────────────────

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "transition") || strings.Contains(msg, "occupied"):
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
