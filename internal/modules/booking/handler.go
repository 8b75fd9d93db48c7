package booking

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes booking HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/bookings", func(r chi.Router) {
		r.Get("/", h.listBookings)               // GET /api/v1/bookings?status=CONFIRMED
		r.Post("/", h.createBooking)             // POST /api/v1/bookings
		r.Get("/{id}", h.getBooking)             // GET /api/v1/bookings/{id}
		r.Post("/{id}/check-in", h.checkIn)      // POST /api/v1/bookings/{id}/check-in
		r.Post("/{id}/check-out", h.checkOut)    // POST /api/v1/bookings/{id}/check-out
		r.Post("/{id}/cancel", h.cancelBooking)  // POST /api/v1/bookings/{id}/cancel
		r.Post("/{id}/no-show", h.markNoShow)    // POST /api/v1/bookings/{id}/no-show
		r.Get("/room/{room_id}", h.listForRoom)  // GET /api/v1/bookings/room/{room_id}
	})
}

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListBookings(r.Context(), strings.ToUpper(r.URL.Query().Get("status")))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.CreateBooking(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
		return
	}
	b, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "booking not found"})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, func(id uuid.UUID) (*Booking, error) {
		return h.service.CheckIn(r.Context(), id)
	})
}

func (h *Handler) checkOut(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
		return
	}
	var req CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.CheckOut(r.Context(), id, req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) cancelBooking(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, func(id uuid.UUID) (*Booking, error) {
		return h.service.Cancel(r.Context(), id)
	})
}

func (h *Handler) markNoShow(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, func(id uuid.UUID) (*Booking, error) {
		return h.service.MarkNoShow(r.Context(), id)
	})
}

func (h *Handler) listForRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "room_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid room id"})
		return
	}
	out, err := h.service.ListBookingsForRoom(r.Context(), roomID)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) doTransition(w http.ResponseWriter, r *http.Request, fn func(uuid.UUID) (*Booking, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
		return
	}
	b, err := fn(id)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "transition") || strings.Contains(msg, "already booked") || strings.Contains(msg, "maintenance"):
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
