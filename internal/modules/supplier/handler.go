package supplier

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes supplier HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/suppliers", func(r chi.Router) {
		r.Get("/", h.listSuppliers)              // GET /api/v1/suppliers?active=true
		r.Post("/", h.createSupplier)            // POST /api/v1/suppliers
		r.Get("/{id}", h.getSupplier)            // GET /api/v1/suppliers/{id}
		r.Put("/{id}", h.updateSupplier)         // PUT /api/v1/suppliers/{id}
		r.Get("/{id}/deliveries", h.listForOne)  // GET /api/v1/suppliers/{id}/deliveries
	})
	r.Route("/api/v1/deliveries", func(r chi.Router) {
		r.Get("/", h.listDeliveries)    // GET /api/v1/deliveries
		r.Post("/", h.recordDelivery)   // POST /api/v1/deliveries
	})
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	out, err := h.service.ListSuppliers(r.Context(), activeOnly)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sup, err := h.service.CreateSupplier(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, sup)
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid supplier id"})
		return
	}
	sup, err := h.service.GetSupplier(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "supplier not found"})
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid supplier id"})
		return
	}
	var req UpdateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sup, err := h.service.UpdateSupplier(r.Context(), id, req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, sup)
}

func (h *Handler) listForOne(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid supplier id"})
		return
	}
	out, err := h.service.ListDeliveries(r.Context(), &id)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) listDeliveries(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListDeliveries(r.Context(), nil)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) recordDelivery(w http.ResponseWriter, r *http.Request) {
	var req RecordDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	d, err := h.service.RecordDelivery(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, d)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "inactive"):
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
