package menu

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes menu HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/menu", func(r chi.Router) {
		r.Get("/categories", h.listCategories)           // GET    /api/v1/menu/categories
		r.Post("/items", h.createItem)                   // POST   /api/v1/menu/items
		r.Get("/items", h.listItems)                     // GET    /api/v1/menu/items?category=BEER&available=true
		r.Get("/items/{id}", h.getItem)                  // GET    /api/v1/menu/items/{id}
		r.Put("/items/{id}", h.updateItem)               // PUT    /api/v1/menu/items/{id}
		r.Patch("/items/{id}/availability", h.setAvailability) // PATCH /api/v1/menu/items/{id}/availability
		r.Put("/items/{id}/recipe", h.setRecipe)         // PUT    /api/v1/menu/items/{id}/recipe
		r.Delete("/items/{id}", h.deleteItem)            // DELETE /api/v1/menu/items/{id}
	})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	type categoryInfo struct {
		Category Category `json:"category"`
		Routing  Routing  `json:"routing"`
	}
	var out []categoryInfo
	for _, c := range Categories() {
		out = append(out, categoryInfo{Category: c, Routing: RoutingFor(c)})
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	m, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, m)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	availableOnly := r.URL.Query().Get("available") == "true"
	items, err := h.service.ListItems(r.Context(), r.URL.Query().Get("category"), availableOnly)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	m, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}
	respond(w, http.StatusOK, m)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	m, err := h.service.UpdateItem(r.Context(), id, req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, m)
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.SetAvailability(r.Context(), id, req.Available); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"available": req.Available})
}

func (h *Handler) setRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req SetRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	m, err := h.service.SetRecipe(r.Context(), id, req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, m)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "menu item deleted"})
}

// ── helpers ──────────────────────────────────────────────────────────────────

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "invalid") || strings.Contains(msg, "required") ||
		strings.Contains(msg, "must"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
