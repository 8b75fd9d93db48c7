package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TableOccupier flips dining-table status around the order lifecycle. Occupy
// must be idempotent and only transition an AVAILABLE table.
type TableOccupier interface {
	Occupy(ctx context.Context, tableID uuid.UUID) error
	Release(ctx context.Context, tableID uuid.UUID) error
}

// Handler exposes the POS order endpoints.
type Handler struct {
	store  *Store
	tables TableOccupier // nil when the restaurant has no table map
}

func NewHandler(store *Store, tables TableOccupier) *Handler {
	return &Handler{store: store, tables: tables}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/pos/orders", func(r chi.Router) {
		r.Get("/", h.listActive)                            // GET    /api/v1/pos/orders
		r.Post("/", h.createOrder)                          // POST   /api/v1/pos/orders
		r.Get("/{id}", h.getOrder)                          // GET    /api/v1/pos/orders/{id}
		r.Post("/{id}/items", h.addItem)                    // POST   /api/v1/pos/orders/{id}/items
		r.Patch("/items/{item_id}/quantity", h.updateQuantity) // PATCH /api/v1/pos/orders/items/{item_id}/quantity
		r.Post("/{id}/payment", h.processPayment)           // POST   /api/v1/pos/orders/{id}/payment
		r.Delete("/{id}", h.deleteOrder)                    // DELETE /api/v1/pos/orders/{id}
	})
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request) {
	// Refetch so a freshly opened terminal starts from the persisted truth.
	if err := h.store.FetchActiveOrders(r.Context()); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, h.store.ActiveOrders())
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.store.CreateOrder(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	if o.TableID != nil && h.tables != nil {
		if err := h.tables.Occupy(r.Context(), *o.TableID); err != nil {
			log.Printf("orders: order %s created but table occupy failed: %v", o.ID, err)
		}
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	o, ok := h.store.Get(id)
	if !ok {
		respond(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.store.AddItem(r.Context(), id, req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "item_id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		return
	}
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.store.UpdateItemQuantity(r.Context(), itemID, req.Quantity); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "quantity updated"})
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, _ := h.store.Get(id)
	if err := h.store.ProcessPayment(r.Context(), id, req); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	if o != nil && o.TableID != nil && h.tables != nil {
		if err := h.tables.Release(r.Context(), *o.TableID); err != nil {
			log.Printf("orders: order %s paid but table release failed: %v", id, err)
		}
	}
	respond(w, http.StatusOK, map[string]string{"status": "payment processed"})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	o, _ := h.store.Get(id)
	if err := h.store.DeleteOrder(r.Context(), id); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	if o != nil && o.TableID != nil && h.tables != nil {
		if err := h.tables.Release(r.Context(), *o.TableID); err != nil {
			log.Printf("orders: order %s deleted but table release failed: %v", id, err)
		}
	}
	respond(w, http.StatusOK, map[string]string{"status": "order deleted"})
}

// ── helpers ──────────────────────────────────────────────────────────────────

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "not active"):
		return http.StatusUnprocessableEntity
	case strings.Contains(msg, "required") || strings.Contains(msg, "invalid") ||
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
