package housekeeping

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler exposes housekeeping HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/housekeeping/tasks", func(r chi.Router) {
		r.Get("/", h.listTasks)                 // GET /api/v1/housekeeping/tasks?status=PENDING&assignee_id=...
		r.Post("/", h.createTask)               // POST /api/v1/housekeeping/tasks
		r.Get("/{id}", h.getTask)               // GET /api/v1/housekeeping/tasks/{id}
		r.Post("/{id}/start", h.startTask)      // POST /api/v1/housekeeping/tasks/{id}/start
		r.Post("/{id}/complete", h.completeTask) // POST /api/v1/housekeeping/tasks/{id}/complete
		r.Patch("/{id}/assignee", h.reassign)   // PATCH /api/v1/housekeeping/tasks/{id}/assignee
	})
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.service.ListTasks(r.Context(), q.Get("status"), q.Get("assignee_id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	task, err := h.service.CreateTask(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, task)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}
	task, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}
	respond(w, http.StatusOK, task)
}

func (h *Handler) startTask(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.service.StartTask)
}

func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.service.CompleteTask)
}

func (h *Handler) reassign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}
	var req ReassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	task, err := h.service.Reassign(r.Context(), id, req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, task)
}

func (h *Handler) doTransition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, id uuid.UUID) (*Task, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid task id"})
		return
	}
	task, err := fn(r.Context(), id)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, task)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "transition") || strings.Contains(msg, "already done"):
		return http.StatusUnprocessableEntity
	case strings.Contains(msg, "invalid"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
