package settings

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes settings HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/settings", func(r chi.Router) {
		r.Get("/", h.listSettings)       // GET /api/v1/settings
		r.Get("/{key}", h.getSetting)    // GET /api/v1/settings/{key}
		r.Put("/{key}", h.upsertSetting) // PUT /api/v1/settings/{key}
	})
}

func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListSettings(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, out)
}

func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.GetSetting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "setting not found"})
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) upsertSetting(w http.ResponseWriter, r *http.Request) {
	var req UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s, err := h.service.SetSetting(r.Context(), chi.URLParam(r, "key"), req.Value)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") || strings.Contains(err.Error(), "required") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, s)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
