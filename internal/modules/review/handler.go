package review

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/auth"
)

// Handler exposes review HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/reviews", h.submit)                          // POST /api/v1/reviews
	r.Get("/api/v1/products/{product_id}/reviews", h.byProduct)  // GET  /api/v1/products/{product_id}/reviews

	r.Route("/api/v1/admin/reviews", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/pending", h.pending)       // GET    /api/v1/admin/reviews/pending
		r.Post("/{id}/approve", h.approve) // POST   /api/v1/admin/reviews/{id}/approve
		r.Delete("/{id}", h.delete)        // DELETE /api/v1/admin/reviews/{id}
	})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rv, err := h.service.Submit(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "must be") || strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, rv)
}

func (h *Handler) byProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ProductReviews(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, reviews)
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.PendingReviews(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, reviews)
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Approve(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "review approved"})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "review deleted"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
