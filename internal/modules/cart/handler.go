package cart

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/auth"
)

// Handler exposes cart HTTP endpoints. Signed-in users are identified by
// their bearer token; guests supply an X-Guest-Token header they generate
// client-side.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)
			r.Get("/", h.getCart)                  // GET    /api/v1/cart
			r.Post("/items", h.addItem)            // POST   /api/v1/cart/items
			r.Put("/items/{id}", h.updateQuantity) // PUT    /api/v1/cart/items/{id}
			r.Delete("/items/{id}", h.removeItem)  // DELETE /api/v1/cart/items/{id}
			r.Delete("/", h.clearCart)             // DELETE /api/v1/cart
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/merge", h.mergeGuest) // POST /api/v1/cart/merge
		})
	})
}

// owner resolves whose cart the request addresses. Authenticated requests
// always win over a guest token.
func owner(r *http.Request) (Owner, bool) {
	if uid := auth.UserID(r.Context()); uid != "" {
		return UserOwner(uid), true
	}
	if token := r.Header.Get("X-Guest-Token"); token != "" {
		return GuestOwner(token), true
	}
	return Owner{}, false
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	o, ok := owner(r)
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing X-Guest-Token or bearer token"})
		return
	}
	totals, err := h.service.Get(r.Context(), o)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, totals)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	o, ok := owner(r)
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing X-Guest-Token or bearer token"})
		return
	}
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	item, err := h.service.AddItem(r.Context(), o, req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "out of stock") {
			code = http.StatusUnprocessableEntity
		} else if strings.Contains(msg, "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(msg, "quantity") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, item)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	o, ok := owner(r)
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing X-Guest-Token or bearer token"})
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.UpdateQuantity(r.Context(), o, chi.URLParam(r, "id"), req.Quantity); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(err.Error(), "quantity") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "quantity updated"})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	o, ok := owner(r)
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing X-Guest-Token or bearer token"})
		return
	}
	if err := h.service.RemoveItem(r.Context(), o, chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "item removed"})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	o, ok := owner(r)
	if !ok {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing X-Guest-Token or bearer token"})
		return
	}
	if err := h.service.Clear(r.Context(), o); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "cart cleared"})
}

func (h *Handler) mergeGuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuestToken string `json:"guest_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GuestToken == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "guest_token is required"})
		return
	}
	if err := h.service.MergeGuest(r.Context(), req.GuestToken, auth.UserID(r.Context())); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "cart merged"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
