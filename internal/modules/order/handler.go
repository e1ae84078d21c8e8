package order

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/auth"
	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/cart"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	// Storefront.
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)
			r.Post("/checkout", h.checkout)        // POST /api/v1/orders/checkout
			r.Get("/track/{number}", h.trackOrder) // GET  /api/v1/orders/track/{number}
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/", h.listMyOrders) // GET /api/v1/orders
		})
	})

	// Back office.
	r.Route("/api/v1/admin/orders", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Get("/", h.listOrders)                         // GET    /api/v1/admin/orders?status=PENDING&offset=0&limit=20
		r.Get("/{id}", h.getOrder)                       // GET    /api/v1/admin/orders/{id}
		r.Patch("/{id}/status", h.updateStatus)          // PATCH  /api/v1/admin/orders/{id}/status
		r.Patch("/{id}", h.annotate)                     // PATCH  /api/v1/admin/orders/{id}
		r.Delete("/{id}", h.cancelOrder)                 // DELETE /api/v1/admin/orders/{id}
		r.Put("/{id}/items/{item_id}", h.updateItem)     // PUT    /api/v1/admin/orders/{id}/items/{item_id}
		r.Delete("/{id}/items/{item_id}", h.deleteItem)  // DELETE /api/v1/admin/orders/{id}/items/{item_id}
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var owner cart.Owner
	if uid := auth.UserID(r.Context()); uid != "" {
		owner = cart.UserOwner(uid)
	} else if token := r.Header.Get("X-Guest-Token"); token != "" {
		owner = cart.GuestOwner(token)
	} else {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing X-Guest-Token or bearer token"})
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Checkout(r.Context(), owner, req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") || strings.Contains(msg, "empty") || strings.Contains(msg, "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.TrackOrder(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListUserOrders(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Status: Status(strings.ToUpper(r.URL.Query().Get("status")))}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		filter.Offset = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = v
	}

	orders, total, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"total":  total,
		"orders": orders,
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "cannot transition") {
			code = http.StatusUnprocessableEntity
		} else if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) annotate(w http.ResponseWriter, r *http.Request) {
	var req AnnotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.Annotate(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "only PENDING") {
			code = http.StatusUnprocessableEntity
		} else if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "order cancelled"})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "item_id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		} else if strings.Contains(err.Error(), "quantity") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "item_id"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
