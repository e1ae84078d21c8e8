package catalog

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/auth"
)

// Handler exposes catalog HTTP endpoints for the storefront and the back office.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	// Storefront, public.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.storefrontList)        // GET /api/v1/catalog/products?category=shoes
		r.Get("/products/{slug}", h.storefrontShow) // GET /api/v1/catalog/products/{slug}
		r.Get("/categories", h.listCategories)      // GET /api/v1/catalog/categories
	})

	// Back office.
	r.Route("/api/v1/admin/products", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/", h.createProduct)
		r.Get("/", h.adminList)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)

		r.Post("/{id}/variations", h.addVariation)
		r.Put("/variations/{id}", h.updateVariation)
		r.Delete("/variations/{id}", h.deleteVariation)

		r.Post("/{id}/colors", h.addColor)
		r.Put("/colors/{id}", h.updateColor)
		r.Delete("/colors/{id}", h.deleteColor)
	})

	r.Route("/api/v1/admin/categories", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/", h.createCategory)
		r.Delete("/{id}", h.deleteCategory)
	})
}

// ── storefront ───────────────────────────────────────────────────────────────

func (h *Handler) storefrontList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Storefront(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respond(w, http.StatusInternalServerError, errBody(err))
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) storefrontShow(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.StorefrontProduct(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, errBody(err))
		return
	}
	respond(w, http.StatusOK, categories)
}

// ── back office ──────────────────────────────────────────────────────────────

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errBody(err))
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), errBody(err))
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) adminList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respond(w, http.StatusInternalServerError, errBody(err))
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, errBody(err))
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errBody(err))
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), errBody(err))
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, errBody(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "product deleted"})
}

func (h *Handler) addVariation(w http.ResponseWriter, r *http.Request) {
	var req VariationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errBody(err))
		return
	}
	v, err := h.service.AddVariation(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), errBody(err))
		return
	}
	respond(w, http.StatusCreated, v)
}

func (h *Handler) updateVariation(w http.ResponseWriter, r *http.Request) {
	var req VariationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errBody(err))
		return
	}
	v, err := h.service.UpdateVariation(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), errBody(err))
		return
	}
	respond(w, http.StatusOK, v)
}

func (h *Handler) deleteVariation(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVariation(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, errBody(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "variation deleted"})
}

func (h *Handler) addColor(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errBody(err))
		return
	}
	c, err := h.service.AddColor(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), errBody(err))
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) updateColor(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errBody(err))
		return
	}
	c, err := h.service.UpdateColor(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), errBody(err))
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) deleteColor(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteColor(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, errBody(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "color deleted"})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errBody(err))
		return
	}
	c, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), errBody(err))
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, errBody(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "category deleted"})
}

// ── helpers ──────────────────────────────────────────────────────────────────

func statusFor(err error) int {
	msg := err.Error()
	if strings.Contains(msg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
