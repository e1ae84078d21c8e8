package content

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/auth"
)

// Handler exposes content HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/content/banners", h.activeBanners)  // GET /api/v1/content/banners
	r.Get("/api/v1/content/posts", h.publishedPosts)   // GET /api/v1/content/posts
	r.Get("/api/v1/content/posts/{slug}", h.postBySlug) // GET /api/v1/content/posts/{slug}

	r.Route("/api/v1/admin/banners", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/", h.createBanner)
		r.Get("/", h.allBanners)
		r.Put("/{id}", h.updateBanner)
		r.Delete("/{id}", h.deleteBanner)
	})

	r.Route("/api/v1/admin/posts", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/", h.createPost)
		r.Get("/", h.allPosts)
		r.Put("/{id}", h.updatePost)
		r.Delete("/{id}", h.deletePost)
	})
}

// ── storefront ───────────────────────────────────────────────────────────────

func (h *Handler) activeBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.ActiveBanners(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, banners)
}

func (h *Handler) publishedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.PublishedPosts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, posts)
}

func (h *Handler) postBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.PostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

// ── back office ──────────────────────────────────────────────────────────────

func (h *Handler) createBanner(w http.ResponseWriter, r *http.Request) {
	var req BannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.CreateBanner(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) allBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.AllBanners(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, banners)
}

func (h *Handler) updateBanner(w http.ResponseWriter, r *http.Request) {
	var req BannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.UpdateBanner(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) deleteBanner(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBanner(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "banner deleted"})
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) allPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.AllPosts(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, posts)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	p, err := h.service.UpdatePost(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "post deleted"})
}

func statusFor(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
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
