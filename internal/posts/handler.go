package posts

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Handler wires HTTP endpoints for the blog surface.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	auth      Middleware
	validator *validator.Validate
}

// Middleware guards routes that need a resolved identity.
type Middleware interface {
	RequireAuthenticated(next http.Handler) http.Handler
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, auth Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		auth:      auth,
		validator: validator.New(),
	}
}

// MountRoutes registers blog routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/blog", h.list)
	r.Get("/api/blog/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(h.auth.RequireAuthenticated)
		r.Post("/api/blog", h.create)
		r.Patch("/api/blog/{id}", h.update)
		r.Delete("/api/blog/{id}", h.delete)
		r.Get("/api/posts/{id}", h.getVisible)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list posts", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Error loading blog posts")
		return
	}
	if result == nil {
		result = []Post{}
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		httpx.Error(w, http.StatusNotFound, "Blog post not found")
		return
	}
	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *Handler) getVisible(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Access denied")
		return
	}
	id, idOK := postID(r)
	if !idOK {
		httpx.Error(w, http.StatusForbidden, "Permission denied")
		return
	}
	post, err := h.service.GetVisible(r.Context(), identity, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Access denied")
		return
	}
	var req CreatePostRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	id, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Access denied")
		return
	}
	id, idOK := postID(r)
	if !idOK {
		httpx.Error(w, http.StatusNotFound, "Blog post not found")
		return
	}
	var patch Patch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.Error(w, http.StatusBadRequest, "No fields to update")
		return
	}
	if err := h.service.Update(r.Context(), identity, id, patch); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Blog post updated")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Access denied")
		return
	}
	id, idOK := postID(r)
	if !idOK {
		httpx.Error(w, http.StatusNotFound, "Blog post not found")
		return
	}
	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Blog post deleted")
}

func postID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
