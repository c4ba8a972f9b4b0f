package perms

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Handler wires HTTP endpoints for the permission registry.
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

// MountRoutes registers permission routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.auth.RequireAuthenticated)
		r.Post("/api/posts/{id}/permissions", h.grant)
		r.Delete("/api/posts/{id}/permissions/{userId}", h.revoke)
		r.Get("/api/posts/{id}/permissions", h.list)
	})
}

type grantRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}

func (h *Handler) grant(w http.ResponseWriter, r *http.Request) {
	identity, postID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	var req grantRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "userId is required")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "userId is required")
		return
	}
	if err := h.service.Grant(r.Context(), identity, postID, req.UserID); err != nil {
		h.respondErr(w, "add permission", err)
		return
	}
	httpx.Message(w, http.StatusOK, "Permission added")
}

func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	identity, postID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || userID <= 0 {
		httpx.Error(w, http.StatusBadRequest, "userId is required")
		return
	}
	if err := h.service.Revoke(r.Context(), identity, postID, userID); err != nil {
		h.respondErr(w, "remove permission", err)
		return
	}
	httpx.Message(w, http.StatusOK, "Permission removed")
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	identity, postID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	grants, err := h.service.ListForPost(r.Context(), identity, postID)
	if err != nil {
		h.respondErr(w, "list permissions", err)
		return
	}
	if grants == nil {
		grants = []Grant{}
	}
	httpx.JSON(w, http.StatusOK, grants)
}

func (h *Handler) requestScope(w http.ResponseWriter, r *http.Request) (shared.Identity, int64, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Access denied")
		return shared.Identity{}, 0, false
	}
	postID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || postID <= 0 {
		httpx.Error(w, http.StatusForbidden, "Permission denied")
		return shared.Identity{}, 0, false
	}
	return identity, postID, true
}

func (h *Handler) respondErr(w http.ResponseWriter, op string, err error) {
	if h.logger != nil {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
