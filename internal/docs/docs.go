// Package docs serves the machine-readable API documentation object.
package docs

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
)

// Endpoint documents a single route.
type Endpoint struct {
	Method         string         `json:"method"`
	Path           string         `json:"path"`
	Description    string         `json:"description"`
	Authentication string         `json:"authentication"`
	Permissions    string         `json:"permissions"`
	Body           map[string]any `json:"body,omitempty"`
	Response       map[string]any `json:"response,omitempty"`
}

// RoleDoc documents what a role may do.
type RoleDoc struct {
	Role        string `json:"role"`
	Permissions string `json:"permissions"`
}

// Document is the full documentation payload.
type Document struct {
	Version       string     `json:"version"`
	Description   string     `json:"description"`
	Endpoints     []Endpoint `json:"endpoints"`
	Authorization struct {
		Type        string    `json:"type"`
		Description string    `json:"description"`
		Roles       []RoleDoc `json:"roles"`
	} `json:"authorization"`
}

// Handler serves the documentation routes.
type Handler struct {
	doc Document
}

// NewHandler constructs the handler with the static documentation object.
func NewHandler() *Handler {
	return &Handler{doc: buildDocument()}
}

// MountRoutes registers documentation routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/api/docs-json", h.serve)
	r.Get("/api/about", h.serve)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.doc)
}

func buildDocument() Document {
	doc := Document{
		Version:     "1.0.0",
		Description: "This API allows users to interact with the blog system, manage blog posts, handle user authentication, and manage post permissions.",
		Endpoints: []Endpoint{
			{
				Method:         http.MethodPost,
				Path:           "/api/login",
				Description:    "Authenticates the user, returns an identity token and role information.",
				Authentication: "None",
				Permissions:    "Public",
				Body:           map[string]any{"username": "string", "password": "string"},
				Response:       map[string]any{"token": "string", "role": "string"},
			},
			{
				Method:         http.MethodGet,
				Path:           "/api/blog",
				Description:    "Retrieves all blog posts.",
				Authentication: "None",
				Permissions:    "Public",
			},
			{
				Method:         http.MethodGet,
				Path:           "/api/blog/{id}",
				Description:    "Retrieves a specific blog post by ID.",
				Authentication: "None",
				Permissions:    "Public",
			},
			{
				Method:         http.MethodPost,
				Path:           "/api/blog",
				Description:    "Creates a new blog post authored by the caller.",
				Authentication: "Required",
				Permissions:    "User",
				Body:           map[string]any{"title": "string", "content": "string"},
				Response:       map[string]any{"id": "number"},
			},
			{
				Method:         http.MethodPatch,
				Path:           "/api/blog/{id}",
				Description:    "Partially updates a blog post. Requires ownership or admin rights.",
				Authentication: "Required",
				Permissions:    "Creator/Admin",
				Body:           map[string]any{"title": "string", "content": "string"},
			},
			{
				Method:         http.MethodDelete,
				Path:           "/api/blog/{id}",
				Description:    "Deletes a blog post. Requires ownership or admin rights.",
				Authentication: "Required",
				Permissions:    "Creator/Admin",
			},
			{
				Method:         http.MethodGet,
				Path:           "/api/posts/{id}",
				Description:    "Retrieves a post after a view-permission check.",
				Authentication: "Required",
				Permissions:    "User",
			},
			{
				Method:         http.MethodPost,
				Path:           "/api/posts/{id}/permissions",
				Description:    "Grants a user permission to view a specific post.",
				Authentication: "Required",
				Permissions:    "Creator/Admin",
				Body:           map[string]any{"userId": "number"},
			},
			{
				Method:         http.MethodDelete,
				Path:           "/api/posts/{id}/permissions/{userId}",
				Description:    "Revokes a user's permission to view a specific post.",
				Authentication: "Required",
				Permissions:    "Creator/Admin",
			},
			{
				Method:         http.MethodGet,
				Path:           "/api/posts/{id}/permissions",
				Description:    "Lists users holding view permission on a specific post.",
				Authentication: "Required",
				Permissions:    "Creator/Admin",
			},
			{
				Method:         http.MethodGet,
				Path:           "/api/users",
				Description:    "Fetches all users. Password hashes are never included.",
				Authentication: "Required",
				Permissions:    "User",
			},
			{
				Method:         http.MethodGet,
				Path:           "/logout",
				Description:    "Logs out the user and destroys the session.",
				Authentication: "Required",
				Permissions:    "User",
			},
		},
	}
	doc.Authorization.Type = "JWT"
	doc.Authorization.Description = "Protected endpoints expect `Authorization: Bearer <token>` unless an active session cookie already carries a verified identity. Tokens are obtained at login and expire after one hour."
	doc.Authorization.Roles = []RoleDoc{
		{Role: "admin", Permissions: "Admins may create, update and delete any post and manage view permissions on any post."},
		{Role: "user", Permissions: "Users may manage their own posts and read posts they authored or hold an explicit view grant for."},
	}
	return doc
}
