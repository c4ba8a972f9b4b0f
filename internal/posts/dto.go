package posts

// CreatePostRequest carries the fields for a new post. The author is derived
// from the caller's identity, never from the request body.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Patch enumerates the optional fields of a partial update. Only non-nil
// fields are written, each through its own bind parameter.
type Patch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil
}
