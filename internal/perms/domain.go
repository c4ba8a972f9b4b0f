// Package perms implements the per-post view permission registry.
package perms

import "time"

// Grant is a single (post, user) view permission.
type Grant struct {
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
