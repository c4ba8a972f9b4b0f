package users

import "time"

// User is the directory view of an account. The password hash is never part
// of this shape, so it cannot leak through the API.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
