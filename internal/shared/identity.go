package shared

// Role values assigned to user accounts.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the resolved caller of a request, either decoded from a bearer
// token or recalled from the session cache.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

// IsAdmin reports whether the identity bypasses ownership checks.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}
