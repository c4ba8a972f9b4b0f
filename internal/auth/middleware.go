package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/inkwell-blog/inkwell/internal/platform/httpx"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Authenticator resolves request identities for protected routes.
//
// Resolution order: a session that already carries a verified identity is
// trusted as a decode cache, unless the request presents a different bearer
// token, in which case the new token is verified and replaces the cached one.
// A missing token with no session identity yields 401; a bad token yields 403.
type Authenticator struct {
	issuer *TokenIssuer
	logger *slog.Logger
}

// NewAuthenticator constructs an Authenticator.
func NewAuthenticator(issuer *TokenIssuer, logger *slog.Logger) *Authenticator {
	return &Authenticator{issuer: issuer, logger: logger}
}

// RequireAuthenticated rejects requests without a resolvable identity.
func (a *Authenticator) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		bearer := bearerToken(r)

		if sess != nil {
			if cached, ok := sess.Identity(); ok && (bearer == "" || bearer == sess.Token()) {
				ctx := shared.ContextWithIdentity(r.Context(), cached)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		if bearer == "" {
			httpx.Error(w, http.StatusUnauthorized, "Access denied")
			return
		}

		identity, err := a.issuer.Verify(bearer)
		if err != nil {
			httpx.Error(w, http.StatusForbidden, "Invalid token")
			return
		}

		if sess != nil {
			sess.CacheIdentity(bearer, identity)
		}

		ctx := shared.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
