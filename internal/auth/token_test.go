package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/shared"
	_ "github.com/inkwell-blog/inkwell/testing"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	user := &auth.User{ID: 42, Username: "alice", Role: shared.RoleAdmin}
	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	identity, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.UserID != 42 || identity.Username != "alice" || identity.Role != shared.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", identity)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer, _ := auth.NewTokenIssuer("secret-a", time.Hour)
	other, _ := auth.NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Issue(&auth.User{ID: 1, Username: "bob", Role: shared.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	issuer, _ := auth.NewTokenIssuer("test-secret", time.Millisecond)

	token, err := issuer.Issue(&auth.User{ID: 1, Username: "bob", Role: shared.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := issuer.Verify(token); !errors.Is(err, shared.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	issuer, _ := auth.NewTokenIssuer("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(raw); !errors.Is(err, shared.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

func TestTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := auth.NewTokenIssuer("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
