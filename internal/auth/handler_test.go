package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/shared"
	_ "github.com/inkwell-blog/inkwell/testing"
)

type loginFixture struct {
	handler *auth.Handler
	repo    *stubRepo
	sm      *shared.SessionManager
	issuer  *auth.TokenIssuer
}

func newLoginFixture(t *testing.T) *loginFixture {
	t.Helper()
	repo := &stubRepo{user: &auth.User{
		ID: 7, Username: "alice", Role: shared.RoleUser, IsActive: true,
		PasswordHash: hashOf(t, "open sesame"),
	}}
	issuer, err := auth.NewTokenIssuer("login-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	svc := auth.NewService(repo, issuer)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sm := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &loginFixture{
		handler: auth.NewHandler(logger, svc, sm),
		repo:    repo,
		sm:      sm,
		issuer:  issuer,
	}
}

func (f *loginFixture) login(t *testing.T, body string) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	sess, err := f.sm.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	res := httptest.NewRecorder()
	f.handler.HandleLogin(res, req)
	return res, sess
}

func TestLoginSuccess(t *testing.T) {
	f := newLoginFixture(t)

	res, sess := f.login(t, `{"username":"alice","password":"open sesame"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		Role    string `json:"role"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Logged in successfully" || body.Role != shared.RoleUser {
		t.Fatalf("unexpected body: %+v", body)
	}

	identity, err := f.issuer.Verify(body.Token)
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if identity.UserID != 7 || identity.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", identity)
	}

	if sess.Token() != body.Token {
		t.Fatalf("token not cached in session")
	}
	if cached, ok := sess.Identity(); !ok || cached.UserID != 7 {
		t.Fatalf("identity not cached: %+v ok=%v", cached, ok)
	}
	if _, ok := f.repo.sessions[sess.ID]; !ok {
		t.Fatalf("session not registered in store")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newLoginFixture(t)

	cases := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"alice","password":"nope"}`},
		{"unknown user", `{"username":"mallory","password":"open sesame"}`},
		{"missing password", `{"username":"alice"}`},
		{"missing username", `{"password":"open sesame"}`},
		{"empty body", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, _ := f.login(t, tc.body)
			if res.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", res.Code)
			}
			var body map[string]string
			_ = json.Unmarshal(res.Body.Bytes(), &body)
			if body["error"] != "Invalid credentials" {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestLoginStoreFaultIsServerError(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("login-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	svc := auth.NewService(&faultRepo{err: errors.New("connection refused")}, issuer)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sm := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := auth.NewHandler(logger, svc, sm)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"open sesame"}`))
	req.Header.Set("Content-Type", "application/json")
	sess, err := sm.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	res := httptest.NewRecorder()
	handler.HandleLogin(res, req)

	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store fault, got %d", res.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(res.Body.Bytes(), &body)
	if body["error"] != "Internal server error" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestLoginRejectsMalformedJSON(t *testing.T) {
	f := newLoginFixture(t)

	res, _ := f.login(t, `{"username":`)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(res.Body.Bytes(), &body)
	if body["error"] != "Invalid request body" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestLogoutEstablishedSession(t *testing.T) {
	f := newLoginFixture(t)

	// Establish a persisted session first.
	loginRes, sess := f.login(t, `{"username":"alice","password":"open sesame"}`)
	if loginRes.Code != http.StatusOK {
		t.Fatalf("login failed: %d", loginRes.Code)
	}
	commitRes := httptest.NewRecorder()
	if err := f.sm.Commit(context.Background(), commitRes, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookies := commitRes.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie after commit")
	}

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookies[0])
	loaded, err := f.sm.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if loaded.IsNew() {
		t.Fatalf("expected established session")
	}
	req = req.WithContext(shared.ContextWithSession(req.Context(), loaded))

	res := httptest.NewRecorder()
	f.handler.HandleLogout(res, req)

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/login.html" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
	if _, ok := f.repo.sessions[loaded.ID]; ok {
		t.Fatalf("session record not removed")
	}
}

func TestLogoutWithoutSessionRedirects(t *testing.T) {
	f := newLoginFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	sess, _ := f.sm.Load(context.Background(), req)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))

	res := httptest.NewRecorder()
	f.handler.HandleLogout(res, req)

	if res.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", res.Code)
	}
}
