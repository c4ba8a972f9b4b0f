package posts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/shared"
	_ "github.com/inkwell-blog/inkwell/testing"
)

type blogFixture struct {
	router *chi.Mux
	repo   *memoryPostRepo
	grants *memoryGrants
	issuer *auth.TokenIssuer
}

func newBlogFixture(t *testing.T) *blogFixture {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("handler-test-secret", time.Hour)
	require.NoError(t, err)

	repo := newMemoryPostRepo()
	grants := newMemoryGrants()
	svc := NewService(repo, NewGuard(repo, grants))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc, auth.NewAuthenticator(issuer, logger))

	router := chi.NewRouter()
	handler.MountRoutes(router)
	return &blogFixture{router: router, repo: repo, grants: grants, issuer: issuer}
}

func (f *blogFixture) token(t *testing.T, id shared.Identity) string {
	t.Helper()
	token, err := f.issuer.Issue(&auth.User{ID: id.UserID, Username: id.Username, Role: id.Role})
	require.NoError(t, err)
	return token
}

func (f *blogFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	f.router.ServeHTTP(res, req)
	return res
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body
}

func TestBlogListIsPublic(t *testing.T) {
	f := newBlogFixture(t)

	res := f.do(http.MethodGet, "/api/blog", "", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, "[]", res.Body.String())

	_, err := f.repo.Create(context.Background(), "hello", "world", 1)
	require.NoError(t, err)

	res = f.do(http.MethodGet, "/api/blog", "", "")
	require.Equal(t, http.StatusOK, res.Code)
	var listed []Post
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "hello", listed[0].Title)
}

func TestBlogGetNotFound(t *testing.T) {
	f := newBlogFixture(t)

	for _, path := range []string{"/api/blog/999", "/api/blog/abc", "/api/blog/0"} {
		res := f.do(http.MethodGet, path, "", "")
		require.Equal(t, http.StatusNotFound, res.Code, path)
		require.Equal(t, "Blog post not found", decodeBody(t, res)["error"], path)
	}
}

func TestBlogCreateRequiresToken(t *testing.T) {
	f := newBlogFixture(t)

	res := f.do(http.MethodPost, "/api/blog", "", `{"title":"t","content":"c"}`)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Equal(t, "Access denied", decodeBody(t, res)["error"])

	res = f.do(http.MethodPost, "/api/blog", "not-a-jwt", `{"title":"t","content":"c"}`)
	require.Equal(t, http.StatusForbidden, res.Code)
	require.Equal(t, "Invalid token", decodeBody(t, res)["error"])
}

func TestBlogCreate(t *testing.T) {
	f := newBlogFixture(t)
	token := f.token(t, alice)

	res := f.do(http.MethodPost, "/api/blog", token, `{"title":"first","content":"post"}`)
	require.Equal(t, http.StatusCreated, res.Code)
	id := int64(decodeBody(t, res)["id"].(float64))
	require.Equal(t, alice.UserID, f.repo.posts[id].AuthorID)
}

func TestBlogCreateValidation(t *testing.T) {
	f := newBlogFixture(t)
	token := f.token(t, alice)

	for _, body := range []string{`{"content":"only"}`, `{"title":"only"}`, `{}`, `not json`} {
		res := f.do(http.MethodPost, "/api/blog", token, body)
		require.Equal(t, http.StatusBadRequest, res.Code, body)
		require.Equal(t, "Title and content are required", decodeBody(t, res)["error"], body)
	}
}

func TestBlogUpdateOwnership(t *testing.T) {
	f := newBlogFixture(t)
	id, err := f.repo.Create(context.Background(), "orig", "body", alice.UserID)
	require.NoError(t, err)
	path := "/api/blog/" + strconv.FormatInt(id, 10)

	res := f.do(http.MethodPatch, path, f.token(t, bob), `{"title":"stolen"}`)
	require.Equal(t, http.StatusForbidden, res.Code)
	require.Equal(t, "Permission denied", decodeBody(t, res)["error"])

	res = f.do(http.MethodPatch, path, f.token(t, alice), `{"title":"renamed"}`)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "Blog post updated", decodeBody(t, res)["message"])
	require.Equal(t, "renamed", f.repo.posts[id].Title)
}

func TestBlogUpdateEmptyPatch(t *testing.T) {
	f := newBlogFixture(t)
	id, err := f.repo.Create(context.Background(), "orig", "body", alice.UserID)
	require.NoError(t, err)

	res := f.do(http.MethodPatch, "/api/blog/"+strconv.FormatInt(id, 10), f.token(t, alice), `{}`)
	require.Equal(t, http.StatusBadRequest, res.Code)
	require.Equal(t, "No fields to update", decodeBody(t, res)["error"])
}

func TestBlogDelete(t *testing.T) {
	f := newBlogFixture(t)
	id, err := f.repo.Create(context.Background(), "doomed", "body", alice.UserID)
	require.NoError(t, err)
	path := "/api/blog/" + strconv.FormatInt(id, 10)

	res := f.do(http.MethodDelete, path, f.token(t, bob), "")
	require.Equal(t, http.StatusForbidden, res.Code)

	res = f.do(http.MethodDelete, path, f.token(t, admin), "")
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "Blog post deleted", decodeBody(t, res)["message"])
	require.NotContains(t, f.repo.posts, id)

	res = f.do(http.MethodDelete, path, f.token(t, admin), "")
	require.Equal(t, http.StatusNotFound, res.Code)
	require.Equal(t, "Blog post not found", decodeBody(t, res)["error"])
}

func TestProtectedPostView(t *testing.T) {
	f := newBlogFixture(t)
	id, err := f.repo.Create(context.Background(), "secret", "body", alice.UserID)
	require.NoError(t, err)
	path := "/api/posts/" + strconv.FormatInt(id, 10)

	res := f.do(http.MethodGet, path, "", "")
	require.Equal(t, http.StatusUnauthorized, res.Code)

	res = f.do(http.MethodGet, path, f.token(t, bob), "")
	require.Equal(t, http.StatusForbidden, res.Code)
	require.Equal(t, "Permission denied", decodeBody(t, res)["error"])

	f.grants.grant(id, bob.UserID)
	res = f.do(http.MethodGet, path, f.token(t, bob), "")
	require.Equal(t, http.StatusOK, res.Code)

	res = f.do(http.MethodGet, path, f.token(t, alice), "")
	require.Equal(t, http.StatusOK, res.Code)

	// A missing id looks exactly like a denied one to non-admins.
	res = f.do(http.MethodGet, "/api/posts/424242", f.token(t, bob), "")
	require.Equal(t, http.StatusForbidden, res.Code)

	res = f.do(http.MethodGet, "/api/posts/424242", f.token(t, admin), "")
	require.Equal(t, http.StatusNotFound, res.Code)
	require.Equal(t, "Post not found", decodeBody(t, res)["error"])
}
