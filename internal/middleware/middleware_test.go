package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transcript-hub/internal/model"
	"transcript-hub/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(string) (*service.CustomClaims, error)

func (f verifierFunc) VerifyToken(tok string) (*service.CustomClaims, error) { return f(tok) }

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newAccounts(t *testing.T) (*service.Accounts, *service.Tokens) {
	t.Helper()
	tk, err := service.NewTokens("testsecret", time.Minute)
	require.NoError(t, err)
	return service.NewAccounts(nil, tk, nil, nil), tk
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	require.Equal(t, code, he.Code)
}

func TestExtractClaims(t *testing.T) {
	accounts, tk := newAccounts(t)

	// missing header
	ctx, _ := newContext("")
	_, err := extractClaims(ctx, accounts)
	requireStatus(t, err, http.StatusUnauthorized)

	// bad format
	ctx, _ = newContext("BadHeader")
	_, err = extractClaims(ctx, accounts)
	requireStatus(t, err, http.StatusUnauthorized)

	ctx, _ = newContext("Basic abc")
	_, err = extractClaims(ctx, accounts)
	requireStatus(t, err, http.StatusUnauthorized)

	// invalid token
	ctx, _ = newContext("Bearer invalid")
	_, err = extractClaims(ctx, accounts)
	requireStatus(t, err, http.StatusUnauthorized)

	// valid token, scheme 不分大小寫
	tok, _, err := tk.Issue(model.User{ID: 1, Name: "root", Role: model.RoleAdmin})
	require.NoError(t, err)
	ctx, _ = newContext("bearer " + tok)
	claims, err := extractClaims(ctx, accounts)
	require.NoError(t, err)
	require.Equal(t, 1, claims.ID)
	require.True(t, claims.IsAdmin())
}

func TestRequireAuth(t *testing.T) {
	accounts, tk := newAccounts(t)
	tok, _, err := tk.Issue(model.User{ID: 2, Name: "bob", Role: model.RoleOfficer})
	require.NoError(t, err)

	// success path
	ctx, rec := newContext("Bearer " + tok)
	called := false
	handler := RequireAuth(accounts)(func(c echo.Context) error {
		called = true
		cl := ClaimsFrom(c)
		require.Equal(t, 2, cl.ID)
		require.Equal(t, "bob", cl.Name)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, _ = newContext("")
	called = false
	err = RequireAuth(accounts)(func(echo.Context) error { called = true; return nil })(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
	require.False(t, called)
}

func TestRequireAuthVerifierError(t *testing.T) {
	v := verifierFunc(func(string) (*service.CustomClaims, error) { return nil, errors.New("bad") })
	ctx, _ := newContext("Bearer x")
	err := RequireAuth(v)(func(echo.Context) error { return nil })(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestRequireRole(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	// 未經 RequireAuth
	ctx, _ := newContext("")
	requireStatus(t, RequireRole(model.RoleAdmin)(next)(ctx), http.StatusUnauthorized)

	for _, role := range []model.Role{model.RoleOfficer, model.RoleDeaf} {
		ctx, _ = newContext("")
		ctx.Set(ContextUserKey, &service.CustomClaims{ID: 3, Role: role})
		requireStatus(t, RequireRole(model.RoleAdmin)(next)(ctx), http.StatusForbidden)
	}

	ctx, rec := newContext("")
	ctx.Set(ContextUserKey, &service.CustomClaims{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, RequireRole(model.RoleAdmin)(next)(ctx))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClaimsFrom(t *testing.T) {
	ctx, _ := newContext("")
	require.Nil(t, ClaimsFrom(ctx))
	ctx.Set(ContextUserKey, "not claims")
	require.Nil(t, ClaimsFrom(ctx))
}
