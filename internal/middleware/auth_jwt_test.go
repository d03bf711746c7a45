package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/session"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func issueToken(t *testing.T, userID string, role model.Role) string {
	t.Helper()
	token, _, err := auth.NewHS256JWTIssuer("test-secret", time.Hour).Issue(userID, role, time.Now())
	assert.NoError(t, err)
	return token
}

func TestAuthJWT_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "user-1", model.RoleUser))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := middleware.AuthJWT(testConfig())(func(c echo.Context) error {
		called = true
		userID, ok := middleware.CurrentUserID(c)
		assert.True(t, ok)
		assert.Equal(t, "user-1", userID)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
	assert.True(t, called)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.AuthJWT(testConfig())(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.AuthJWT(testConfig())(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// JWTがあればユーザー、無ければゲストIDを発行して主体にする
func TestResolveIdentity_UserToken(t *testing.T) {
	e := echo.New()
	guests := session.NewGuestSessionStore("session-secret", false)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "user-1", model.RoleUser))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.ResolveIdentity(testConfig(), guests)(func(c echo.Context) error {
		identity, ok := middleware.CurrentIdentity(c)
		assert.True(t, ok)
		assert.False(t, identity.IsGuest())
		assert.Equal(t, "user-1", identity.String())
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
}

func TestResolveIdentity_IssuesGuest(t *testing.T) {
	e := echo.New()
	guests := session.NewGuestSessionStore("session-secret", false)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var first model.Identity
	h := middleware.ResolveIdentity(testConfig(), guests)(func(c echo.Context) error {
		identity, ok := middleware.CurrentIdentity(c)
		assert.True(t, ok)
		assert.True(t, identity.IsGuest())
		first = identity
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))

	// 同じセッションCookieなら同じゲストIDに解決される
	req2 := httptest.NewRequest(http.MethodGet, "/cart", nil)
	for _, ck := range rec.Result().Cookies() {
		req2.AddCookie(ck)
	}
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req2, rec2)

	h2 := middleware.ResolveIdentity(testConfig(), guests)(func(c echo.Context) error {
		identity, _ := middleware.CurrentIdentity(c)
		assert.Equal(t, first, identity)
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h2(c2))
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()

	// ADMIN は通す
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserRoleKey, "ADMIN")

	passed := false
	h := middleware.AdminRoleGuard()(func(c echo.Context) error {
		passed = true
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.True(t, passed)

	// USER は403
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/orders", nil), rec2)
	c2.Set(middleware.CtxUserRoleKey, "USER")

	h2 := middleware.AdminRoleGuard()(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})
	assert.NoError(t, h2(c2))
	assert.Equal(t, http.StatusForbidden, rec2.Code)
}
