package middleware

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/session"

	"github.com/labstack/echo/v4"
)

// ResolveIdentity はカート操作の主体を決める。
// 有効なJWTがあればそのユーザーID、無ければセッションのゲストID。
// ゲストIDが未発行ならここで発行する。
func ResolveIdentity(cfg config.Config, guests *session.GuestSessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//JWTが有効ならユーザーとして扱う
			if claims, err := parseBearer(c, cfg.JWTSecret); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxUserRoleKey, claims.Role)
				c.Set(CtxIdentityKey, model.UserIdentity(claims.UserID))
				return next(c)
			}

			//ゲストIDを取得、無ければ発行
			identity, ok := guests.Current(c.Request())
			if !ok {
				issued, err := guests.Issue(c.Request(), c.Response())
				if err != nil {
					return c.JSON(http.StatusInternalServerError, errorJSON("session error"))
				}
				identity = issued
			}

			c.Set(CtxIdentityKey, identity)
			return next(c)
		}
	}
}

// CurrentIdentity はResolveIdentityが保存した主体を取り出す。
func CurrentIdentity(c echo.Context) (model.Identity, bool) {
	raw := c.Get(CtxIdentityKey)
	identity, ok := raw.(model.Identity)
	if !ok || identity == "" {
		return "", false
	}
	return identity, true
}

// CurrentUserID はAuthJWTが保存したユーザーIDを取り出す。
func CurrentUserID(c echo.Context) (string, bool) {
	raw := c.Get(CtxUserIDKey)
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
