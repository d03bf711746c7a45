package middleware

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // string
	CtxUserRoleKey = "user_role" // string
	CtxIdentityKey = "identity"  // model.Identity
)

type authClaims struct {
	UserID string
	Role   string
}

// bearerAuth用のJWT検証ミドルウェア。未認証は401。
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c, cfg.JWTSecret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)

			return next(c)
		}
	}
}

// AuthorizationヘッダからJWTを検証してclaimsを返す
func parseBearer(c echo.Context, secret string) (authClaims, error) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return authClaims{}, errors.New("missing authorization header")
	}

	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return authClaims{}, errors.New("invalid authorization header")
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return authClaims{}, errors.New("empty token")
	}

	//JWTをパースして検証する
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return authClaims{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authClaims{}, errors.New("invalid claims")
	}

	//user_idを取り出す
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return authClaims{}, errors.New("invalid sub")
	}

	//roleを取り出す（USER/ADMIN）
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return authClaims{}, errors.New("invalid role")
	}

	return authClaims{UserID: userID, Role: role}, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
