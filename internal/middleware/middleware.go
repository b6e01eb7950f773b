package middleware

import (
	"net/http"
	"strings"

	"transcript-hub/internal/model"
	"transcript-hub/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// TokenVerifier 驗證 bearer token 並回傳身分
type TokenVerifier interface {
	VerifyToken(token string) (*service.CustomClaims, error)
}

func extractClaims(c echo.Context, v TokenVerifier) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := v.VerifyToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

// RequireAuth 驗證令牌並把 claims 放進 context
func RequireAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, v)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// RequireRole 必須放在 RequireAuth 之後
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}
			if err := service.RequireRole(claims, role); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, err.Error())
			}
			return next(c)
		}
	}
}

// ClaimsFrom 取出 RequireAuth 放入的 claims；未驗證時回傳 nil
func ClaimsFrom(c echo.Context) *service.CustomClaims {
	claims, _ := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims
}
