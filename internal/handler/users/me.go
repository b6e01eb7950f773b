// File: internal/handler/users/me.go
package users

import (
	"net/http"

	"transcript-hub/internal/api"
	"transcript-hub/internal/middleware"

	"github.com/labstack/echo/v4"
)

// GetMeHandler 取得當前使用者資訊
// @Summary     Get current user info
// @Description 回傳 JWT 內的身分資訊，不查詢資料庫
// @Tags        users
// @Produce     json
// @Success     200 {object} api.PublicUser
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /me [get]
func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		return c.JSON(http.StatusOK, api.PublicUser{
			ID:   claims.ID,
			Name: claims.Name,
			Role: string(claims.Role),
		})
	}
}
