// File: internal/handler/auth/login.go
package auth

import (
	"net/http"

	"transcript-hub/internal/api"
	"transcript-hub/internal/handler"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Username/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Username 與 Password 進行驗證，回傳存取令牌、到期時間與使用者資訊
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "帳號密碼"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /login [post]
func LoginHandler(accounts Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		res, err := accounts.Login(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return handler.RespondError(c, err)
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Token:     res.Token,
			ExpiresAt: res.ExpiresAt,
			User: api.PublicUser{
				ID:   res.User.ID,
				Name: res.User.Name,
				Role: string(res.User.Role),
			},
		})
	}
}
