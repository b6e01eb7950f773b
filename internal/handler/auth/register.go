// File: internal/handler/auth/register.go
package auth

import (
	"context"
	"net/http"

	"transcript-hub/internal/api"
	"transcript-hub/internal/handler"
	"transcript-hub/internal/model"
	"transcript-hub/internal/service"

	"github.com/labstack/echo/v4"
)

// Accounts 公開端點需要的帳號操作
type Accounts interface {
	Register(ctx context.Context, in service.NewUser) (*model.User, error)
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
}

// RegisterHandler 公開註冊
// @Summary     Register a new user
// @Description 建立新帳號；role 只能是 officer 或 deaf，其他值當作 officer（username 會轉小寫）
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /register [post]
func RegisterHandler(accounts Accounts) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := accounts.Register(c.Request().Context(), service.NewUser{
			Name:     req.Name,
			Username: req.Username,
			Password: req.Password,
			Role:     model.Role(req.Role),
		})
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewUserResponse(*user))
	}
}
