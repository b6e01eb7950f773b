// File: internal/handler/users/admin.go
package users

import (
	"context"
	"net/http"
	"strconv"

	"transcript-hub/internal/api"
	"transcript-hub/internal/handler"
	"transcript-hub/internal/model"
	"transcript-hub/internal/service"

	"github.com/labstack/echo/v4"
)

// UserAdmin 管理員的使用者操作
type UserAdmin interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, in service.NewUser) (*model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// @Summary     List users
// @Description 依建立順序由新到舊列出所有使用者（不含密碼）
// @Tags        admin
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users [get]
func ListUsersHandler(svc UserAdmin) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := svc.ListUsers(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponses(users))
	}
}

// @Summary     Create a new user
// @Description 建立任意角色的使用者；未指定 role 時為 officer（username 會轉小寫）
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "使用者資料"
// @Success     201  {object} api.UserResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users [post]
func CreateUserHandler(svc UserAdmin) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := svc.CreateUser(c.Request().Context(), service.NewUser{
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

// @Summary     Delete a user by ID
// @Description 刪除使用者及其全部 transcript
// @Tags        admin
// @Param       id  path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse "參數錯誤"
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     500 {object} api.ErrorResponse "伺服器錯誤"
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [delete]
func DeleteUserHandler(svc UserAdmin) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		if err := svc.DeleteUser(c.Request().Context(), id); err != nil {
			return handler.RespondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
