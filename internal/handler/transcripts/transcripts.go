// File: internal/handler/transcripts/transcripts.go
package transcripts

import (
	"context"
	"net/http"
	"strconv"

	"transcript-hub/internal/api"
	"transcript-hub/internal/handler"
	"transcript-hub/internal/middleware"
	"transcript-hub/internal/model"
	"transcript-hub/internal/service"

	"github.com/labstack/echo/v4"
)

// Service transcript 的建立與查詢
type Service interface {
	Create(ctx context.Context, claims *service.CustomClaims, requestedUserID int, content string) (*model.Transcript, error)
	CreateFor(ctx context.Context, claims *service.CustomClaims, userID int, content string) (*model.Transcript, error)
	List(ctx context.Context, claims *service.CustomClaims, userID int) ([]model.Transcript, error)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
}

// CreateTranscriptHandler 建立 transcript
// @Summary     Create a transcript
// @Description 一般使用者一律寫入自己的帳號；管理員可用 userId 指定擁有者
// @Tags        transcripts
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateTranscriptRequest true "transcript 內容"
// @Success     201  {object} api.TranscriptResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /transcripts [post]
func CreateTranscriptHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return unauthorized(c)
		}
		var req api.CreateTranscriptRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		tr, err := svc.Create(c.Request().Context(), claims, req.UserID.Int(), req.Content)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewTranscriptResponse(*tr))
	}
}

// AdminCreateTranscriptHandler 管理員替指定使用者建立 transcript
// @Summary     Create a transcript for a user
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       body body     api.AdminCreateTranscriptRequest true "transcript 內容"
// @Success     201  {object} api.TranscriptResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/transcripts [post]
func AdminCreateTranscriptHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return unauthorized(c)
		}
		var req api.AdminCreateTranscriptRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		tr, err := svc.CreateFor(c.Request().Context(), claims, req.UserID.Int(), req.Content)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, api.NewTranscriptResponse(*tr))
	}
}

// ListTranscriptsHandler 列出某使用者的 transcript
// @Summary     List transcripts of a user
// @Description 本人或管理員才能讀取；由新到舊排序
// @Tags        transcripts
// @Produce     json
// @Param       userId path     int true "使用者 ID"
// @Success     200    {array}  api.TranscriptResponse
// @Failure     400    {object} api.ErrorResponse
// @Failure     401    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /transcripts/{userId} [get]
func ListTranscriptsHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.ClaimsFrom(c)
		if claims == nil {
			return unauthorized(c)
		}
		userID, err := strconv.Atoi(c.Param("userId"))
		if err != nil || userID <= 0 {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		list, err := svc.List(c.Request().Context(), claims, userID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewTranscriptResponses(list))
	}
}
