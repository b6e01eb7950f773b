// File: internal/handler/respond.go
package handler

import (
	"net/http"

	"transcript-hub/internal/api"
	"transcript-hub/internal/apperror"
	"transcript-hub/internal/logger"

	"github.com/labstack/echo/v4"
)

// RespondError 依錯誤種類決定狀態碼；5xx 的細節只寫進 log
func RespondError(c echo.Context, err error) error {
	status := apperror.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, api.ErrorResponse{Message: apperror.PublicMessage(err)})
}
