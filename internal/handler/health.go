// File: internal/handler/health.go
package handler

import (
	"context"
	"net/http"
	"time"

	"transcript-hub/internal/api"
	"transcript-hub/internal/cache"
	"transcript-hub/internal/logger"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

// Pinger 可檢查連線狀態的元件
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler 檢查資料庫與快取（若有設定）是否可連線
// @Summary     Health check
// @Description 資料庫與 Redis 皆正常時回傳 200，否則 503
// @Tags        health
// @Produce     json
// @Success     200 {object} api.HealthResponse
// @Failure     503 {object} api.HealthResponse
// @Router      /health [get]
func HealthHandler(db Pinger, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), healthTimeout)
		defer cancel()

		resp := api.HealthResponse{Status: "ok", Database: "ok", Cache: "disabled"}
		status := http.StatusOK

		if err := db.Ping(reqCtx); err != nil {
			logger.Warningf("health: database ping: %v", err)
			resp.Database = "unavailable"
			status = http.StatusServiceUnavailable
		}
		if c != nil {
			resp.Cache = "ok"
			if err := c.Ping(reqCtx).Err(); err != nil {
				logger.Warningf("health: cache ping: %v", err)
				resp.Cache = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}
		if status != http.StatusOK {
			resp.Status = "degraded"
		}
		return ctx.JSON(status, resp)
	}
}
