// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"transcript-hub/internal/cache"
	"transcript-hub/internal/handler"
	"transcript-hub/internal/handler/auth"
	"transcript-hub/internal/handler/transcripts"
	"transcript-hub/internal/handler/users"
	"transcript-hub/internal/middleware"
	"transcript-hub/internal/model"
	"transcript-hub/internal/service"
)

// Deps 路由需要的服務；Cache 可為 nil
type Deps struct {
	Accounts    *service.Accounts
	Transcripts *service.Transcripts
	DB          handler.Pinger
	Cache       cache.Cache
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	requireAuth := middleware.RequireAuth(d.Accounts)

	// 健康檢查
	e.GET("/health", handler.HealthHandler(d.DB, d.Cache))

	// 註冊與登入
	e.POST("/register", auth.RegisterHandler(d.Accounts))
	e.POST("/login", auth.LoginHandler(d.Accounts))

	// 需登入
	e.GET("/me", users.GetMeHandler(), requireAuth)
	e.POST("/transcripts", transcripts.CreateTranscriptHandler(d.Transcripts), requireAuth)
	e.GET("/transcripts/:userId", transcripts.ListTranscriptsHandler(d.Transcripts), requireAuth)

	// 管理員專屬
	admin := e.Group("/admin", requireAuth, middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", users.ListUsersHandler(d.Accounts))
	admin.POST("/users", users.CreateUserHandler(d.Accounts))
	admin.DELETE("/users/:id", users.DeleteUserHandler(d.Accounts))
	admin.POST("/transcripts", transcripts.AdminCreateTranscriptHandler(d.Transcripts))
}
