// @title        Transcript Hub API
// @version      1.0
// @description  逐字稿管理系統的後端 API 文件
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"transcript-hub/internal/cache"
	"transcript-hub/internal/config"
	"transcript-hub/internal/database"
	"transcript-hub/internal/logger"
	"transcript-hub/internal/router"
	"transcript-hub/internal/service"
	"transcript-hub/internal/store"
	"transcript-hub/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "transcript-hub/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	cliArgs         = func() []string { return os.Args[1:] }
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("無效的 LOG_LEVEL: %w", err)
	}
	logger.Init(level, os.Stderr)
	logger.Infof("啟動設定: %s", cfg)

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	var rdb cache.Cache
	if cfg.Redis.Addr != "" {
		rdb, err = newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
	} else {
		logger.Infof("REDIS_ADDR 未設定，停用登入節流")
	}

	wp := newWorkerPool(cfg.Worker.Count)
	defer wp.Stop()

	tokens, err := service.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	st := store.NewPostgres(db)
	throttle := service.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	accounts := service.NewAccounts(st, tokens, service.NewHasher(wp, 0), throttle)

	if cfg.Admin.Username != "" {
		created, err := accounts.EnsureAdmin(ctx, service.NewUser{
			Name:     cfg.Admin.Name,
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			return fmt.Errorf("建立管理員失敗: %w", err)
		}
		if created {
			logger.Infof("已建立管理員 %q", service.NormalizeUsername(cfg.Admin.Username))
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = router.NewValidator()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	router.Setup(e, router.Deps{
		Accounts:    accounts,
		Transcripts: service.NewTranscripts(st),
		DB:          st,
		Cache:       rdb,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	logger.Infof("listening on %s", cfg.HTTP.Addr)
	return startServer(e, cfg.HTTP.Addr)
}

// rollback 退回全部 migration 後結束，不啟動 HTTP 服務
func rollback() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	if err := rollbackFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("Rollback 執行失敗: %w", err)
	}
	logger.Infof("所有 migration 已退回")
	return nil
}

func main() {
	cmd := run
	if args := cliArgs(); len(args) > 0 && args[0] == "rollback" {
		cmd = rollback
	}
	if err := cmd(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
