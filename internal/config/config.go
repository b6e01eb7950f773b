// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 應用程式全部設定
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Login    LoginConfig
	Worker   WorkerConfig
	Admin    AdminConfig
	LogLevel string
}

type HTTPConfig struct {
	Addr        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	URL string
}

// RedisConfig Addr 為空代表不啟用快取
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// LoginConfig 登入失敗節流設定
type LoginConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type WorkerConfig struct {
	Count int
}

// AdminConfig 啟動時建立的初始管理員；Username 為空代表不建立
type AdminConfig struct {
	Name     string
	Username string
	Password string
}

// loadDotEnv 讀取 .env，可由測試覆寫
var loadDotEnv = func() error { return godotenv.Load() }

// Load 先載入 .env（若存在），再從環境變數組出設定
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("載入 .env 失敗: %w", err)
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:        getEnv("HTTP_ADDR", ":8080"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Auth: AuthConfig{JWTSecret: os.Getenv("JWT_SECRET")},
		Admin: AdminConfig{
			Name:     getEnv("ADMIN_NAME", "Administrator"),
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("環境變數 JWT_SECRET 未設定")
	}

	if (cfg.Admin.Username == "") != (cfg.Admin.Password == "") {
		return nil, fmt.Errorf("ADMIN_USERNAME 與 ADMIN_PASSWORD 必須同時設定")
	}

	var err error
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Worker.Count, err = getEnvInt("WORKER_COUNT", 4); err != nil {
		return nil, err
	}
	if cfg.Worker.Count <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.Worker.Count)
	}
	if cfg.Login.MaxAttempts, err = getEnvInt("LOGIN_MAX_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.Login.Window, err = getEnvDuration("LOGIN_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Auth.TokenTTL, err = getEnvDuration("TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("無效的 TOKEN_TTL: %s", cfg.Auth.TokenTTL)
	}
	return cfg, nil
}

// String 輸出設定摘要，敏感值遮蔽
func (c *Config) String() string {
	redis := "disabled"
	if c.Redis.Addr != "" {
		redis = fmt.Sprintf("%s/%d", c.Redis.Addr, c.Redis.DB)
	}
	return fmt.Sprintf("Config{HTTP: %s, DB: *** (masked) ***, Redis: %s, TokenTTL: %s, Workers: %d}",
		c.HTTP.Addr, redis, c.Auth.TokenTTL, c.Worker.Count)
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
