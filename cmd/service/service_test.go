package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"transcript-hub/internal/cache"
	"transcript-hub/internal/config"
	"transcript-hub/internal/database"
	"transcript-hub/internal/worker"
)

func restoreGlobals() {
	loadConfig = config.Load
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn = database.RollbackAll
	cliArgs = func() []string { return nil }
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool = worker.NewPool
	exitFunc = func(code int) {}
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP:     config.HTTPConfig{Addr: ":0", CORSOrigins: []string{"*"}},
		Database: config.DatabaseConfig{URL: "db"},
		Redis:    config.RedisConfig{Addr: "127", Password: "pw", DB: 1},
		Auth:     config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
		Login:    config.LoginConfig{MaxAttempts: 5, Window: time.Minute},
		Worker:   config.WorkerConfig{Count: 2},
		LogLevel: "ERROR",
	}
}

func stubDeps(cfg *config.Config) {
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{CloseFn: func() {}}, nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	runMigrationsFn = func(string) error { return nil }
	startServer = func(*echo.Echo, string) error { return nil }
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restoreGlobals)
	cfg := testConfig()
	stubDeps(cfg)
	called := make(map[string]bool)
	newPgxPool = func(ctx context.Context, url string) (database.DB, error) {
		called["pgx"] = true
		require.Equal(t, "db", url)
		return &database.FakeDB{
			CloseFn: func() { called["dbClose"] = true },
			PingFn:  func(context.Context) error { return nil },
		}, nil
	}
	newRedisClient = func(addr, pwd string, db int) (cache.Cache, error) {
		called["redis"] = true
		require.Equal(t, "127", addr)
		require.Equal(t, "pw", pwd)
		require.Equal(t, 1, db)
		return &cache.FakeCache{CloseFn: func() error { called["redisClose"] = true; return nil }}, nil
	}
	runMigrationsFn = func(url string) error { called["migrate"] = true; return nil }
	startServer = func(e *echo.Echo, addr string) error {
		called["start"] = true
		require.Equal(t, ":0", addr)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
		return nil
	}

	require.NoError(t, run())
	require.True(t, called["pgx"])
	require.True(t, called["redis"])
	require.True(t, called["migrate"])
	require.True(t, called["start"])
	require.True(t, called["dbClose"])
	require.True(t, called["redisClose"])
}

func TestRunWithoutRedis(t *testing.T) {
	t.Cleanup(restoreGlobals)
	cfg := testConfig()
	cfg.Redis.Addr = ""
	stubDeps(cfg)
	newRedisClient = func(string, string, int) (cache.Cache, error) {
		t.Fatal("redis should not be dialed")
		return nil, nil
	}
	require.NoError(t, run())
}

func TestRunEnsuresAdmin(t *testing.T) {
	t.Cleanup(restoreGlobals)
	cfg := testConfig()
	cfg.Admin = config.AdminConfig{Name: "Admin", Username: "admin", Password: "pw"}
	stubDeps(cfg)
	queried := false
	newPgxPool = func(context.Context, string) (database.DB, error) {
		return &database.FakeDB{
			CloseFn: func() {},
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				queried = true
				return errRow{err: errors.New("db down")}
			},
		}, nil
	}
	require.Error(t, run())
	require.True(t, queried)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)

	loadConfig = func() (*config.Config, error) { return nil, errors.New("cfg") }
	require.Error(t, run())

	cfg := testConfig()
	cfg.LogLevel = "LOUD"
	stubDeps(cfg)
	require.Error(t, run())

	cfg.LogLevel = "ERROR"
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run())

	newPgxPool = func(context.Context, string) (database.DB, error) { return &database.FakeDB{CloseFn: func() {}}, nil }
	runMigrationsFn = func(string) error { return errors.New("migrate") }
	require.Error(t, run())

	runMigrationsFn = func(string) error { return nil }
	newRedisClient = func(string, string, int) (cache.Cache, error) { return nil, errors.New("redis") }
	require.Error(t, run())

	newRedisClient = func(string, string, int) (cache.Cache, error) { return &cache.FakeCache{}, nil }
	startServer = func(*echo.Echo, string) error { return errors.New("start") }
	require.Error(t, run())
}

func TestMainFunction(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubDeps(testConfig())
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	main()
	require.Equal(t, 0, exitCode)
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	stubDeps(testConfig())
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("fail") }
	main()
	require.Equal(t, 1, exitCode)
}

func TestMainRollback(t *testing.T) {
	t.Cleanup(restoreGlobals)
	stubDeps(testConfig())
	cliArgs = func() []string { return []string{"rollback"} }
	startServer = func(*echo.Echo, string) error {
		t.Fatal("server should not start")
		return nil
	}
	rolledBack := ""
	rollbackFn = func(url string) error { rolledBack = url; return nil }
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }
	main()
	require.Equal(t, 0, exitCode)
	require.Equal(t, "db", rolledBack)

	rollbackFn = func(string) error { return errors.New("down") }
	main()
	require.Equal(t, 1, exitCode)

	loadConfig = func() (*config.Config, error) { return nil, errors.New("cfg") }
	exitCode = 0
	main()
	require.Equal(t, 1, exitCode)
}
