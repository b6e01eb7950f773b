package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct{ upErr, downErr error }

func (f fakeMigrator) Up() error   { return f.upErr }
func (f fakeMigrator) Down() error { return f.downErr }

func restore() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restore)
	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return nil, errors.New("bad") }
	_, err := NewPgxPool(context.Background(), "url")
	require.Error(t, err)

	pgxpoolNew = func(ctx context.Context, url string) (*pgxpool.Pool, error) { return &pgxpool.Pool{}, nil }
	db, err := NewPgxPool(context.Background(), "url")
	require.NoError(t, err)
	require.NotNil(t, db)
}

// stubMigrator 讓 newMigrator 的每個步驟都成功，回傳 m
func stubMigrator(m migrateInstance) {
	sqlOpenDB = func(string, string) (*sql.DB, error) { return sql.Open("pgx", "") }
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) { return m, nil }
}

func TestMigratorSetupErrors(t *testing.T) {
	steps := map[string]func(){
		"open": func() {
			sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
		},
		"driver": func() {
			postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("drv") }
		},
		"source": func() {
			iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, errors.New("src") }
		},
		"migrate": func() {
			migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
				return nil, errors.New("mig")
			}
		},
	}
	for name, breakStep := range steps {
		t.Run(name, func(t *testing.T) {
			t.Cleanup(restore)
			stubMigrator(fakeMigrator{})
			breakStep()
			require.Error(t, RunMigrations("url"))
			require.Error(t, RollbackAll("url"))
		})
	}
}

func TestMigrationDirection(t *testing.T) {
	cases := []struct {
		name     string
		m        fakeMigrator
		upFail   bool
		downFail bool
	}{
		{name: "ok", m: fakeMigrator{}},
		{name: "no change", m: fakeMigrator{upErr: migrate.ErrNoChange, downErr: migrate.ErrNoChange}},
		{name: "failure", m: fakeMigrator{upErr: errors.New("u"), downErr: errors.New("d")}, upFail: true, downFail: true},
		{name: "dirty up only", m: fakeMigrator{upErr: errors.New("dirty")}, upFail: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			stubMigrator(tc.m)
			if tc.upFail {
				require.Error(t, RunMigrations("url"))
			} else {
				require.NoError(t, RunMigrations("url"))
			}
			if tc.downFail {
				require.Error(t, RollbackAll("url"))
			} else {
				require.NoError(t, RollbackAll("url"))
			}
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{
		"0001_create_users.down.sql",
		"0001_create_users.up.sql",
		"0002_create_transcripts.down.sql",
		"0002_create_transcripts.up.sql",
	}, names)

	up, err := migrationsFS.ReadFile("migrations/0002_create_transcripts.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(up), "ON DELETE CASCADE")
}

func TestRunMigrationsClosesConnection(t *testing.T) {
	t.Cleanup(restore)
	var opened *sql.DB
	sqlOpenDB = func(driver, dsn string) (*sql.DB, error) {
		require.Equal(t, "pgx", driver)
		require.Equal(t, "postgres://db", dsn)
		d, err := sql.Open("pgx", "")
		opened = d
		return d, err
	}
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(sourceName string, _ src.Driver, databaseName string, _ dbdriver.Driver) (migrateInstance, error) {
		require.Equal(t, "iofs", sourceName)
		require.Equal(t, "postgres", databaseName)
		return fakeMigrator{}, nil
	}
	require.NoError(t, RunMigrations("postgres://db"))
	require.Error(t, opened.Ping())
}
