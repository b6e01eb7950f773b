// File: internal/store/postgres.go
package store

import (
	"context"
	"errors"
	"fmt"

	"transcript-hub/internal/database"
	"transcript-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const userColumns = `id, name, username, password_hash, role, created_at`

// Postgres 以 pgx 連線池實作 Store
type Postgres struct {
	db database.DB
}

func NewPostgres(db database.DB) *Postgres {
	return &Postgres{db: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Username,
		&u.PasswordHash,
		&role,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}

// mapPgError 將 PostgreSQL 錯誤碼轉成 store 的 sentinel error
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}

func (p *Postgres) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := p.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("FindUserByUsername: %w", err)
	}
	return u, nil
}

func (p *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := p.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func (p *Postgres) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	row := p.db.QueryRow(ctx,
		`INSERT INTO users (name, username, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Name,
		u.Username,
		u.PasswordHash,
		string(u.Role),
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", mapPgError(err))
	}
	return u, nil
}

func (p *Postgres) DeleteUser(ctx context.Context, id int) error {
	err := pgx.BeginFunc(ctx, p.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM transcripts WHERE user_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}

func (p *Postgres) InsertTranscript(ctx context.Context, userID int, content string) (*model.Transcript, error) {
	t := &model.Transcript{UserID: userID, Content: content}
	row := p.db.QueryRow(ctx,
		`INSERT INTO transcripts (user_id, content)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		userID,
		content,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("InsertTranscript: %w", mapPgError(err))
	}
	return t, nil
}

func (p *Postgres) ListTranscriptsByUser(ctx context.Context, userID int) ([]model.Transcript, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, user_id, content, created_at
		 FROM transcripts WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTranscriptsByUser: %w", err)
	}
	defer rows.Close()

	out := []model.Transcript{}
	for rows.Next() {
		var t model.Transcript
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListTranscriptsByUser: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTranscriptsByUser: %w", err)
	}
	return out, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
