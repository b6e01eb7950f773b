// File: internal/store/store.go
package store

import (
	"context"
	"errors"

	"transcript-hub/internal/model"
)

var (
	// ErrNotFound 查無資料，或 transcript 的擁有者不存在
	ErrNotFound = errors.New("not found")
	// ErrConflict 違反唯一性（重複的 username）
	ErrConflict = errors.New("conflict")
)

// Store 是服務層依賴的資料存取介面
// Postgres 與 Memory 兩種實作必須滿足相同的行為
type Store interface {
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	// ListUsers 依 id 由新到舊排序
	ListUsers(ctx context.Context) ([]model.User, error)
	// CreateUser 回填 ID 與 CreatedAt；username 重複時回傳 ErrConflict
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	// DeleteUser 在同一個交易中刪除使用者與其所有 transcript
	DeleteUser(ctx context.Context, id int) error
	InsertTranscript(ctx context.Context, userID int, content string) (*model.Transcript, error)
	// ListTranscriptsByUser 依建立時間由新到舊排序；無資料時回傳空 slice
	ListTranscriptsByUser(ctx context.Context, userID int) ([]model.Transcript, error)
	Ping(ctx context.Context) error
}
