// File: internal/service/transcripts.go
package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"transcript-hub/internal/apperror"
	"transcript-hub/internal/model"
	"transcript-hub/internal/store"
)

// MaxTranscriptLength transcript 內容長度上限（字元數）
const MaxTranscriptLength = 5000

type Transcripts struct {
	store store.Store
}

func NewTranscripts(s store.Store) *Transcripts {
	return &Transcripts{store: s}
}

func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperror.Validation("content is required")
	}
	if utf8.RuneCountInString(content) > MaxTranscriptLength {
		return "", apperror.Validation("content must be at most 5000 characters")
	}
	return content, nil
}

// Create 建立 transcript；非管理員只能寫入自己的帳號
func (t *Transcripts) Create(ctx context.Context, claims *CustomClaims, requestedUserID int, content string) (*model.Transcript, error) {
	return t.insert(ctx, ResolveEffectiveOwner(claims, requestedUserID), content)
}

// CreateFor 管理員替指定使用者建立 transcript
func (t *Transcripts) CreateFor(ctx context.Context, claims *CustomClaims, userID int, content string) (*model.Transcript, error) {
	if err := RequireRole(claims, model.RoleAdmin); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, apperror.Validation("userId is required")
	}
	return t.insert(ctx, userID, content)
}

func (t *Transcripts) insert(ctx context.Context, owner int, content string) (*model.Transcript, error) {
	content, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	tr, err := t.store.InsertTranscript(ctx, owner, content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Storage(err)
	}
	return tr, nil
}

// List 列出 userID 的 transcript，由新到舊
func (t *Transcripts) List(ctx context.Context, claims *CustomClaims, userID int) ([]model.Transcript, error) {
	if err := AuthorizeTranscriptAccess(claims, userID); err != nil {
		return nil, err
	}
	list, err := t.store.ListTranscriptsByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return list, nil
}
