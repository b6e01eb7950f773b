// File: internal/service/accounts.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"transcript-hub/internal/apperror"
	"transcript-hub/internal/logger"
	"transcript-hub/internal/model"
	"transcript-hub/internal/store"
)

const invalidCredentials = "invalid credentials"

// bcrypt 只接受 72 bytes 以內的密碼
const maxPasswordBytes = 72

const msgPasswordTooLong = "password must be at most 72 bytes"

// NewUser 建立使用者所需欄位；Role 可為空
type NewUser struct {
	Name     string
	Username string
	Password string
	Role     model.Role
}

// PublicUser 可回傳給前端的使用者資訊
type PublicUser struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	Role model.Role `json:"role"`
}

// LoginResult 登入成功的結果
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      PublicUser
}

// Accounts 處理註冊、登入與使用者管理
type Accounts struct {
	store    store.Store
	tokens   *Tokens
	hasher   *Hasher
	throttle *LoginThrottle
}

func NewAccounts(s store.Store, tokens *Tokens, hasher *Hasher, throttle *LoginThrottle) *Accounts {
	if hasher == nil {
		hasher = NewHasher(nil, 0)
	}
	return &Accounts{store: s, tokens: tokens, hasher: hasher, throttle: throttle}
}

// NormalizeUsername 去除前後空白並轉為小寫
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register 公開註冊；只能選擇 officer 或 deaf，其餘一律視為 officer
func (a *Accounts) Register(ctx context.Context, in NewUser) (*model.User, error) {
	if !in.Role.SelfAssignable() {
		in.Role = model.RoleOfficer
	}
	return a.create(ctx, in)
}

// CreateUser 管理員建立使用者，可指定任何角色
func (a *Accounts) CreateUser(ctx context.Context, in NewUser) (*model.User, error) {
	if in.Role == "" {
		in.Role = model.RoleOfficer
	}
	if !in.Role.Valid() {
		return nil, apperror.Validation("role must be one of admin, officer, deaf")
	}
	return a.create(ctx, in)
}

func (a *Accounts) create(ctx context.Context, in NewUser) (*model.User, error) {
	name := strings.TrimSpace(in.Name)
	username := NormalizeUsername(in.Username)
	if name == "" || username == "" || in.Password == "" {
		return nil, apperror.Validation("name, username and password are required")
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, apperror.Validation(msgPasswordTooLong)
	}

	hash, err := a.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	user, err := a.store.CreateUser(ctx, &model.User{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Role:         in.Role,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apperror.Conflict("username already exists")
		}
		return nil, apperror.Storage(err)
	}
	return user, nil
}

// Login 驗證帳密並簽發令牌
// 查無使用者與密碼錯誤回傳完全相同的錯誤
func (a *Accounts) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, apperror.Validation("username and password are required")
	}
	if len(password) > maxPasswordBytes {
		return nil, apperror.Validation(msgPasswordTooLong)
	}
	if err := a.throttle.Allow(ctx, username); err != nil {
		return nil, err
	}

	user, err := a.store.FindUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Storage(err)
		}
		a.hasher.CompareDummy(ctx, password)
		a.throttle.Fail(ctx, username)
		return nil, apperror.Auth(invalidCredentials)
	}

	if err := a.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperror.Unexpected(ctxErr)
		}
		logger.Debugf("login: password mismatch for user %d", user.ID)
		a.throttle.Fail(ctx, username)
		return nil, apperror.Auth(invalidCredentials)
	}
	a.throttle.Reset(ctx, username)

	token, expiresAt, err := a.tokens.Issue(*user)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      PublicUser{ID: user.ID, Name: user.Name, Role: user.Role},
	}, nil
}

// VerifyToken 驗證令牌；任何失敗都回傳 Auth 錯誤
func (a *Accounts) VerifyToken(token string) (*CustomClaims, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		logger.Debugf("verify token: %v", err)
		return nil, apperror.Auth("invalid or expired token")
	}
	return claims, nil
}

// ListUsers 依 id 由新到舊
func (a *Accounts) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := a.store.ListUsers(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return users, nil
}

// DeleteUser 刪除使用者並連同刪除其 transcript
func (a *Accounts) DeleteUser(ctx context.Context, id int) error {
	if err := a.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("user not found")
		}
		return apperror.Storage(err)
	}
	return nil
}

// EnsureAdmin 啟動時建立初始管理員；帳號已存在時不做任何事
func (a *Accounts) EnsureAdmin(ctx context.Context, in NewUser) (bool, error) {
	in.Role = model.RoleAdmin
	if _, err := a.store.FindUserByUsername(ctx, NormalizeUsername(in.Username)); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, apperror.Storage(err)
	}
	if _, err := a.create(ctx, in); err != nil {
		if apperror.KindOf(err) == apperror.KindConflict {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
