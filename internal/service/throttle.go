// File: internal/service/throttle.go
package service

import (
	"context"
	"errors"
	"time"

	"transcript-hub/internal/apperror"
	"transcript-hub/internal/cache"
	"transcript-hub/internal/logger"

	"github.com/redis/go-redis/v9"
)

const loginFailKeyPrefix = "login:fail:"

// LoginThrottle 以固定視窗計算每個 username 的登入失敗次數
// nil 的 *LoginThrottle 代表不節流
type LoginThrottle struct {
	cache  cache.Cache
	max    int
	window time.Duration
}

// NewLoginThrottle c 為 nil 或 max <= 0 時回傳 nil（停用）
func NewLoginThrottle(c cache.Cache, max int, window time.Duration) *LoginThrottle {
	if c == nil || max <= 0 || window <= 0 {
		return nil
	}
	return &LoginThrottle{cache: c, max: max, window: window}
}

func (t *LoginThrottle) key(username string) string { return loginFailKeyPrefix + username }

// Allow 失敗次數已達上限時回傳 RateLimited；快取異常時放行
func (t *LoginThrottle) Allow(ctx context.Context, username string) error {
	if t == nil {
		return nil
	}
	n, err := t.cache.Get(ctx, t.key(username)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warningf("login throttle: read %q: %v", username, err)
		}
		return nil
	}
	if n >= t.max {
		t.ensureWindow(ctx, t.key(username))
		return apperror.RateLimited("too many failed login attempts, try again later")
	}
	return nil
}

// Fail 記錄一次失敗；第一次失敗時設定視窗過期時間
func (t *LoginThrottle) Fail(ctx context.Context, username string) {
	if t == nil {
		return
	}
	key := t.key(username)
	n, err := t.cache.Incr(ctx, key).Result()
	if err != nil {
		logger.Warningf("login throttle: incr %q: %v", username, err)
		return
	}
	if n == 1 {
		t.expire(ctx, key)
		return
	}
	t.ensureWindow(ctx, key)
}

// ensureWindow 補上遺失的過期時間，計數器不能永久存在
func (t *LoginThrottle) ensureWindow(ctx context.Context, key string) {
	ttl, err := t.cache.TTL(ctx, key).Result()
	if err != nil {
		logger.Warningf("login throttle: ttl %q: %v", key, err)
		return
	}
	// -1 代表 key 存在但沒有過期時間
	if ttl == -1 {
		t.expire(ctx, key)
	}
}

func (t *LoginThrottle) expire(ctx context.Context, key string) {
	if err := t.cache.Expire(ctx, key, t.window).Err(); err != nil {
		logger.Warningf("login throttle: expire %q: %v", key, err)
	}
}

// Reset 登入成功後清除計數
func (t *LoginThrottle) Reset(ctx context.Context, username string) {
	if t == nil {
		return
	}
	if err := t.cache.Del(ctx, t.key(username)).Err(); err != nil {
		logger.Warningf("login throttle: reset %q: %v", username, err)
	}
}
