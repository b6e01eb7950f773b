// File: internal/service/password.go
package service

import (
	"context"
	"sync"

	"transcript-hub/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// dummyPassword 只用來產生查無使用者時比對的雜湊，讓回應時間一致
const dummyPassword = "transcript-hub/no-such-user"

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	return hashWithCost(password, bcrypt.DefaultCost)
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

func hashWithCost(password string, cost int) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Hasher 在有限大小的 worker pool 上執行 bcrypt
// pool 為 nil 時直接在呼叫端 goroutine 執行
type Hasher struct {
	pool worker.Pool
	cost int

	dummyOnce sync.Once
	dummyHash string
	dummyErr  error
}

func NewHasher(pool worker.Pool, cost int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{pool: pool, cost: cost}
}

func (h *Hasher) run(ctx context.Context, fn func()) error {
	if h.pool == nil {
		fn()
		return nil
	}
	return h.pool.Do(ctx, worker.Task(fn))
}

// Hash 產生 password 的 bcrypt 雜湊
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	var hash string
	var err error
	if runErr := h.run(ctx, func() { hash, err = hashWithCost(password, h.cost) }); runErr != nil {
		return "", runErr
	}
	return hash, err
}

// Compare 比對成功回傳 nil
func (h *Hasher) Compare(ctx context.Context, hash, password string) error {
	var err error
	if runErr := h.run(ctx, func() { err = ComparePassword(hash, password) }); runErr != nil {
		return runErr
	}
	return err
}

// CompareDummy 對固定的雜湊做一次比對，結果一律捨棄
func (h *Hasher) CompareDummy(ctx context.Context, password string) {
	h.dummyOnce.Do(func() {
		h.dummyHash, h.dummyErr = hashWithCost(dummyPassword, h.cost)
	})
	if h.dummyErr != nil {
		return
	}
	_ = h.Compare(ctx, h.dummyHash, password)
}
