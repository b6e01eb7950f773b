// File: internal/service/authentication.go
package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"transcript-hub/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容
type CustomClaims struct {
	ID   int        `json:"id"`
	Name string     `json:"name"`
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin 是否為管理員
func (c *CustomClaims) IsAdmin() bool { return c.Role == model.RoleAdmin }

// Tokens 負責簽發與驗證存取令牌
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not set")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token ttl: %s", ttl)
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}, nil
}

// Issue 依據使用者資訊產生 JWT，回傳令牌與到期時間
func (t *Tokens) Issue(user model.User) (string, time.Time, error) {
	now := timeNow()
	expiresAt := now.Add(t.ttl)
	claims := CustomClaims{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify 驗證並解析 JWT 令牌
func (t *Tokens) Verify(tokenString string) (*CustomClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(timeNow), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ID <= 0 || !claims.Role.Valid() {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
