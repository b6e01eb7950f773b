// File: internal/model/user.go
package model

import "time"

// Role 決定使用者的授權範圍
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "officer"
	RoleDeaf    Role = "deaf"
)

// Valid 回報 r 是否為已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOfficer, RoleDeaf:
		return true
	}
	return false
}

// SelfAssignable 回報 r 是否可由公開註冊自行指定
func (r Role) SelfAssignable() bool {
	return r == RoleOfficer || r == RoleDeaf
}

type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
