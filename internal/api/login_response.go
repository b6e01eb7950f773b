// File: internal/api/login_response.go
package api

import "time"

// swagger:model api.LoginResponse
type LoginResponse struct {
	Token     string     `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      PublicUser `json:"user"`
}
