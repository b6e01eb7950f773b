// File: internal/api/register_request.go
package api

// swagger:model api.RegisterRequest
// Role 只接受 officer 或 deaf，其他值一律當作 officer
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required" example:"Alice"`
	Username string `json:"username" form:"username" validate:"required" example:"alice"`
	Password string `json:"password" form:"password" validate:"required,max=72" example:"Secret123!"`
	Role     string `json:"role" form:"role" example:"deaf"`
}
