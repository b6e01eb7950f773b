package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required" example:"alice"`
	Password string `json:"password" form:"password" validate:"required,max=72" example:"Secret123!"`
}
