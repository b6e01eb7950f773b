package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" form:"name" validate:"required" example:"Alice"`
	Username string `json:"username" form:"username" validate:"required" example:"alice"`
	Password string `json:"password" form:"password" validate:"required,max=72" example:"Secret123!"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=admin officer deaf" example:"officer"`
}
