package api

// swagger:model api.PublicUser
type PublicUser struct {
	ID   int    `json:"id" example:"1"`
	Name string `json:"name" example:"Alice"`
	Role string `json:"role" example:"officer"`
}
