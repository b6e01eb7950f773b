package api

// swagger:model api.HealthResponse
// Cache 在未設定 Redis 時為 "disabled"
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
	Cache    string `json:"cache" example:"disabled"`
}
