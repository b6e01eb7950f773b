// File: internal/api/create_transcript_request.go
package api

// swagger:model api.CreateTranscriptRequest
// UserID 只有管理員指定時有效；數字或數字字串皆可
type CreateTranscriptRequest struct {
	UserID  FlexibleInt `json:"userId" form:"userId" validate:"omitempty,gt=0" swaggertype:"integer" example:"0"`
	Content string      `json:"content" form:"content" validate:"required" example:"Please wait here."`
}

// swagger:model api.AdminCreateTranscriptRequest
type AdminCreateTranscriptRequest struct {
	UserID  FlexibleInt `json:"userId" form:"userId" validate:"required,gt=0" swaggertype:"integer" example:"2"`
	Content string      `json:"content" form:"content" validate:"required" example:"Please wait here."`
}
