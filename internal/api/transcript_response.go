package api

import (
	"time"

	"transcript-hub/internal/model"
)

// swagger:model api.TranscriptResponse
type TranscriptResponse struct {
	ID        int       `json:"id" example:"10"`
	UserID    int       `json:"userId" example:"2"`
	Content   string    `json:"content" example:"Please wait here."`
	CreatedAt time.Time `json:"createdAt"`
}

func NewTranscriptResponse(t model.Transcript) TranscriptResponse {
	return TranscriptResponse{ID: t.ID, UserID: t.UserID, Content: t.Content, CreatedAt: t.CreatedAt}
}

// NewTranscriptResponses 空列表回傳 [] 而非 null
func NewTranscriptResponses(list []model.Transcript) []TranscriptResponse {
	out := make([]TranscriptResponse, 0, len(list))
	for _, t := range list {
		out = append(out, NewTranscriptResponse(t))
	}
	return out
}
