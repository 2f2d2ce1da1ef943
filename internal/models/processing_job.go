package models

import "time"

type WarmupSize struct {
	Width  int `json:"width" binding:"required,min=1"`
	Height int `json:"height" binding:"required,min=1"`
}

// WarmupRequest pre-generates derived images for one source.
type WarmupRequest struct {
	Filename string       `json:"filename" binding:"required"`
	Sizes    []WarmupSize `json:"sizes" binding:"required,min=1,dive"`
}

type WarmupJob struct {
	ID        string            `json:"id"`
	Filename  string            `json:"filename"`
	Sizes     []WarmupSize      `json:"sizes"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Results   []WarmupJobResult `json:"results,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type WarmupJobResult struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	OutputPath string `json:"output_path,omitempty"`
	Cached     bool   `json:"cached,omitempty"`
	URL        string `json:"url,omitempty"`
	Error      string `json:"error,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
