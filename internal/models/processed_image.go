package models

import "time"

// DerivedImage describes a generated file in the output directory.
type DerivedImage struct {
	Key         string    `json:"key"`
	Source      string    `json:"source"`
	Path        string    `json:"path"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FileSize    int64     `json:"file_size"`
	URL         string    `json:"url,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}
