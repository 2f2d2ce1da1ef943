package models

import "time"

const (
	HealthHealthy       = "healthy"
	HealthUnhealthy     = "unhealthy"
	HealthNotConfigured = "not configured"
)

type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
