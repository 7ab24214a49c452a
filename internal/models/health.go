package models

// HealthResponse represents the service health status
// swagger:model HealthResponse
type HealthResponse struct {
	// Service status
	// example: healthy
	Status string `json:"status"`

	// Status message
	// example: currency converter agent is running
	Message string `json:"message"`

	// Service version
	// example: 1.0.0
	Version string `json:"version"`
}
