package types

// Status constants for API responses
const (
	StatusOK        = "ok"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// ErrorResponse is the single error envelope shared by every endpoint
type ErrorResponse struct {
	Error string `json:"error" example:"ERROR: [youtube] abc123: Video unavailable"`
}

// BinaryStatus reports one external executable
type BinaryStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string                  `json:"status"`
	Timestamp string                  `json:"timestamp"`
	Binaries  map[string]BinaryStatus `json:"binaries"`
}

// VersionResponse for the version endpoint
type VersionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	VersionInfo
}
