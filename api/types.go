package api

// dataResponse wraps a single payload.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// listResponse wraps a collection along with its length.
type listResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Data    any  `json:"data"`
}

// ErrorResponse represents an error response from the API
// @Description Error envelope returned by every failing route
type ErrorResponse struct {
	Success    bool   `json:"success" example:"false"`
	Error      string `json:"error" example:"Not found"`
	Message    string `json:"message" example:"The requested endpoint does not exist"`
	RetryAfter int    `json:"retryAfter,omitempty" example:"42"`
}

// HealthResponse reports process and database state.
type HealthResponse struct {
	Status    string            `json:"status" example:"ok"`
	Timestamp string            `json:"timestamp"`
	Error     string            `json:"error,omitempty"`
	Services  map[string]string `json:"services"`
}
