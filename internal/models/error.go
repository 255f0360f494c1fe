package models

// ErrorResponse is the JSON body of every failed HTTP request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}
