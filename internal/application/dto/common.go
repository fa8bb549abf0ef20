package dto

// ErrorResponse is the uniform error body of the API. Code maps 1:1 to the
// engine's error taxonomy.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// DateLayout is the wire format for business dates.
const DateLayout = "2006-01-02"
