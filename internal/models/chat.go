package models

// ChatRequest represents the JSON body for a chat completion call
// swagger:model ChatRequest
type ChatRequest struct {
	// User message with one or more conversion asks
	// required: true
	// example: 100 USD to EUR and 200 GBP to JPY
	Message string `json:"message"`

	// Session identifier; a new session is created when omitted
	// example: 6f1c2b34-9d1e-4a7b-8c55-0f3d2f8a9b10
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse represents a successful chat completion response
// swagger:model ChatResponse
type ChatResponse struct {
	// Formatted reply text
	Response string `json:"response"`

	// Session identifier, possibly newly generated
	SessionID string `json:"session_id"`
}

// ChatErrorResponse represents an error response for the chat endpoint
// swagger:model ChatErrorResponse
type ChatErrorResponse struct {
	// Error message
	// example: message cannot be empty
	Error string `json:"error"`
}
