package models

// ConversationResponse represents a conversation history response
// swagger:model ConversationResponse
type ConversationResponse struct {
	// Session identifier
	SessionID string `json:"session_id"`

	// Ordered message history, oldest first
	Messages []Message `json:"messages"`

	// Total number of messages
	TotalMessages int `json:"total_messages"`
}

// ClearResponse represents a successful conversation clear response
// swagger:model ClearResponse
type ClearResponse struct {
	// Confirmation message
	// example: conversation cleared
	Message string `json:"message"`
}

// ConversationErrorResponse represents an error response for conversation endpoints
// swagger:model ConversationErrorResponse
type ConversationErrorResponse struct {
	// Error message
	// example: session id is required
	Error string `json:"error"`
}
