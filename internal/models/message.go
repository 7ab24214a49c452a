package models

import "time"

// Roles of conversation messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single turn stored in a conversation history
// swagger:model Message
type Message struct {
	// Author role
	// example: user
	Role string `json:"role"`

	// Message text
	// example: 100 USD to EUR
	Text string `json:"text"`

	// Time the message was appended
	Timestamp time.Time `json:"timestamp"`
}
