package assistant

import (
	"fmt"
	"time"
)

// Role tags a timeline entry.
type Role string

const (
	// RoleAssistant marks replies from the AI assistant.
	RoleAssistant Role = "ai"
	// RoleUser marks typed or transcribed user input.
	RoleUser Role = "user"
	// RoleSystem marks informational entries (section changes,
	// auto-fill confirmations, errors).
	RoleSystem Role = "system"
)

// Message is one entry in the conversation timeline. The timeline is
// append-only for the life of a session except for the reset on
// session start; render order is insertion order.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time

	// Audio holds the decoded reply speech so the entry can be
	// replayed later. Nil for entries without audio.
	Audio []byte
}

// messageID formats a unique, creation-ordered identifier.
func messageID(seq int) string {
	return fmt.Sprintf("msg-%06d", seq)
}
