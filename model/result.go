package model

import (
	"time"

	"github.com/google/uuid"
)

// ProcessResult is the externally visible outcome of one processed message.
type ProcessResult struct {
	Response       string          `json:"response"`
	SessionID      string          `json:"session_id"`
	ConversationID uuid.UUID       `json:"conversation_id"`
	Entities       []Entity        `json:"entities"`
	Category       string          `json:"category"`
	ContextUsed    []*Conversation `json:"context_used"`
	Insights       []Insight       `json:"insights"`
	Timestamp      time.Time       `json:"timestamp"`
}

// MemorySummary is a read-side digest of recent memory.
type MemorySummary struct {
	RecentConversations int             `json:"recent_conversations"`
	TopEntities         []*EntityRecord `json:"top_entities"`
	Summary             string          `json:"summary"`
}
