package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/adam/helper"
)

// Conversation is one processed message with its response and the
// denormalized entity snapshot taken at write time. Conversations are
// immutable once written.
type Conversation struct {
	ID           uuid.UUID  `json:"id"`
	SessionID    string     `json:"session_id"`
	Timestamp    time.Time  `json:"timestamp"`
	UserMessage  string     `json:"user_message"`
	AdamResponse string     `json:"adam_response"`
	Entities     EntityList `json:"entities"`
	ExternalRef  *string    `json:"external_ref,omitempty"`
}

// EntityList is the entity snapshot stored as JSONB on a conversation row.
type EntityList []Entity

// Value implements the driver.Valuer interface for database storage
func (l EntityList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(EntityList{})
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *EntityList) Scan(value interface{}) error {
	if value == nil {
		*l = EntityList{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
	}

	return json.Unmarshal(b, l)
}
