package model

import (
	"time"

	"github.com/google/uuid"
)

// EntityType classifies an extracted span of text.
type EntityType string

const (
	EntityTypePerson  EntityType = "person"
	EntityTypeDate    EntityType = "date"
	EntityTypeProject EntityType = "project"
	EntityTypeCompany EntityType = "company"
	EntityTypeURL     EntityType = "url"
	EntityTypeEmail   EntityType = "email"
	EntityTypePhone   EntityType = "phone"
	EntityTypeUnknown EntityType = "unknown"
)

// Entity is a typed, located span inside one message text.
// It is the transient form produced by the recognizer; the persisted form
// is EntityRecord.
type Entity struct {
	Name       string     `json:"name"`
	Type       EntityType `json:"type"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Confidence float64    `json:"confidence"`
	Metadata   Metadata   `json:"metadata,omitempty"`
}

// EntityRecord is the persisted form of an entity. Identity is keyed by
// (name, type); mention_count is incremented on every re-occurrence and
// never reset.
type EntityRecord struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Type         EntityType `json:"type"`
	Metadata     Metadata   `json:"metadata,omitempty"`
	FirstSeen    time.Time  `json:"first_seen"`
	MentionCount int        `json:"mention_count"`
}

// EntityStats summarizes a recognizer run.
type EntityStats struct {
	Total         int                `json:"total"`
	ByType        map[EntityType]int `json:"by_type"`
	ConfidenceAvg float64            `json:"confidence_avg"`
}
