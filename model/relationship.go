package model

import "github.com/google/uuid"

// RelationshipType describes why two entities are linked.
type RelationshipType string

// RelationshipTypeMentionedTogether links two entities that co-occurred in
// the same message.
const RelationshipTypeMentionedTogether RelationshipType = "mentioned_together"

// Relationship is a stored-directed pair of entities. Re-saving the same
// (entity1, entity2, type) triple replaces the prior context snippet.
type Relationship struct {
	Entity1ID uuid.UUID        `json:"entity1_id"`
	Entity2ID uuid.UUID        `json:"entity2_id"`
	Type      RelationshipType `json:"relationship_type"`
	Context   string           `json:"context,omitempty"`
	// Joined names, filled on selects only.
	Entity1Name string `json:"entity1_name,omitempty"`
	Entity2Name string `json:"entity2_name,omitempty"`
}
