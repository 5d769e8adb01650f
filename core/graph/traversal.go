package graph

import (
	"github.com/google/uuid"
	"github.com/siherrmann/adam/model"
)

// EntityStore resolves entity records by ID.
type EntityStore interface {
	SelectEntity(id uuid.UUID) (*model.EntityRecord, error)
}

// RelationshipStore lists relationships touching an entity in either direction.
type RelationshipStore interface {
	SelectRelationships(entityID uuid.UUID, limit int) ([]*model.Relationship, error)
}

// relationshipFetchLimit bounds how many relationships are followed per node.
const relationshipFetchLimit = 100

// TraversalResult contains an entity and its distance from the source
type TraversalResult struct {
	Entity   *model.EntityRecord
	Distance int
	// Path from source to this entity
	Path []uuid.UUID
}

// BFS performs breadth-first search over the entity relationship graph
// from a source entity.
func BFS(entities EntityStore, relationships RelationshipStore, sourceID uuid.UUID, maxHops int) ([]*TraversalResult, error) {
	sourceEntity, err := entities.SelectEntity(sourceID)
	if err != nil {
		return nil, err
	}

	visited := map[uuid.UUID]bool{sourceID: true}
	queue := []TraversalResult{{
		Entity:   sourceEntity,
		Distance: 0,
		Path:     []uuid.UUID{sourceID},
	}}

	var results []*TraversalResult
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		results = append(results, &current)

		if current.Distance >= maxHops {
			continue
		}

		edges, err := relationships.SelectRelationships(current.Entity.ID, relationshipFetchLimit)
		if err != nil {
			return nil, err
		}

		for _, edge := range edges {
			// Relationships are stored in both directions, follow the
			// endpoint that is not the current entity.
			targetID := edge.Entity2ID
			if targetID == current.Entity.ID {
				targetID = edge.Entity1ID
			}

			if visited[targetID] {
				continue
			}

			targetEntity, err := entities.SelectEntity(targetID)
			if err != nil {
				// Skip if entity not found
				continue
			}

			visited[targetID] = true

			newPath := make([]uuid.UUID, len(current.Path))
			copy(newPath, current.Path)
			newPath = append(newPath, targetID)

			queue = append(queue, TraversalResult{
				Entity:   targetEntity,
				Distance: current.Distance + 1,
				Path:     newPath,
			})
		}
	}

	return results, nil
}

// Neighbors retrieves the immediate (1-hop) neighbors of an entity.
func Neighbors(entities EntityStore, relationships RelationshipStore, entityID uuid.UUID) ([]*model.EntityRecord, error) {
	results, err := BFS(entities, relationships, entityID, 1)
	if err != nil {
		return nil, err
	}

	// Skip the source entity itself (first result)
	neighbors := make([]*model.EntityRecord, 0, len(results)-1)
	for i := 1; i < len(results); i++ {
		neighbors = append(neighbors, results[i].Entity)
	}

	return neighbors, nil
}
