package adam

import (
	"testing"

	"github.com/siherrmann/adam/helper"
	"github.com/siherrmann/adam/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdamProcessMessage(t *testing.T) {
	a := initAdam(t)
	defer a.Close()

	t.Run("Empty message fails validation", func(t *testing.T) {
		_, err := a.ProcessMessage("   ", "s1")
		assert.ErrorIs(t, err, helper.ErrValidation)
	})

	t.Run("Meeting message runs the full pipeline", func(t *testing.T) {
		result, err := a.ProcessMessage("Reunión con María sobre el proyecto FinOps el 15/03/2024", "s1")
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "s1", result.SessionID)
		assert.NotEmpty(t, result.ConversationID)
		assert.Equal(t, "work", result.Category)
		assert.NotEmpty(t, result.Response)

		var foundMaria, foundFinops bool
		for _, entity := range result.Entities {
			if entity.Name == "María" && entity.Type == model.EntityTypePerson {
				foundMaria = true
			}
			if entity.Name == "FinOps" && entity.Type == model.EntityTypeProject {
				foundFinops = true
			}
		}
		assert.True(t, foundMaria, "Expected María to be recognized")
		assert.True(t, foundFinops, "Expected FinOps to be recognized")

		assert.NotEmpty(t, result.Insights)
		assert.LessOrEqual(t, len(result.Insights), 5)
	})

	t.Run("Entities are persisted with mention counts", func(t *testing.T) {
		maria, err := a.Entities.SelectEntityByName("María", model.EntityTypePerson)
		require.NoError(t, err)
		assert.Equal(t, 1, maria.MentionCount)

		finops, err := a.Entities.SelectEntityByName("FinOps", model.EntityTypeProject)
		require.NoError(t, err)
		assert.Equal(t, 1, finops.MentionCount)
	})

	t.Run("Memory question retrieves prior context", func(t *testing.T) {
		result, err := a.ProcessMessage("¿Qué sabes de María?", "s1")
		require.NoError(t, err)

		require.NotEmpty(t, result.ContextUsed, "Expected prior conversation as context")
		assert.Equal(t, "Reunión con María sobre el proyecto FinOps el 15/03/2024", result.ContextUsed[0].UserMessage)
		assert.Contains(t, result.Response, "recuerdo")
	})

	t.Run("Repeated mention increments the count", func(t *testing.T) {
		maria, err := a.Entities.SelectEntityByName("María", model.EntityTypePerson)
		require.NoError(t, err)
		assert.Equal(t, 2, maria.MentionCount)
	})

	t.Run("Co-mentioned entities are linked in both directions", func(t *testing.T) {
		maria, err := a.Entities.SelectEntityByName("María", model.EntityTypePerson)
		require.NoError(t, err)

		relationships, err := a.Relationships.SelectRelationships(maria.ID, 50)
		require.NoError(t, err)

		var forward, backward bool
		for _, relationship := range relationships {
			if relationship.Entity1Name == "María" && relationship.Entity2Name == "FinOps" {
				forward = true
			}
			if relationship.Entity1Name == "FinOps" && relationship.Entity2Name == "María" {
				backward = true
			}
		}
		assert.True(t, forward, "Expected María -> FinOps")
		assert.True(t, backward, "Expected FinOps -> María")
	})

	t.Run("Related entities are reachable through the graph", func(t *testing.T) {
		maria, err := a.Entities.SelectEntityByName("María", model.EntityTypePerson)
		require.NoError(t, err)

		results, err := a.RelatedEntities(maria.ID, 1)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "María", results[0].Entity.Name)

		var foundFinops bool
		for _, result := range results[1:] {
			assert.Equal(t, 1, result.Distance)
			if result.Entity.Name == "FinOps" {
				foundFinops = true
			}
		}
		assert.True(t, foundFinops, "Expected FinOps among María's neighbors")
	})

	t.Run("Empty session id starts a fresh session", func(t *testing.T) {
		result, err := a.ProcessMessage("recuerda que el gimnasio abre a las 7", "")
		require.NoError(t, err)
		assert.NotEmpty(t, result.SessionID)
	})
}

func TestAdamSearchAndSummary(t *testing.T) {
	a := initAdam(t)
	defer a.Close()

	_, err := a.ProcessMessage("Reunión con María sobre el proyecto FinOps el 15/03/2024", "s2")
	require.NoError(t, err)

	t.Run("Search memory finds stored conversations", func(t *testing.T) {
		matches, err := a.SearchMemory("finops", 10)
		require.NoError(t, err)
		require.NotEmpty(t, matches)
		assert.Contains(t, matches[0].UserMessage, "FinOps")
	})

	t.Run("Memory summary reports conversations and top entities", func(t *testing.T) {
		summary, err := a.GetMemorySummary("", 7)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.GreaterOrEqual(t, summary.RecentConversations, 1)
		assert.NotEmpty(t, summary.TopEntities)
		assert.NotEmpty(t, summary.Summary)
	})
}

func TestAdamStoreFile(t *testing.T) {
	a := initAdam(t)
	defer a.Close()

	record, err := a.StoreFile([]byte("agenda de la reunión"), "notas de reunión.txt", model.Metadata{"source": "test"})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "work", record.Category)
	assert.NotEmpty(t, record.FileHash)

	data, err := a.Library.Read(record)
	require.NoError(t, err)
	assert.Equal(t, []byte("agenda de la reunión"), data)
}
