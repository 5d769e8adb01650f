package pipeline

import (
	"testing"

	"github.com/siherrmann/adam/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findEntity(entities []model.Entity, name string, entityType model.EntityType) *model.Entity {
	for i := range entities {
		if entities[i].Name == name && entities[i].Type == entityType {
			return &entities[i]
		}
	}
	return nil
}

func TestRecognizerMeetingMessage(t *testing.T) {
	recognizer := NewRecognizer()

	text := "Reunión con María sobre el proyecto FinOps el 15/03/2024"
	entities := recognizer.Recognize(text)

	t.Run("Recognizes known person with gazetteer confidence", func(t *testing.T) {
		maria := findEntity(entities, "María", model.EntityTypePerson)
		require.NotNil(t, maria, "Expected María to be recognized as a person")
		assert.Equal(t, 0.9, maria.Confidence)
	})

	t.Run("Recognizes project exactly once", func(t *testing.T) {
		count := 0
		for _, entity := range entities {
			if entity.Type == model.EntityTypeProject {
				count++
			}
		}
		assert.Equal(t, 1, count, "Expected camel case, gazetteer and phrase matches of FinOps to collapse into one")

		finops := findEntity(entities, "FinOps", model.EntityTypeProject)
		require.NotNil(t, finops)
		assert.Equal(t, 0.8, finops.Confidence)
		assert.Equal(t, "development", finops.Metadata["context"])
	})

	t.Run("Recognizes dates", func(t *testing.T) {
		assert.NotNil(t, findEntity(entities, "15/03/2024", model.EntityTypeDate))
		assert.NotNil(t, findEntity(entities, "2024", model.EntityTypeDate))
	})

	t.Run("Entities ordered by start offset", func(t *testing.T) {
		for i := 1; i < len(entities); i++ {
			assert.LessOrEqual(t, entities[i-1].Start, entities[i].Start)
		}
	})

	t.Run("Recognition is deterministic", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			assert.Equal(t, entities, recognizer.Recognize(text))
		}
	})
}

func TestRecognizerPhrases(t *testing.T) {
	recognizer := NewRecognizer()

	t.Run("Birthday phrase tags the person", func(t *testing.T) {
		entities := recognizer.Recognize("El cumpleaños de Ana es el 15 de marzo")

		ana := findEntity(entities, "Ana", model.EntityTypePerson)
		require.NotNil(t, ana)
		assert.Equal(t, 0.9, ana.Confidence)
		assert.Equal(t, "birthday", ana.Metadata["context"])

		assert.NotNil(t, findEntity(entities, "15 de marzo", model.EntityTypeDate))
	})

	t.Run("Deadline phrase tags the date", func(t *testing.T) {
		entities := recognizer.Recognize("La fecha límite marzo 20 se acerca")

		deadline := findEntity(entities, "marzo 20", model.EntityTypeDate)
		require.NotNil(t, deadline)
		assert.Equal(t, 0.8, deadline.Confidence)
		assert.Equal(t, "deadline", deadline.Metadata["context"])
	})

	t.Run("Development phrase tags the project", func(t *testing.T) {
		entities := recognizer.Recognize("Estoy trabajando en Atlas esta semana")

		atlas := findEntity(entities, "Atlas", model.EntityTypeProject)
		require.NotNil(t, atlas)
		assert.Equal(t, "development", atlas.Metadata["context"])
	})
}

func TestRecognizerContactEntities(t *testing.T) {
	recognizer := NewRecognizer()

	t.Run("Recognizes email and url", func(t *testing.T) {
		entities := recognizer.Recognize("escríbeme a ana@example.com o revisa https://example.com/docs")

		assert.NotNil(t, findEntity(entities, "ana@example.com", model.EntityTypeEmail))
		assert.NotNil(t, findEntity(entities, "https://example.com/docs", model.EntityTypeURL))
	})

	t.Run("Recognizes phone number", func(t *testing.T) {
		entities := recognizer.Recognize("llámame al +34 612 345 678 por favor")

		found := false
		for _, entity := range entities {
			if entity.Type == model.EntityTypePhone {
				found = true
				assert.Contains(t, entity.Name, "612")
			}
		}
		assert.True(t, found, "Expected a phone entity")
	})
}

func TestRecognizerGazetteerBoundaries(t *testing.T) {
	recognizer := NewRecognizer()

	t.Run("Lowercase known name is found", func(t *testing.T) {
		entities := recognizer.Recognize("ayer hablé con maría un rato")

		maria := findEntity(entities, "maría", model.EntityTypePerson)
		require.NotNil(t, maria)
		assert.Equal(t, 0.9, maria.Confidence)

		assert.NotNil(t, findEntity(entities, "ayer", model.EntityTypeDate))
	})

	t.Run("Keyword embedded in a longer word is not found", func(t *testing.T) {
		entities := recognizer.Recognize("las marías del coro")
		assert.Nil(t, findEntity(entities, "marías", model.EntityTypePerson))
	})

	t.Run("Empty text yields no entities", func(t *testing.T) {
		assert.Empty(t, recognizer.Recognize(""))
	})
}

func TestRecognizerStats(t *testing.T) {
	recognizer := NewRecognizer()

	t.Run("Stats of empty result", func(t *testing.T) {
		stats := recognizer.Stats(nil)
		assert.Equal(t, 0, stats.Total)
		assert.Equal(t, 0.0, stats.ConfidenceAvg)
	})

	t.Run("Stats counts by type and averages confidence", func(t *testing.T) {
		entities := []model.Entity{
			{Name: "María", Type: model.EntityTypePerson, Confidence: 0.9},
			{Name: "FinOps", Type: model.EntityTypeProject, Confidence: 0.8},
			{Name: "Ana", Type: model.EntityTypePerson, Confidence: 0.7},
		}

		stats := recognizer.Stats(entities)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 2, stats.ByType[model.EntityTypePerson])
		assert.Equal(t, 1, stats.ByType[model.EntityTypeProject])
		assert.InDelta(t, 0.8, stats.ConfidenceAvg, 0.0001)
	})
}
