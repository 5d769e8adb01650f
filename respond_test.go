package adam

import (
	"testing"

	"github.com/siherrmann/adam/model"
	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	t.Run("Greeting", func(t *testing.T) {
		response := respond("hola, ¿qué tal todo?", nil, "general", nil)
		assert.Contains(t, response, "Soy Adam")
	})

	t.Run("Memory question without context", func(t *testing.T) {
		response := respond("¿qué sabes de Pedro?", nil, "general", nil)
		assert.Contains(t, response, "Todavía no tengo recuerdos")
	})

	t.Run("Memory question with context lists prior messages", func(t *testing.T) {
		context := []*model.Conversation{
			{UserMessage: "Pedro empieza el lunes"},
			{UserMessage: "Pedro trabaja en Atlas"},
		}
		response := respond("¿qué sabes de Pedro?", nil, "general", context)
		assert.Contains(t, response, "• Pedro empieza el lunes")
		assert.Contains(t, response, "• Pedro trabaja en Atlas")
	})

	t.Run("Context summary caps at three unique messages", func(t *testing.T) {
		context := []*model.Conversation{
			{UserMessage: "uno"},
			{UserMessage: "uno"},
			{UserMessage: "dos"},
			{UserMessage: "tres"},
			{UserMessage: "cuatro"},
		}
		summary := buildContextSummary(context)
		assert.Equal(t, "• uno\n• dos\n• tres", summary)
	})

	t.Run("Storage confirmation names the category and entities", func(t *testing.T) {
		entities := []model.Entity{{Name: "Ana", Type: model.EntityTypePerson}}
		response := respond("recuerda que Ana llega mañana", entities, "personal", nil)
		assert.Contains(t, response, "Guardado en personal")
		assert.Contains(t, response, "Ana")
	})

	t.Run("General message is acknowledged with its category", func(t *testing.T) {
		entities := []model.Entity{
			{Name: "FinOps", Type: model.EntityTypeProject},
			{Name: "finops", Type: model.EntityTypeProject},
		}
		response := respond("el proyecto FinOps avanza bien", entities, "work", nil)
		assert.Contains(t, response, "Anotado en work")
		assert.Contains(t, response, "FinOps")
		assert.NotContains(t, response, "FinOps, finops", "Expected duplicate names to collapse")
	})
}
