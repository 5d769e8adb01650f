package adam

import (
	"fmt"
	"strings"

	"github.com/siherrmann/adam/model"
)

var (
	greetingMarkers = []string{"hola", "hello", "buenos días", "buenas tardes", "buenas noches"}
	memoryMarkers   = []string{"recuerdas", "qué sabes", "que sabes", "qué recuerdas", "que recuerdas", "what do you know", "remember"}
	storageMarkers  = []string{"recuerda que", "guarda", "anota", "apunta", "save this"}
)

// respond builds the assistant reply from fixed templates. The reply is a
// deterministic function of the message, the recognized entities, the
// category and the retrieved context.
func respond(message string, entities []model.Entity, category string, context []*model.Conversation) string {
	lowered := strings.ToLower(message)

	if matchesAny(lowered, greetingMarkers) {
		return "¡Hola! Soy Adam, tu asistente de memoria personal. Cuéntame algo y lo recordaré."
	}

	if matchesAny(lowered, memoryMarkers) {
		if len(context) == 0 {
			return "Todavía no tengo recuerdos sobre eso. Cuéntame más y lo guardaré."
		}
		return fmt.Sprintf("Esto es lo que recuerdo:\n%s", buildContextSummary(context))
	}

	if matchesAny(lowered, storageMarkers) {
		if len(entities) > 0 {
			return fmt.Sprintf("Guardado en %s. He registrado %s.", category, joinEntityNames(entities))
		}
		return fmt.Sprintf("Guardado en %s. Lo tendré presente.", category)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Anotado en %s.", category))
	if len(entities) > 0 {
		sb.WriteString(fmt.Sprintf(" He registrado %s.", joinEntityNames(entities)))
	}
	if len(context) > 0 {
		sb.WriteString(fmt.Sprintf("\nRelacionado con lo que ya sé:\n%s", buildContextSummary(context)))
	}
	return sb.String()
}

// buildContextSummary lists up to three prior messages, most recent first.
func buildContextSummary(context []*model.Conversation) string {
	seen := map[string]bool{}
	var lines []string
	for _, conversation := range context {
		if seen[conversation.UserMessage] {
			continue
		}
		seen[conversation.UserMessage] = true
		lines = append(lines, "• "+conversation.UserMessage)
		if len(lines) == 3 {
			break
		}
	}
	return strings.Join(lines, "\n")
}

// joinEntityNames lists up to five unique entity names in recognition order.
func joinEntityNames(entities []model.Entity) string {
	seen := map[string]bool{}
	var names []string
	for _, entity := range entities {
		key := strings.ToLower(entity.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, entity.Name)
		if len(names) == 5 {
			break
		}
	}
	return strings.Join(names, ", ")
}

func matchesAny(lowered string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
