package coach

import (
	"fmt"
	"strings"

	"github.com/siherrmann/adam/model"
)

// MaxInsights bounds how many insights a single message can produce.
const MaxInsights = 5

// messageTrigger fires at most once per message when any of its keywords
// appears in the text.
type messageTrigger struct {
	keywords    []string
	insightType model.InsightType
	priority    model.InsightPriority
	message     string
	suggestion  string
}

// topicPattern counts how many retrieved context items mention a topic.
type topicPattern struct {
	topic    string
	keywords []string
}

// Coach derives prioritized coaching insights from a message, its entities
// and the retrieved conversation context. All rule tables are ordered, so
// the same input always yields the same insights in the same order.
type Coach struct {
	triggers []messageTrigger
	topics   []topicPattern
}

// NewCoach creates a coach with the default Spanish/English rule set.
func NewCoach() *Coach {
	return &Coach{
		triggers: []messageTrigger{
			{
				keywords:    []string{"reunión", "meeting", "call"},
				insightType: model.InsightTypeFollowUp,
				priority:    model.PriorityMedium,
				message:     "He detectado una reunión en tu mensaje",
				suggestion:  "¿Quieres que te recuerde hacer seguimiento después?",
			},
			{
				keywords:    []string{"deadline", "fecha límite", "entrega"},
				insightType: model.InsightTypeReminder,
				priority:    model.PriorityHigh,
				message:     "Mencionas una fecha límite",
				suggestion:  "Considera un recordatorio unos días antes de la entrega",
			},
			{
				keywords:    []string{"cumpleaños", "birthday", "aniversario"},
				insightType: model.InsightTypeReminder,
				priority:    model.PriorityMedium,
				message:     "Se menciona un cumpleaños o aniversario",
				suggestion:  "Puedo recordártelo con antelación",
			},
		},
		topics: []topicPattern{
			{"trabajo", []string{"trabajo", "work", "proyecto", "project"}},
			{"personal", []string{"familia", "family", "amigos", "friends"}},
			{"salud", []string{"ejercicio", "exercise", "salud", "health"}},
			{"finanzas", []string{"dinero", "money", "presupuesto", "budget"}},
		},
	}
}

// Insights generates at most MaxInsights coaching insights for a message.
// Detector order is fixed: message triggers, entity reminders, topic
// patterns, proactive suggestions.
func (c *Coach) Insights(message string, entities []model.Entity, context []*model.Conversation) []model.Insight {
	var insights []model.Insight

	insights = append(insights, c.messageInsights(message)...)
	insights = append(insights, c.entityInsights(entities, context)...)
	insights = append(insights, c.patternInsights(message, context)...)
	insights = append(insights, c.proactiveInsights(entities, context)...)

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}

	return insights
}

func (c *Coach) messageInsights(message string) []model.Insight {
	lowered := strings.ToLower(message)

	var insights []model.Insight
	for _, trigger := range c.triggers {
		for _, keyword := range trigger.keywords {
			if strings.Contains(lowered, keyword) {
				insights = append(insights, model.Insight{
					Type:       trigger.insightType,
					Priority:   trigger.priority,
					Message:    trigger.message,
					Suggestion: trigger.suggestion,
				})
				break
			}
		}
	}

	return insights
}

func (c *Coach) entityInsights(entities []model.Entity, context []*model.Conversation) []model.Insight {
	var insights []model.Insight
	for _, entity := range entities {
		switch entity.Type {
		case model.EntityTypePerson:
			if mentionedBefore(entity.Name, context) {
				insights = append(insights, model.Insight{
					Type:       model.InsightTypeFollowUp,
					Priority:   model.PriorityMedium,
					Message:    fmt.Sprintf("Ya has hablado de %s antes", entity.Name),
					Suggestion: fmt.Sprintf("Puedes preguntarme qué recuerdo sobre %s", entity.Name),
					Entity:     entity.Name,
				})
			}
		case model.EntityTypeProject:
			insights = append(insights, model.Insight{
				Type:       model.InsightTypeFollowUp,
				Priority:   model.PriorityMedium,
				Message:    fmt.Sprintf("El proyecto %s aparece en tu mensaje", entity.Name),
				Suggestion: fmt.Sprintf("¿Quieres repasar el estado de %s?", entity.Name),
				Entity:     entity.Name,
			})
		}
	}

	return insights
}

func (c *Coach) patternInsights(message string, context []*model.Conversation) []model.Insight {
	var insights []model.Insight
	for _, topic := range c.topics {
		frequency := countTopic(topic.keywords, context)
		if frequency > 3 {
			insights = append(insights, model.Insight{
				Type:       model.InsightTypePattern,
				Priority:   model.PriorityLow,
				Message:    fmt.Sprintf("Hablas con frecuencia de %s", topic.topic),
				Suggestion: fmt.Sprintf("Puedo resumirte todo lo guardado sobre %s", topic.topic),
				Pattern:    topic.topic,
				Frequency:  frequency,
			})
		}
	}

	return insights
}

func (c *Coach) proactiveInsights(entities []model.Entity, context []*model.Conversation) []model.Insight {
	var insights []model.Insight

	if len(entities) > 3 {
		insights = append(insights, model.Insight{
			Type:       model.InsightTypeOrganization,
			Priority:   model.PriorityMedium,
			Message:    "Este mensaje contiene mucha información",
			Suggestion: "¿Quieres que la organice por categorías?",
		})
	}

	if len(context) > 0 {
		insights = append(insights, model.Insight{
			Type:       model.InsightTypeSearch,
			Priority:   model.PriorityLow,
			Message:    "Tengo contexto previo relacionado con este tema",
			Suggestion: "Pregúntame qué recuerdo sobre ello",
		})
	}

	for _, entity := range entities {
		if entity.Type == model.EntityTypeDate {
			insights = append(insights, model.Insight{
				Type:       model.InsightTypeReminder,
				Priority:   model.PriorityMedium,
				Message:    "Hay fechas en tu mensaje",
				Suggestion: "¿Creo un recordatorio para alguna de ellas?",
			})
			break
		}
	}

	return insights
}

// mentionedBefore checks the entity snapshots of the retrieved context for
// the given name.
func mentionedBefore(name string, context []*model.Conversation) bool {
	for _, conversation := range context {
		for _, entity := range conversation.Entities {
			if strings.EqualFold(entity.Name, name) {
				return true
			}
		}
	}
	return false
}

// countTopic counts context items mentioning any of the keywords. Each item
// contributes at most one, regardless of how often a keyword repeats.
func countTopic(keywords []string, context []*model.Conversation) int {
	count := 0
	for _, conversation := range context {
		if containsKeyword(keywords, conversation.UserMessage) {
			count++
		}
	}
	return count
}

func containsKeyword(keywords []string, text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
