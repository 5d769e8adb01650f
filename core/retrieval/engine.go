package retrieval

import (
	"fmt"
	"strings"

	"github.com/siherrmann/adam/database"
	"github.com/siherrmann/adam/helper"
	"github.com/siherrmann/adam/model"
)

// Engine retrieves conversation context relevant to a new message. It works
// on the entity snapshots stored with each conversation, with a keyword
// fallback when no entity matches.
type Engine struct {
	conversations *database.ConversationsDBHandler
	entities      *database.EntitiesDBHandler
	config        *model.Config
}

// NewEngine creates a retrieval engine. A nil config falls back to the
// default configuration.
func NewEngine(conversations *database.ConversationsDBHandler, entities *database.EntitiesDBHandler, config *model.Config) *Engine {
	if config == nil {
		config = model.DefaultConfig()
	}
	return &Engine{
		conversations: conversations,
		entities:      entities,
		config:        config,
	}
}

// RelevantContext returns prior conversations relevant to the given query
// entities, newest first per entity. A conversation matching several query
// entities appears once per match unless DedupContext is set. When no
// entity matches, the keyword fallback scans recent conversations for
// longer words of the message.
func (e *Engine) RelevantContext(queryEntities []model.Entity, message string) ([]*model.Conversation, error) {
	recent, err := e.conversations.SelectConversationHistory("", e.config.EntityScanLimit)
	if err != nil {
		return nil, helper.NewError("select conversation history", err)
	}

	var relevant []*model.Conversation
	for _, queryEntity := range queryEntities {
		for _, conversation := range recent {
			if snapshotContains(conversation.Entities, queryEntity.Name) {
				relevant = append(relevant, conversation)
			}
		}
	}

	if len(relevant) == 0 {
		relevant, err = e.keywordFallback(message)
		if err != nil {
			return nil, err
		}
	}

	if e.config.DedupContext {
		relevant = dedupConversations(relevant)
	}

	if len(relevant) > e.config.ContextWindow {
		relevant = relevant[:e.config.ContextWindow]
	}

	return relevant, nil
}

// keywordFallback matches words longer than three characters against
// recent user messages.
func (e *Engine) keywordFallback(message string) ([]*model.Conversation, error) {
	words := longWords(message)
	if len(words) == 0 {
		return nil, nil
	}

	recent, err := e.conversations.SelectConversationHistory("", e.config.KeywordScanLimit)
	if err != nil {
		return nil, helper.NewError("select conversation history", err)
	}

	var relevant []*model.Conversation
	for _, conversation := range recent {
		lowered := strings.ToLower(conversation.UserMessage)
		for _, word := range words {
			if strings.Contains(lowered, word) {
				relevant = append(relevant, conversation)
				break
			}
		}
	}

	return relevant, nil
}

// SearchMemory scans recent conversations for a query string in either the
// user message or the stored response.
func (e *Engine) SearchMemory(query string, limit int) ([]*model.Conversation, error) {
	if limit <= 0 {
		limit = e.config.ContextWindow
	}

	recent, err := e.conversations.SelectConversationHistory("", e.config.EntityScanLimit)
	if err != nil {
		return nil, helper.NewError("select conversation history", err)
	}

	lowered := strings.ToLower(query)
	var matches []*model.Conversation
	for _, conversation := range recent {
		if strings.Contains(strings.ToLower(conversation.UserMessage), lowered) ||
			strings.Contains(strings.ToLower(conversation.AdamResponse), lowered) {
			matches = append(matches, conversation)
			if len(matches) >= limit {
				break
			}
		}
	}

	return matches, nil
}

// MemorySummary builds a digest of recent memory: how many conversations
// were scanned and which entities are mentioned most. An empty session id
// summarizes across all sessions; days only labels the summary text and
// defaults to 7.
func (e *Engine) MemorySummary(sessionID string, days int) (*model.MemorySummary, error) {
	if days <= 0 {
		days = 7
	}

	recent, err := e.conversations.SelectConversationHistory(sessionID, e.config.EntityScanLimit)
	if err != nil {
		return nil, helper.NewError("select conversation history", err)
	}

	topEntities, err := e.entities.SelectEntities(nil, 5)
	if err != nil {
		return nil, helper.NewError("select entities", err)
	}

	return &model.MemorySummary{
		RecentConversations: len(recent),
		TopEntities:         topEntities,
		Summary:             fmt.Sprintf("En los últimos %d días he registrado %d conversaciones y %d entidades destacadas", days, len(recent), len(topEntities)),
	}, nil
}

func snapshotContains(entities model.EntityList, name string) bool {
	for _, entity := range entities {
		if strings.EqualFold(entity.Name, name) {
			return true
		}
	}
	return false
}

func dedupConversations(conversations []*model.Conversation) []*model.Conversation {
	seen := map[string]bool{}
	deduped := make([]*model.Conversation, 0, len(conversations))
	for _, conversation := range conversations {
		key := conversation.ID.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, conversation)
	}
	return deduped
}

func longWords(message string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(message)) {
		trimmed := strings.Trim(word, ".,;:!?¿¡()\"'")
		if len([]rune(trimmed)) > 3 {
			words = append(words, trimmed)
		}
	}
	return words
}
