package adam

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/siherrmann/adam/core/coach"
	"github.com/siherrmann/adam/core/graph"
	"github.com/siherrmann/adam/core/pipeline"
	"github.com/siherrmann/adam/core/retrieval"
	"github.com/siherrmann/adam/database"
	"github.com/siherrmann/adam/helper"
	"github.com/siherrmann/adam/model"
	loadSql "github.com/siherrmann/adam/sql"
	"github.com/siherrmann/adam/storage"
)

// relationshipContextLimit bounds the message snippet stored with a relationship.
const relationshipContextLimit = 200

// Adam provides a unified interface to the memory assistant: entity
// recognition, categorization, context retrieval, coaching insights and
// the persistent conversation store.
type Adam struct {
	DB            *helper.Database
	Conversations *database.ConversationsDBHandler
	Entities      *database.EntitiesDBHandler
	Relationships *database.RelationshipsDBHandler
	Files         *database.FilesDBHandler
	Recognizer    *pipeline.Recognizer
	Categorizer   *pipeline.Categorizer
	Coach         *coach.Coach
	Engine        *retrieval.Engine
	Library       *storage.LocalStorage
	config        *model.Config
	// Logging
	log *slog.Logger
}

// NewAdam creates a new Adam instance with all handlers initialized.
// A nil config falls back to the default configuration.
func NewAdam(dbConfig *helper.DatabaseConfiguration, config *model.Config) (*Adam, error) {
	if config == nil {
		config = model.DefaultConfig()
	}

	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("adam", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// Create all handlers in the correct order (entities first, then
	// relationships referencing them). force=false to not reload if
	// functions already exist.
	entities, err := database.NewEntitiesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create entities handler", err)
	}

	relationships, err := database.NewRelationshipsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create relationships handler", err)
	}

	conversations, err := database.NewConversationsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create conversations handler", err)
	}

	files, err := database.NewFilesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create files handler", err)
	}

	library, err := storage.NewLocalStorage(config.DataDir, files)
	if err != nil {
		return nil, helper.NewError("create file library", err)
	}

	engine := retrieval.NewEngine(conversations, entities, config)

	return &Adam{
		DB:            db,
		Conversations: conversations,
		Entities:      entities,
		Relationships: relationships,
		Files:         files,
		Recognizer:    pipeline.NewRecognizer(),
		Categorizer:   pipeline.NewCategorizer(model.DefaultTaxonomy()),
		Coach:         coach.NewCoach(),
		Engine:        engine,
		Library:       library,
		config:        config,
		log:           logger,
	}, nil
}

// Close closes the database connection
func (a *Adam) Close() error {
	if a.DB != nil && a.DB.Instance != nil {
		return a.DB.Instance.Close()
	}
	return nil
}

// ProcessMessage runs the full pipeline on a user message: recognize
// entities, categorize, retrieve relevant context, respond, persist the
// conversation with its entity snapshot, update the entity graph and
// derive coaching insights. An empty sessionID starts a fresh session.
func (a *Adam) ProcessMessage(userMessage string, sessionID string) (*model.ProcessResult, error) {
	if len(strings.TrimSpace(userMessage)) == 0 {
		return nil, helper.NewError("message validation", helper.ErrValidation)
	}
	if len(sessionID) == 0 {
		sessionID = uuid.New().String()
	}

	entities := a.Recognizer.Recognize(userMessage)
	category := a.Categorizer.Categorize(userMessage, entities)

	contextUsed, err := a.Engine.RelevantContext(entities, userMessage)
	if err != nil {
		return nil, helper.NewError("retrieve context", err)
	}

	response := respond(userMessage, entities, category, contextUsed)

	conversation, err := a.Conversations.InsertConversation(sessionID, userMessage, response, entities, nil)
	if err != nil {
		return nil, helper.NewError("insert conversation", err)
	}

	err = a.updateEntityGraph(entities, userMessage)
	if err != nil {
		return nil, helper.NewError("update entity graph", err)
	}

	insights := a.Coach.Insights(userMessage, entities, contextUsed)

	a.log.Info("Processed message",
		slog.String("session_id", sessionID),
		slog.String("category", category),
		slog.Int("num_entities", len(entities)),
		slog.Int("num_insights", len(insights)),
	)

	return &model.ProcessResult{
		Response:       response,
		SessionID:      sessionID,
		ConversationID: conversation.ID,
		Entities:       entities,
		Category:       category,
		ContextUsed:    contextUsed,
		Insights:       insights,
		Timestamp:      conversation.Timestamp,
	}, nil
}

// updateEntityGraph upserts all recognized entities and links every pair
// as mentioned together, in both directions, with a snippet of the message
// as context. An entity appearing several times in one message is counted
// once.
func (a *Adam) updateEntityGraph(entities []model.Entity, message string) error {
	type entityKey struct {
		name       string
		entityType model.EntityType
	}

	seen := map[entityKey]bool{}
	var ids []uuid.UUID
	for _, entity := range entities {
		if len(entity.Name) == 0 {
			continue
		}
		key := entityKey{strings.ToLower(entity.Name), entity.Type}
		if seen[key] {
			continue
		}
		seen[key] = true

		record, err := a.Entities.UpsertEntity(entity.Name, entity.Type, entity.Metadata)
		if err != nil {
			return helper.NewError(fmt.Sprintf("upsert entity %s", entity.Name), err)
		}
		ids = append(ids, record.ID)
	}

	context := message
	if runes := []rune(context); len(runes) > relationshipContextLimit {
		context = string(runes[:relationshipContextLimit])
	}

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			_, err := a.Relationships.UpsertRelationship(ids[i], ids[j], model.RelationshipTypeMentionedTogether, context)
			if err != nil {
				return helper.NewError("upsert relationship", err)
			}
			_, err = a.Relationships.UpsertRelationship(ids[j], ids[i], model.RelationshipTypeMentionedTogether, context)
			if err != nil {
				return helper.NewError("upsert relationship", err)
			}
		}
	}

	return nil
}

// SearchMemory scans stored conversations for a query string.
func (a *Adam) SearchMemory(query string, limit int) ([]*model.Conversation, error) {
	return a.Engine.SearchMemory(query, limit)
}

// GetMemorySummary returns a digest of recent memory. An empty session id
// summarizes across all sessions.
func (a *Adam) GetMemorySummary(sessionID string, days int) (*model.MemorySummary, error) {
	return a.Engine.MemorySummary(sessionID, days)
}

// RelatedEntities traverses the entity relationship graph breadth-first
// from the given entity, up to maxHops away. The first result is the
// entity itself at distance zero.
func (a *Adam) RelatedEntities(entityID uuid.UUID, maxHops int) ([]*graph.TraversalResult, error) {
	return graph.BFS(a.Entities, a.Relationships, entityID, maxHops)
}

// StoreFile categorizes a file by its name and stores it in the local
// library together with a files table record.
func (a *Adam) StoreFile(data []byte, originalName string, metadata model.Metadata) (*model.FileRecord, error) {
	category := a.Categorizer.Categorize(originalName, nil)
	return a.Library.Store(data, originalName, category, metadata)
}
