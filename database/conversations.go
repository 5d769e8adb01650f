package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/adam/helper"
	"github.com/siherrmann/adam/model"
	adamsql "github.com/siherrmann/adam/sql"
)

// ConversationsDBHandlerFunctions defines the interface for Conversations database operations.
type ConversationsDBHandlerFunctions interface {
	InsertConversation(sessionID string, userMessage string, adamResponse string, entities model.EntityList, externalRef *string) (*model.Conversation, error)
	SelectConversationHistory(sessionID string, limit int) ([]*model.Conversation, error)
}

// ConversationsDBHandler handles conversation-related database operations
type ConversationsDBHandler struct {
	db *helper.Database
}

// NewConversationsDBHandler creates a new conversations database handler.
// It initializes the database connection and loads conversation-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewConversationsDBHandler(db *helper.Database, force bool) (*ConversationsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	conversationsDbHandler := &ConversationsDBHandler{
		db: db,
	}

	err := adamsql.LoadConversationsSql(conversationsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load conversations sql", err)
	}

	err = conversationsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ConversationsDBHandler")

	return conversationsDbHandler, nil
}

// CreateTable creates the 'conversations' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *ConversationsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_conversations();`)
	if err != nil {
		log.Panicf("error initializing conversations table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table conversations")

	return nil
}

// InsertConversation stores a processed message with its response and
// entity snapshot. Conversations are append-only.
func (h *ConversationsDBHandler) InsertConversation(sessionID string, userMessage string, adamResponse string, entities model.EntityList, externalRef *string) (*model.Conversation, error) {
	if len(sessionID) == 0 {
		return nil, helper.NewError("conversation validation", helper.ErrValidation)
	}

	conversation := &model.Conversation{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_conversation($1, $2, $3, $4, $5)`,
		sessionID,
		userMessage,
		adamResponse,
		entities,
		externalRef,
	)

	err := row.Scan(
		&conversation.ID,
		&conversation.SessionID,
		&conversation.Timestamp,
		&conversation.UserMessage,
		&conversation.AdamResponse,
		&conversation.Entities,
		&conversation.ExternalRef,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return conversation, nil
}

// SelectConversationHistory retrieves the most recent conversations, newest
// first. An empty sessionID returns conversations across all sessions.
func (h *ConversationsDBHandler) SelectConversationHistory(sessionID string, limit int) ([]*model.Conversation, error) {
	var sessionFilter *string
	if len(sessionID) > 0 {
		sessionFilter = &sessionID
	}

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_conversation_history($1, $2)`,
		sessionFilter,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var conversations []*model.Conversation
	for rows.Next() {
		conversation := &model.Conversation{}
		err := rows.Scan(
			&conversation.ID,
			&conversation.SessionID,
			&conversation.Timestamp,
			&conversation.UserMessage,
			&conversation.AdamResponse,
			&conversation.Entities,
			&conversation.ExternalRef,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		conversations = append(conversations, conversation)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return conversations, nil
}
