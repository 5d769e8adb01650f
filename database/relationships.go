package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/adam/helper"
	"github.com/siherrmann/adam/model"
	adamsql "github.com/siherrmann/adam/sql"
)

// RelationshipsDBHandlerFunctions defines the interface for Relationships database operations.
type RelationshipsDBHandlerFunctions interface {
	UpsertRelationship(entity1ID uuid.UUID, entity2ID uuid.UUID, relationshipType model.RelationshipType, context string) (*model.Relationship, error)
	SelectRelationships(entityID uuid.UUID, limit int) ([]*model.Relationship, error)
}

// RelationshipsDBHandler handles relationship-related database operations
type RelationshipsDBHandler struct {
	db *helper.Database
}

// NewRelationshipsDBHandler creates a new relationships database handler.
// It initializes the database connection and loads relationship-related SQL functions.
// The entities handler has to be created first because relationships
// reference the entities table.
func NewRelationshipsDBHandler(db *helper.Database, force bool) (*RelationshipsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	relationshipsDbHandler := &RelationshipsDBHandler{
		db: db,
	}

	err := adamsql.LoadRelationshipsSql(relationshipsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load relationships sql", err)
	}

	err = relationshipsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized RelationshipsDBHandler")

	return relationshipsDbHandler, nil
}

// CreateTable creates the 'relationships' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *RelationshipsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_relationships();`)
	if err != nil {
		log.Panicf("error initializing relationships table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table relationships")

	return nil
}

// UpsertRelationship inserts a relationship or, when the triple already
// exists, replaces its context snippet with the given one.
func (h *RelationshipsDBHandler) UpsertRelationship(entity1ID uuid.UUID, entity2ID uuid.UUID, relationshipType model.RelationshipType, context string) (*model.Relationship, error) {
	relationship := &model.Relationship{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM upsert_relationship($1, $2, $3, $4)`,
		entity1ID,
		entity2ID,
		string(relationshipType),
		context,
	)

	err := row.Scan(
		&relationship.Entity1ID,
		&relationship.Entity2ID,
		&relationship.Type,
		&relationship.Context,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return relationship, nil
}

// SelectRelationships retrieves relationships touching an entity in either
// direction, with both endpoint names joined in.
func (h *RelationshipsDBHandler) SelectRelationships(entityID uuid.UUID, limit int) ([]*model.Relationship, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_relationships($1, $2)`,
		entityID,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var relationships []*model.Relationship
	for rows.Next() {
		relationship := &model.Relationship{}
		err := rows.Scan(
			&relationship.Entity1ID,
			&relationship.Entity2ID,
			&relationship.Type,
			&relationship.Context,
			&relationship.Entity1Name,
			&relationship.Entity2Name,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		relationships = append(relationships, relationship)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return relationships, nil
}
