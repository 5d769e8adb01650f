package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/adam/helper"
	"github.com/siherrmann/adam/model"
	adamsql "github.com/siherrmann/adam/sql"
)

// EntitiesDBHandlerFunctions defines the interface for Entities database operations.
type EntitiesDBHandlerFunctions interface {
	UpsertEntity(name string, entityType model.EntityType, metadata model.Metadata) (*model.EntityRecord, error)
	SelectEntity(id uuid.UUID) (*model.EntityRecord, error)
	SelectEntityByName(name string, entityType model.EntityType) (*model.EntityRecord, error)
	SelectEntities(entityType *string, limit int) ([]*model.EntityRecord, error)
}

// EntitiesDBHandler handles entity-related database operations
type EntitiesDBHandler struct {
	db *helper.Database
}

// NewEntitiesDBHandler creates a new entities database handler.
// It initializes the database connection and loads entity-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewEntitiesDBHandler(db *helper.Database, force bool) (*EntitiesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	entitiesDbHandler := &EntitiesDBHandler{
		db: db,
	}

	err := adamsql.LoadEntitiesSql(entitiesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load entities sql", err)
	}

	err = entitiesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EntitiesDBHandler")

	return entitiesDbHandler, nil
}

// CreateTable creates the 'entities' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *EntitiesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_entities();`)
	if err != nil {
		log.Panicf("error initializing entities table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table entities")

	return nil
}

// UpsertEntity inserts a new entity or, when (name, type) already exists,
// increments its mention count. The metadata of the first insert is kept.
func (h *EntitiesDBHandler) UpsertEntity(name string, entityType model.EntityType, metadata model.Metadata) (*model.EntityRecord, error) {
	if len(name) == 0 {
		return nil, helper.NewError("entity validation", helper.ErrValidation)
	}

	record := &model.EntityRecord{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM upsert_entity($1, $2, $3)`,
		name,
		string(entityType),
		metadata,
	)

	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Type,
		&record.Metadata,
		&record.FirstSeen,
		&record.MentionCount,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return record, nil
}

// SelectEntity retrieves an entity by ID
func (h *EntitiesDBHandler) SelectEntity(id uuid.UUID) (*model.EntityRecord, error) {
	record := &model.EntityRecord{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_entity($1)`,
		id,
	)

	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Type,
		&record.Metadata,
		&record.FirstSeen,
		&record.MentionCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NewError("select entity", helper.ErrNotFound)
	} else if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return record, nil
}

// SelectEntityByName retrieves an entity by name and type
func (h *EntitiesDBHandler) SelectEntityByName(name string, entityType model.EntityType) (*model.EntityRecord, error) {
	record := &model.EntityRecord{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_entity_by_name($1, $2)`,
		name,
		string(entityType),
	)

	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Type,
		&record.Metadata,
		&record.FirstSeen,
		&record.MentionCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NewError("select entity by name", helper.ErrNotFound)
	} else if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return record, nil
}

// SelectEntities retrieves entities ordered by mention count.
// A nil entityType returns entities of all types.
func (h *EntitiesDBHandler) SelectEntities(entityType *string, limit int) ([]*model.EntityRecord, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_entities($1, $2)`,
		entityType,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var records []*model.EntityRecord
	for rows.Next() {
		record := &model.EntityRecord{}
		err := rows.Scan(
			&record.ID,
			&record.Name,
			&record.Type,
			&record.Metadata,
			&record.FirstSeen,
			&record.MentionCount,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		records = append(records, record)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return records, nil
}
