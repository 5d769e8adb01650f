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

// FilesDBHandlerFunctions defines the interface for Files database operations.
type FilesDBHandlerFunctions interface {
	InsertFile(record *model.FileRecord) error
	SelectFiles(category *string, limit int) ([]*model.FileRecord, error)
}

// FilesDBHandler handles file-related database operations
type FilesDBHandler struct {
	db *helper.Database
}

// NewFilesDBHandler creates a new files database handler.
// It initializes the database connection and loads file-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewFilesDBHandler(db *helper.Database, force bool) (*FilesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	filesDbHandler := &FilesDBHandler{
		db: db,
	}

	err := adamsql.LoadFilesSql(filesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load files sql", err)
	}

	err = filesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized FilesDBHandler")

	return filesDbHandler, nil
}

// CreateTable creates the 'files' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *FilesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_files();`)
	if err != nil {
		log.Panicf("error initializing files table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table files")

	return nil
}

// InsertFile stores a file record and fills the generated ID on the given record.
func (h *FilesDBHandler) InsertFile(record *model.FileRecord) error {
	if len(record.OriginalName) == 0 || len(record.StoredPath) == 0 {
		return helper.NewError("file validation", helper.ErrValidation)
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_file($1, $2, $3, $4, $5, $6)`,
		record.OriginalName,
		record.StoredPath,
		record.Category,
		record.FileHash,
		record.Metadata,
		record.ExternalRef,
	)

	err := row.Scan(
		&record.ID,
		&record.OriginalName,
		&record.StoredPath,
		&record.Category,
		&record.FileHash,
		&record.Metadata,
		&record.ExternalRef,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectFiles retrieves file records, optionally filtered by category.
func (h *FilesDBHandler) SelectFiles(category *string, limit int) ([]*model.FileRecord, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_files($1, $2)`,
		category,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var records []*model.FileRecord
	for rows.Next() {
		record := &model.FileRecord{}
		err := rows.Scan(
			&record.ID,
			&record.OriginalName,
			&record.StoredPath,
			&record.Category,
			&record.FileHash,
			&record.Metadata,
			&record.ExternalRef,
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
