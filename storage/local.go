package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/siherrmann/adam/database"
	"github.com/siherrmann/adam/helper"
	"github.com/siherrmann/adam/model"
)

// LocalStorage keeps file content on disk under a base directory and the
// describing records in the files table. Files are stored under their
// category directory with a content-hash prefix, so storing the same
// content twice under the same name is idempotent on disk.
type LocalStorage struct {
	baseDir string
	files   *database.FilesDBHandler
}

// NewLocalStorage creates a local file library rooted at baseDir.
func NewLocalStorage(baseDir string, files *database.FilesDBHandler) (*LocalStorage, error) {
	if len(baseDir) == 0 {
		return nil, helper.NewError("storage validation", fmt.Errorf("base directory is empty"))
	}
	if files == nil {
		return nil, helper.NewError("storage validation", fmt.Errorf("files handler is nil"))
	}

	err := os.MkdirAll(baseDir, 0o755)
	if err != nil {
		return nil, helper.NewError("create base directory", err)
	}

	return &LocalStorage{
		baseDir: baseDir,
		files:   files,
	}, nil
}

// Store writes the content under its category directory and records it in
// the files table. The returned record carries the generated ID and the
// path relative to the base directory.
func (s *LocalStorage) Store(data []byte, originalName string, category string, metadata model.Metadata) (*model.FileRecord, error) {
	if len(originalName) == 0 {
		return nil, helper.NewError("store validation", helper.ErrValidation)
	}
	if len(category) == 0 {
		category = "general"
	}

	hash := sha256.Sum256(data)
	fileHash := hex.EncodeToString(hash[:])

	categoryDir := filepath.Join(s.baseDir, category)
	err := os.MkdirAll(categoryDir, 0o755)
	if err != nil {
		return nil, helper.NewError("create category directory", err)
	}

	storedName := fileHash[:12] + "_" + filepath.Base(originalName)
	relativePath := filepath.Join(category, storedName)

	err = os.WriteFile(filepath.Join(s.baseDir, relativePath), data, 0o644)
	if err != nil {
		return nil, helper.NewError("write file", err)
	}

	record := &model.FileRecord{
		OriginalName: originalName,
		StoredPath:   relativePath,
		Category:     category,
		FileHash:     fileHash,
		Metadata:     metadata,
	}
	err = s.files.InsertFile(record)
	if err != nil {
		return nil, helper.NewError("insert file", err)
	}

	return record, nil
}

// Read returns the content of a stored file record.
func (s *LocalStorage) Read(record *model.FileRecord) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, record.StoredPath))
	if err != nil {
		return nil, helper.NewError("read file", err)
	}
	return data, nil
}

// List returns stored file records, optionally filtered by category.
func (s *LocalStorage) List(category *string, limit int) ([]*model.FileRecord, error) {
	records, err := s.files.SelectFiles(category, limit)
	if err != nil {
		return nil, helper.NewError("select files", err)
	}
	return records, nil
}
