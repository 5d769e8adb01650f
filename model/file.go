package model

import "github.com/google/uuid"

// FileRecord describes a file stored by the library collaborator.
type FileRecord struct {
	ID           uuid.UUID `json:"id"`
	OriginalName string    `json:"original_name"`
	StoredPath   string    `json:"stored_path"`
	Category     string    `json:"category"`
	FileHash     string    `json:"file_hash"`
	Metadata     Metadata  `json:"metadata,omitempty"`
	ExternalRef  *string   `json:"external_ref,omitempty"`
}
