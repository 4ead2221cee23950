package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrGenerationImmutable is returned when an existing record is updated.
var ErrGenerationImmutable = errors.New("generation records cannot be modified")

// Generation records one generated document. Records are append-only.
type Generation struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_generation_created_at" json:"created_at"`

	TemplateKind string `gorm:"not null;index:idx_generation_kind" json:"template_kind"`
	Params       string `gorm:"type:text" json:"params"` // JSON encoded template parameters
	Pages        int    `gorm:"not null" json:"pages"`
	Format       string `gorm:"not null" json:"format"`
	FileName     string `gorm:"not null" json:"file_name"`
	FileSize     int64  `json:"file_size"`

	// StorageKey is set when the file was archived for re-download
	StorageKey *string `gorm:"index:idx_generation_storage_key" json:"storage_key,omitempty"`

	// Request metadata
	IPAddress string `json:"ip_address,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

// BeforeCreate generates the UUID
func (g *Generation) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate only lets the archive key be cleared by retention cleanup.
func (g *Generation) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("StorageKey") && !tx.Statement.Changed("TemplateKind", "Params", "Pages", "Format", "FileName", "FileSize") {
		return nil
	}
	return ErrGenerationImmutable
}

// Archived reports whether the file can be downloaded again.
func (g *Generation) Archived() bool {
	return g.StorageKey != nil && *g.StorageKey != ""
}

// GetDownloadURL returns the re-download route for archived files.
func (g *Generation) GetDownloadURL() string {
	if !g.Archived() {
		return ""
	}
	return "/generations/" + g.ID + "/download"
}
