package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"notebook_forms_go/models"
)

// ErrGenerationNotFound is returned when a history record does not exist.
var ErrGenerationNotFound = errors.New("generation not found")

// HistoryContext carries request metadata for a history record.
type HistoryContext struct {
	IPAddress string
	Locale    string
}

// NewGenerationRecord builds the history row for a generated file.
func NewGenerationRecord(req GenerationRequest, file *GeneratedFile, storageKey string, hc HistoryContext) models.Generation {
	params, err := json.Marshal(req.Spec)
	if err != nil {
		log.Printf("[WARNING] Failed to encode template params: %v", err)
	}
	record := models.Generation{
		TemplateKind: string(req.Spec.Kind()),
		Params:       string(params),
		Pages:        file.Pages,
		Format:       string(req.Format),
		FileName:     file.FileName,
		FileSize:     int64(len(file.Data)),
		IPAddress:    hc.IPAddress,
		Locale:       hc.Locale,
	}
	if storageKey != "" {
		record.StorageKey = &storageKey
	}
	return record
}

// RecordGeneration stores a history row. Failures are logged, never returned:
// history must not block a download.
func RecordGeneration(db *gorm.DB, record models.Generation) {
	if db == nil {
		return
	}
	if err := db.Create(&record).Error; err != nil {
		log.Printf("[WARNING] Failed to record generation: %v", err)
	}
}

// RecentGenerations lists the newest records first.
func RecentGenerations(db *gorm.DB, limit int) ([]models.Generation, error) {
	var records []models.Generation
	err := db.Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

// GetGeneration loads one record by ID.
func GetGeneration(db *gorm.DB, id string) (*models.Generation, error) {
	var record models.Generation
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenerationNotFound
		}
		return nil, err
	}
	return &record, nil
}

// PruneArchive deletes archived files older than retention and clears their
// storage keys. History rows are kept. It returns the number of files removed.
func PruneArchive(ctx context.Context, db *gorm.DB, storage StorageProvider, retention time.Duration) (int, error) {
	if db == nil || storage == nil || retention <= 0 {
		return 0, nil
	}

	var expired []models.Generation
	cutoff := time.Now().Add(-retention)
	if err := db.Where("storage_key IS NOT NULL AND created_at < ?", cutoff).Find(&expired).Error; err != nil {
		return 0, fmt.Errorf("failed to list expired archives: %w", err)
	}

	removed := 0
	for i := range expired {
		record := &expired[i]
		if err := storage.Delete(ctx, *record.StorageKey); err != nil {
			log.Printf("[WARNING] Failed to delete archived file %s: %v", *record.StorageKey, err)
			continue
		}
		if err := db.Model(record).Update("storage_key", nil).Error; err != nil {
			log.Printf("[WARNING] Failed to clear storage key for %s: %v", record.ID, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Printf("[INFO] Pruned %d archived files older than %s", removed, retention)
	}
	return removed, nil
}
