package jobs

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"notebook_forms_go/config"
	"notebook_forms_go/services"
)

// pruneTimeout bounds one pruning pass over the archive.
const pruneTimeout = 5 * time.Minute

// PruneArchivedFiles removes archived documents older than the configured
// retention. History rows stay; only their files and storage keys go.
func PruneArchivedFiles(database *gorm.DB, storage services.StorageProvider, cfg *config.Config) int {
	if !cfg.ArchiveGenerated || cfg.ArchiveRetentionDays <= 0 {
		return 0
	}
	log.Println("[INFO] Starting archive pruning job...")

	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	retention := time.Duration(cfg.ArchiveRetentionDays) * 24 * time.Hour
	removed, err := services.PruneArchive(ctx, database, storage, retention)
	if err != nil {
		log.Printf("[WARNING] Archive pruning failed: %v", err)
		return removed
	}

	log.Printf("[INFO] Archive pruning job completed (%d files removed)", removed)
	return removed
}

// StartArchivePruner runs PruneArchivedFiles every interval until ctx ends.
func StartArchivePruner(ctx context.Context, interval time.Duration, database *gorm.DB, storage services.StorageProvider, cfg *config.Config) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				PruneArchivedFiles(database, storage, cfg)
			}
		}
	}()
}
