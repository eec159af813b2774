package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/newsai/tabulae/internal/entities"
)

// StaleUploadSource lists uploaded files that were never imported.
type StaleUploadSource interface {
	StaleUploads(cutoff time.Time) ([]entities.File, error)
	Delete(id uint) error
}

// FileRemover deletes a stored upload from disk.
type FileRemover interface {
	Remove(name string) error
}

// CleanupUploadsTask removes uploads that sat unimported past the retention
// period, both the stored file and its database record.
type CleanupUploadsTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for upload cleanup tasks.
func (t CleanupUploadsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_uploads",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupUploadsProcessor creates a processor function for CleanupUploadsTask.
func CleanupUploadsProcessor(source StaleUploadSource, store FileRemover) backlite.QueueProcessor[CleanupUploadsTask] {
	return func(ctx context.Context, task CleanupUploadsTask) error {
		if source == nil || store == nil {
			return fmt.Errorf("upload cleanup not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 30
		}
		cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)

		stale, err := source.StaleUploads(cutoff)
		if err != nil {
			return fmt.Errorf("list stale uploads: %w", err)
		}

		removed := 0
		for _, file := range stale {
			if err := store.Remove(file.FileName); err != nil {
				log.Printf("[TASK ERROR] Failed to remove upload %s: %v", file.FileName, err)
				continue
			}
			if err := source.Delete(file.ID); err != nil {
				log.Printf("[TASK ERROR] Failed to delete file record %d: %v", file.ID, err)
				continue
			}
			removed++
		}

		log.Printf("[TASK] Cleaned up %d stale uploads older than %d days", removed, retentionDays)
		return nil
	}
}

// NewCleanupUploadsQueue creates a backlite queue for upload cleanup tasks.
func NewCleanupUploadsQueue(source StaleUploadSource, store FileRemover) backlite.Queue {
	return backlite.NewQueue(CleanupUploadsProcessor(source, store))
}
