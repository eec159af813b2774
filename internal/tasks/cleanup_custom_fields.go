package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// OrphanFieldCleaner deletes custom field values no longer attached to any
// contact. Re-running an import replaces a contact's field set, which can
// leave the old values behind.
type OrphanFieldCleaner interface {
	DeleteOrphanCustomFields() (int64, error)
}

// CleanupCustomFieldsTask removes orphaned custom contact field values.
type CleanupCustomFieldsTask struct{}

// Config returns the queue configuration for custom field cleanup tasks.
func (t CleanupCustomFieldsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_custom_fields",
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

// CleanupCustomFieldsProcessor creates a processor function for CleanupCustomFieldsTask.
func CleanupCustomFieldsProcessor(cleaner OrphanFieldCleaner) backlite.QueueProcessor[CleanupCustomFieldsTask] {
	return func(ctx context.Context, task CleanupCustomFieldsTask) error {
		if cleaner == nil {
			return fmt.Errorf("custom field cleaner not configured")
		}

		deleted, err := cleaner.DeleteOrphanCustomFields()
		if err != nil {
			return fmt.Errorf("cleanup custom fields: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d orphaned custom field values", deleted)
		return nil
	}
}

// NewCleanupCustomFieldsQueue creates a backlite queue for custom field cleanup tasks.
func NewCleanupCustomFieldsQueue(cleaner OrphanFieldCleaner) backlite.Queue {
	return backlite.NewQueue(CleanupCustomFieldsProcessor(cleaner))
}
