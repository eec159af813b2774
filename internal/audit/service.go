package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/newsai/tabulae/internal/database/audit"
	"github.com/newsai/tabulae/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogUpload records a spreadsheet upload event.
func (s *Service) LogUpload(userID, teamID, fileID uint, description string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		TeamID:      teamID,
		EventType:   entities.AuditEventUpload,
		Action:      "file_upload",
		Description: description,
		EntityType:  "file",
		EntityID:    &fileID,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogImport records a spreadsheet import event.
func (s *Service) LogImport(userID, teamID, fileID uint, description string, contactsCount, customFieldsCount int, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		TeamID:      teamID,
		EventType:   entities.AuditEventImport,
		Action:      "file_import",
		Description: description,
		EntityType:  "file",
		EntityID:    &fileID,
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"contacts_count":      contactsCount,
		"custom_fields_count": customFieldsCount,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(userID, teamID uint, entityType string, entityID uint, entityName string) {
	event := &entities.AuditEvent{
		UserID:      userID,
		TeamID:      teamID,
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: "Deleted " + entityType + ": " + entityName,
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// LogAuth records an authentication event.
func (s *Service) LogAuth(userID, teamID uint, action string, success bool) {
	event := &entities.AuditEvent{
		UserID:    userID,
		TeamID:    teamID,
		EventType: entities.AuditEventAuth,
		Action:    action,
		Status:    entities.AuditStatusSuccess,
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events for a team.
func (s *Service) GetEvents(teamID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(teamID, limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, teamID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, teamID, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
