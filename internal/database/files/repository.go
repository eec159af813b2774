// Package files provides database operations for uploaded spreadsheets.
package files

import (
	"time"

	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/entities"
)

// Repository handles all uploaded-file database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new files repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create records a newly uploaded file.
func (r *Repository) Create(file *entities.File) error {
	return r.db.Create(file).Error
}

// GetByID retrieves a file by ID.
func (r *Repository) GetByID(id uint) (*entities.File, error) {
	var file entities.File
	if err := r.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// GetOwnedByUser retrieves a file only if it was uploaded by the given user.
func (r *Repository) GetOwnedByUser(id, userID uint) (*entities.File, error) {
	var file entities.File
	err := r.db.Where("id = ? AND created_by = ?", id, userID).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListByUser retrieves a user's uploads, newest first.
func (r *Repository) ListByUser(userID uint, limit, offset int) ([]entities.File, int64, error) {
	var result []entities.File
	var total int64

	query := r.db.Model(&entities.File{}).Where("created_by = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&result).Error
	return result, total, err
}

// SaveMapping stores the user-submitted header labels and column tokens.
func (r *Repository) SaveMapping(file *entities.File, headerNames, order entities.StringList) error {
	file.HeaderNames = headerNames
	file.Order = order
	return r.db.Model(file).Updates(map[string]any{
		"header_names": headerNames,
		"field_order":  order,
	}).Error
}

// MarkImported flags a file as imported.
func (r *Repository) MarkImported(file *entities.File) error {
	file.Imported = true
	return r.db.Model(file).Update("imported", true).Error
}

// StaleUploads returns never-imported files older than the cutoff.
func (r *Repository) StaleUploads(cutoff time.Time) ([]entities.File, error) {
	var stale []entities.File
	err := r.db.
		Where("imported = ? AND created_at < ?", false, cutoff).
		Find(&stale).Error
	return stale, err
}

// Delete removes a file record.
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.File{}, id).Error
}
