// Package publications provides database operations for media outlets.
package publications

import (
	"errors"

	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/entities"
)

// Repository handles all publication database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new publications repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreateByName retrieves a publication by exact name, creating it when
// absent. A newly created publication is attributed to createdBy. Concurrent
// creates are resolved by the unique index on name: a lost race falls back to
// re-reading the winner's row.
func (r *Repository) GetOrCreateByName(name string, createdBy uint) (*entities.Publication, error) {
	var pub entities.Publication
	err := r.db.Where("name = ?", name).First(&pub).Error
	if err == nil {
		return &pub, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pub = entities.Publication{Name: name, CreatedBy: createdBy}
	if createErr := r.db.Create(&pub).Error; createErr != nil {
		if readErr := r.db.Where("name = ?", name).First(&pub).Error; readErr != nil {
			return nil, createErr
		}
	}
	return &pub, nil
}

// GetByID retrieves a publication by ID.
func (r *Repository) GetByID(id uint) (*entities.Publication, error) {
	var pub entities.Publication
	if err := r.db.First(&pub, id).Error; err != nil {
		return nil, err
	}
	return &pub, nil
}

// Create creates a new publication.
func (r *Repository) Create(pub *entities.Publication) error {
	return r.db.Create(pub).Error
}

// List retrieves publications ordered by name.
func (r *Repository) List(limit, offset int) ([]entities.Publication, int64, error) {
	var pubs []entities.Publication
	var total int64

	if err := r.db.Model(&entities.Publication{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := r.db.Order("name").Limit(limit).Offset(offset).Find(&pubs).Error
	return pubs, total, err
}

// Search retrieves publications whose name contains the query (case-insensitive).
func (r *Repository) Search(query string, limit int) ([]entities.Publication, error) {
	var pubs []entities.Publication
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"
	err := r.db.Where("LOWER(name) LIKE LOWER(?)", pattern).Order("name").Limit(limit).Find(&pubs).Error
	return pubs, err
}
