// Package lists provides database operations for media lists.
package lists

import (
	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/entities"
)

// Repository handles all media list database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new media lists repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a new media list.
func (r *Repository) Create(list *entities.MediaList) error {
	return r.db.Create(list).Error
}

// GetByID retrieves a media list with its field map and contacts.
func (r *Repository) GetByID(id uint) (*entities.MediaList, error) {
	var list entities.MediaList
	err := r.db.
		Preload("FieldsMap").
		Preload("Contacts").
		First(&list, id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GetByFileID retrieves the media list bound to an uploaded file.
func (r *Repository) GetByFileID(fileID uint) (*entities.MediaList, error) {
	var list entities.MediaList
	err := r.db.
		Preload("FieldsMap").
		Where("file_id = ?", fileID).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByTeam retrieves non-deleted lists for a team, newest first.
func (r *Repository) ListByTeam(teamID uint, limit, offset int) ([]entities.MediaList, int64, error) {
	var lists []entities.MediaList
	var total int64

	query := r.db.Model(&entities.MediaList{}).
		Where("team_id = ? AND is_deleted = ?", teamID, false)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	err := query.
		Preload("FieldsMap").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&lists).Error
	return lists, total, err
}

// Update saves changes to a media list.
func (r *Repository) Update(list *entities.MediaList) error {
	return r.db.Save(list).Error
}

// ReplaceContacts sets the list's membership to exactly the given contacts,
// discarding any prior membership.
func (r *Repository) ReplaceContacts(list *entities.MediaList, contacts []entities.Contact) error {
	values := make([]any, len(contacts))
	for i := range contacts {
		values[i] = &contacts[i]
	}
	return r.db.Model(list).Association("Contacts").Replace(values...)
}

// AddFieldsMapEntry creates a field map record and attaches it to the list.
func (r *Repository) AddFieldsMapEntry(list *entities.MediaList, entry *entities.CustomFieldsMap) error {
	if err := r.db.Create(entry).Error; err != nil {
		return err
	}
	return r.db.Model(list).Association("FieldsMap").Append(entry)
}

// ContactCount returns the number of contacts on a list.
func (r *Repository) ContactCount(list *entities.MediaList) int64 {
	return r.db.Model(list).Association("Contacts").Count()
}
