// Package contacts provides database operations for contact management.
package contacts

import (
	"gorm.io/gorm"

	"github.com/newsai/tabulae/internal/entities"
)

// Repository handles all contact database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new contacts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a single contact.
func (r *Repository) Create(contact *entities.Contact) error {
	return r.db.Create(contact).Error
}

// CreateBatch creates contacts in one batch insert. GORM fills the IDs back
// in slice order, which callers rely on for positional association.
func (r *Repository) CreateBatch(contacts []entities.Contact) ([]entities.Contact, error) {
	if len(contacts) == 0 {
		return contacts, nil
	}
	if err := r.db.Create(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// GetByID retrieves a contact with its custom fields and employer links.
func (r *Repository) GetByID(id uint) (*entities.Contact, error) {
	var contact entities.Contact
	err := r.db.
		Preload("CustomFields").
		Preload("Employers").
		Preload("PastEmployers").
		First(&contact, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListByTeam retrieves non-deleted contacts for a team, newest first.
func (r *Repository) ListByTeam(teamID uint, limit, offset int) ([]entities.Contact, int64, error) {
	var contacts []entities.Contact
	var total int64

	query := r.db.Model(&entities.Contact{}).
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
		Preload("CustomFields").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&contacts).Error
	return contacts, total, err
}

// Update saves changes to a contact.
func (r *Repository) Update(contact *entities.Contact) error {
	return r.db.Save(contact).Error
}

// SoftDelete marks a contact deleted without removing the row.
func (r *Repository) SoftDelete(id uint) error {
	return r.db.Model(&entities.Contact{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// SetCustomFields replaces a contact's custom field associations.
func (r *Repository) SetCustomFields(contact *entities.Contact, fields []entities.CustomContactField) error {
	return r.db.Model(contact).Association("CustomFields").Replace(toAnySlice(fields)...)
}

// SetEmployers replaces a contact's employer associations.
func (r *Repository) SetEmployers(contact *entities.Contact, pubs []entities.Publication) error {
	return r.db.Model(contact).Association("Employers").Replace(toAnySlice(pubs)...)
}

// SetPastEmployers replaces a contact's past-employer associations.
func (r *Repository) SetPastEmployers(contact *entities.Contact, pubs []entities.Publication) error {
	return r.db.Model(contact).Association("PastEmployers").Replace(toAnySlice(pubs)...)
}

// CreateCustomFields persists custom field drafts in one bulk insert.
func (r *Repository) CreateCustomFields(fields []entities.CustomContactField) ([]entities.CustomContactField, error) {
	if len(fields) == 0 {
		return fields, nil
	}
	if err := r.db.Create(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// DeleteOrphanCustomFields removes custom fields no contact references.
func (r *Repository) DeleteOrphanCustomFields() (int64, error) {
	result := r.db.Exec(`
		DELETE FROM custom_contact_fields
		WHERE id NOT IN (SELECT custom_contact_field_id FROM contact_custom_fields)
	`)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func toAnySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
