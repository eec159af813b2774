package entities

import (
	"time"
)

// CustomFieldsMap is a per-list display configuration record for one field:
// the label the user chose for a column, the field token it maps to, and
// ordering/visibility flags.
type CustomFieldsMap struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:text" json:"name"`  // display label
	Value       string `gorm:"type:text" json:"value"` // field token
	CustomField bool   `gorm:"default:false" json:"custom_field"`
	Hidden      bool   `gorm:"default:false" json:"hidden"`
	Order       int    `gorm:"column:field_order;default:50" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MediaList is a named collection of contacts, the destination of a
// spreadsheet import. Importing replaces the list's membership.
type MediaList struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:text" json:"name"`
	ClientName string `gorm:"type:text" json:"client_name,omitempty"`

	Contacts  []Contact         `gorm:"many2many:media_list_contacts;" json:"contacts,omitempty"`
	FieldsMap []CustomFieldsMap `gorm:"many2many:media_list_fields;" json:"fields_map,omitempty"`

	FileID *uint `gorm:"index" json:"file_id,omitempty"`

	PublicList bool `gorm:"default:false" json:"public_list"`
	Archived   bool `gorm:"default:false" json:"archived"`
	Subscribed bool `gorm:"default:false" json:"subscribed"`
	IsDeleted  bool `gorm:"default:false;index" json:"is_deleted"`

	TeamID    uint `gorm:"index" json:"team_id"`
	CreatedBy uint `gorm:"index" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CustomFieldsMap) TableName() string {
	return "custom_fields_maps"
}

func (MediaList) TableName() string {
	return "media_lists"
}
