package entities

import (
	"time"
)

// CustomContactField is a free-form name/value pair attached to a contact.
// The association is many-to-many at the persistence layer, but each field is
// created for exactly one contact during import.
type CustomContactField struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text" json:"name"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedBy uint      `gorm:"index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publication is a media outlet referenced as an employer or past employer.
// Publications are shared across contacts and teams, not owned by any single
// contact; the name is unique and lookup is get-or-create by exact name.
type Publication struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;size:512" json:"name"`
	URL       string `gorm:"size:2048" json:"url,omitempty"`
	LinkedIn  string `gorm:"size:512" json:"linkedin,omitempty"`
	Twitter   string `gorm:"size:512" json:"twitter,omitempty"`
	Instagram string `gorm:"size:512" json:"instagram,omitempty"`
	Blog      string `gorm:"size:2048" json:"blog,omitempty"`
	Verified  bool   `gorm:"default:false" json:"verified"`
	CreatedBy uint   `gorm:"index" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Contact struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"type:text" json:"first_name"`
	LastName  string `gorm:"type:text" json:"last_name"`
	Email     string `gorm:"index;size:254" json:"email"`
	Notes     string `gorm:"type:text" json:"notes,omitempty"`

	LinkedIn    string `gorm:"type:text" json:"linkedin,omitempty"`
	Twitter     string `gorm:"type:text" json:"twitter,omitempty"`
	Instagram   string `gorm:"type:text" json:"instagram,omitempty"`
	Website     string `gorm:"type:text" json:"website,omitempty"`
	Blog        string `gorm:"type:text" json:"blog,omitempty"`
	Location    string `gorm:"type:text" json:"location,omitempty"`
	PhoneNumber string `gorm:"type:text" json:"phone_number,omitempty"`

	CustomFields  []CustomContactField `gorm:"many2many:contact_custom_fields;" json:"custom_fields,omitempty"`
	Employers     []Publication        `gorm:"many2many:contact_employers;" json:"employers,omitempty"`
	PastEmployers []Publication        `gorm:"many2many:contact_past_employers;" json:"past_employers,omitempty"`

	EmailBounced    bool `gorm:"default:false" json:"email_bounced"`
	IsOutdated      bool `gorm:"default:false" json:"is_outdated"`
	IsMasterContact bool `gorm:"default:false" json:"is_master_contact"`
	IsDeleted       bool `gorm:"default:false;index" json:"is_deleted"`

	TeamID    uint `gorm:"index" json:"team_id"`
	CreatedBy uint `gorm:"index" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CustomContactField) TableName() string {
	return "custom_contact_fields"
}

func (Publication) TableName() string {
	return "publications"
}

func (Contact) TableName() string {
	return "contacts"
}
