package entities

import (
	"time"
)

// File is an uploaded spreadsheet. HeaderNames holds the display labels the
// user picked for each column; Order holds the field-mapping tokens,
// index-aligned with spreadsheet columns. Both are written once when the user
// submits the header mapping; after that only Imported changes.
type File struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	OriginalName string `gorm:"type:text" json:"original_name"`
	FileName     string `gorm:"type:text" json:"file_name"` // generated storage name
	URL          string `gorm:"type:text" json:"url,omitempty"`
	ContentType  string `gorm:"type:text" json:"content_type"`

	HeaderNames StringList `gorm:"type:text" json:"header_names"`
	Order       StringList `gorm:"column:field_order;type:text" json:"order"`

	Imported   bool `gorm:"default:false" json:"imported"`
	FileExists bool `gorm:"default:false" json:"file_exists"`

	CreatedBy uint `gorm:"index" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (File) TableName() string {
	return "files"
}
