package models

import (
	"time"

	"github.com/google/uuid"
)

// Drawing represents one uploaded document (PDF or single image).
type Drawing struct {
	UUID        uuid.UUID `gorm:"primarykey" json:"uuid"`
	Filename    string    `gorm:"not null" json:"filename"`
	StoredName  string    `gorm:"not null" json:"stored_name"`
	ContentType string    `json:"content_type"`
	PageCount   int       `gorm:"not null;default:1" json:"page_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsImage reports whether the upload was a plain image, in which case the
// original file itself is the single-page raster.
func (d Drawing) IsImage() bool {
	return d.ContentType != "application/pdf"
}
