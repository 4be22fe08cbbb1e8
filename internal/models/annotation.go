package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Annotation is the database row for one shape. The full wire shape (the
// flat type-discriminated mapping) is kept in Data so the store round-trips
// it losslessly; Page and Type are lifted out for querying.
type Annotation struct {
	UUID      uuid.UUID      `gorm:"primarykey" json:"uuid"`
	DrawingID uuid.UUID      `gorm:"not null;index" json:"drawing_id"`
	Page      int            `gorm:"not null;index" json:"page"`
	Seq       int            `gorm:"not null" json:"seq"`
	Type      string         `gorm:"not null" json:"type"`
	Data      datatypes.JSON `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
