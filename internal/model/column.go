package model

import (
	"time"

	"github.com/google/uuid"
)

// Column position is a sparse integer (multiples of the allocator gap)
// ordering siblings within a board. Uniqueness is maintained by the
// allocator, not by the schema.
type Column struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Position    int       `gorm:"not null;index"`
	IsCollapsed bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Board Board `gorm:"foreignKey:BoardID"`
}
