package models

import (
	"time"
)

// VinylLike represents a user's like on a vinyl.
// The combination of VinylID and UserID must be unique.
type VinylLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VinylID   uint      `gorm:"not null;uniqueIndex:idx_vinyl_user" json:"vinyl_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_vinyl_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (VinylLike) TableName() string {
	return "vinyl_likes"
}
