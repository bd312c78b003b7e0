package models

import (
	"time"
)

// Vinyl represents a vinyl-record entry posted by a user. Year is an opaque
// string, never compared or sorted numerically.
type Vinyl struct {
	ID          uint      `gorm:"primaryKey" json:"idVinyl"`
	UserID      uint      `gorm:"not null;index" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Artist      string    `gorm:"not null" json:"artist"`
	Year        string    `gorm:"not null" json:"year"`
	ImgVinylURL string    `gorm:"column:img_vinyl_url" json:"imgVinylUrl"`
	Info        string    `json:"info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:VinylID" json:"comments,omitempty"`
}

// VinylView is the public read projection of a Vinyl. The owner id keeps the
// original wire name "id" and the vinyl's own id is exposed as idVinyl; the
// like set and comment list are projected in from their satellite tables.
type VinylView struct {
	IDVinyl     uint          `json:"idVinyl"`
	UserID      uint          `json:"id"`
	Title       string        `json:"title"`
	Artist      string        `json:"artist"`
	Year        string        `json:"year"`
	ImgVinylURL string        `json:"imgVinylUrl"`
	Info        string        `json:"info"`
	Likes       []uint        `json:"likes"`
	Comments    []CommentView `json:"comments"`
}

// View builds the public projection of the vinyl with the given like set and
// comment list.
func (v *Vinyl) View(likes []uint, comments []CommentView) *VinylView {
	if likes == nil {
		likes = []uint{}
	}
	if comments == nil {
		comments = []CommentView{}
	}
	return &VinylView{
		IDVinyl:     v.ID,
		UserID:      v.UserID,
		Title:       v.Title,
		Artist:      v.Artist,
		Year:        v.Year,
		ImgVinylURL: v.ImgVinylURL,
		Info:        v.Info,
		Likes:       likes,
		Comments:    comments,
	}
}
