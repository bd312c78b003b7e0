package models

import (
	"time"
)

// Comment represents a comment on a vinyl. Username and ImgProfileURL are
// snapshots of the author's profile taken when the comment is created; they
// are intentionally never re-synced after later profile edits.
type Comment struct {
	ID            uint      `gorm:"primaryKey" json:"idComment"`
	VinylID       uint      `gorm:"not null;index" json:"vinyl_id"`
	UserID        uint      `gorm:"not null" json:"user"`
	Text          string    `gorm:"not null" json:"text"`
	Username      string    `gorm:"not null" json:"username"`
	ImgProfileURL string    `gorm:"column:img_profile_url" json:"imgProfileUrl"`
	CreatedAt     time.Time `json:"created_at"`
}

// CommentView is the public read projection of a Comment.
type CommentView struct {
	IDComment     uint   `json:"idComment"`
	UserID        uint   `json:"user"`
	Text          string `json:"text"`
	Username      string `json:"username"`
	ImgProfileURL string `json:"imgProfileUrl"`
}

// View builds the public projection of the comment.
func (c *Comment) View() CommentView {
	return CommentView{
		IDComment:     c.ID,
		UserID:        c.UserID,
		Text:          c.Text,
		Username:      c.Username,
		ImgProfileURL: c.ImgProfileURL,
	}
}
