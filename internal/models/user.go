// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Connection status values for a user's presence field.
const (
	ConnectionOnline  = "online"
	ConnectionOffline = "offline"
)

// User represents a registered user of the Vinyls application.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"unique;not null" json:"email"`
	Username      string    `gorm:"unique;not null" json:"username"`
	Password      string    `gorm:"not null" json:"-"`
	ImgProfileURL string    `gorm:"column:img_profile_url" json:"imgProfileUrl"`
	Bio           string    `json:"bio"`
	Connection    string    `gorm:"type:varchar(20);default:'offline'" json:"connection"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserProfile is the public read projection of a User. The internal id is
// exposed as idUser and the password never leaves the store.
type UserProfile struct {
	IDUser        uint   `json:"idUser"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	ImgProfileURL string `json:"imgProfileUrl"`
	Bio           string `json:"bio"`
	Connection    string `json:"connection"`
	Follows       []uint `json:"follows"`
	Followers     []uint `json:"followers"`
}

// Profile builds the public projection of the user with the given follow
// edge endpoints.
func (u *User) Profile(follows, followers []uint) *UserProfile {
	if follows == nil {
		follows = []uint{}
	}
	if followers == nil {
		followers = []uint{}
	}
	return &UserProfile{
		IDUser:        u.ID,
		Email:         u.Email,
		Username:      u.Username,
		ImgProfileURL: u.ImgProfileURL,
		Bio:           u.Bio,
		Connection:    u.Connection,
		Follows:       follows,
		Followers:     followers,
	}
}
