package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the e-sports registration portal.
// Password holds the bcrypt hash and is never serialized to clients.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	Password     string    `json:"-" bson:"password"`
	Name         string    `json:"name,omitempty" bson:"name,omitempty"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty" bson:"profile_image,omitempty"`
	IsAdmin      bool      `json:"is_admin" bson:"is_admin"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// PublicUser is the password-stripped view of a User, used for the
// current-session record and all API responses.
type PublicUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
}

// Public strips the password for session storage and API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		IsAdmin:      u.IsAdmin,
	}
}

// UserUpdate carries a partial profile update. The password is only
// touched when Password is non-nil (password reset path); profile
// updates always preserve the stored hash.
type UserUpdate struct {
	Name         *string `json:"name,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Password     *string `json:"-"`
}

// NewUserID generates a unique user id. IDs must stay unique across
// concurrent requests, so the suffix is a UUID rather than a timestamp.
func NewUserID() string {
	return "user-" + uuid.NewString()
}
