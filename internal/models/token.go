package models

import "time"

// PasswordResetToken is the single active reset token for one email.
// A new request overwrites the previous token.
type PasswordResetToken struct {
	Token     string    `json:"token" bson:"token"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// Expired reports whether the token is past its expiry.
func (t PasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
