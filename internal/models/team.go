package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus tracks whether a team's tournament fee has been confirmed.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
)

// ApprovalStatus is the administrative outcome of a registration.
// The zero value means the team has not been reviewed yet.
type ApprovalStatus string

const (
	StatusUnset    ApprovalStatus = ""
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Valid reports whether s is one of the admin-assignable outcomes.
func (s ApprovalStatus) Valid() bool {
	return s == StatusApproved || s == StatusRejected
}

// Player is owned by its parent team and never referenced outside it.
type Player struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Team is a competitive entry for one game category.
type Team struct {
	ID                 string         `json:"id" bson:"_id"`
	Name               string         `json:"name" bson:"name"`
	Game               Game           `json:"game" bson:"game"`
	Players            []Player       `json:"players" bson:"players"`
	Institute          Institute      `json:"institute" bson:"institute"`
	PaymentStatus      PaymentStatus  `json:"payment_status" bson:"payment_status"`
	Status             ApprovalStatus `json:"status,omitempty" bson:"status,omitempty"`
	CreatedBy          string         `json:"created_by" bson:"created_by"`
	RegistrationNumber string         `json:"registration_number,omitempty" bson:"registration_number,omitempty"`
	CreatedAt          time.Time      `json:"created_at" bson:"created_at"`
}

// ApprovePayment confirms the team's payment and assigns a registration
// number on the first approval only. Re-approving never reassigns the
// number. Returns true when the call changed the record.
func (t *Team) ApprovePayment() bool {
	changed := t.PaymentStatus != PaymentApproved
	t.PaymentStatus = PaymentApproved
	if t.RegistrationNumber == "" {
		t.RegistrationNumber = NewRegistrationNumber()
		changed = true
	}
	return changed
}

// SetStatus records the admin decision. Both outcomes remain reachable
// from any state; the review flow deliberately allows an admin to flip
// a decision.
func (t *Team) SetStatus(status ApprovalStatus) bool {
	if t.Status == status {
		return false
	}
	t.Status = status
	return true
}

// NewRegistrationNumber returns a '#' plus four digits display code used
// as the user-facing receipt reference.
func NewRegistrationNumber() string {
	return fmt.Sprintf("#%d", 1000+rand.Intn(9000))
}

// NewTeamID generates a unique team id. Upserts key on the id, so two
// registrations landing in the same instant must never share one.
func NewTeamID() string {
	return "team-" + uuid.NewString()
}

// NewPlayerID generates a unique player id.
func NewPlayerID() string {
	return "player-" + uuid.NewString()
}
