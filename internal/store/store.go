// Package store defines the persistence contracts the services depend
// on. Implementations exist for an in-memory map (tests, development), a
// JSON file directory and MongoDB; sessions can additionally live in
// Redis. Swapping backends never changes service behavior.
package store

import (
	"context"
	"errors"

	"github.com/iftoesports/portal-backend/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore persists accounts. SaveUser appends; email uniqueness is
// enforced by the auth service at registration time, not here.
type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// UpdateUser merges the partial update onto the stored user. The
	// password hash is preserved unless the update carries an explicit
	// new password (the reset path).
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
}

// DeleteCriteria selects teams for bulk deletion. Criteria are ORed: a
// team matching any enabled criterion is removed.
type DeleteCriteria struct {
	// Unpaid matches teams whose payment is still pending.
	Unpaid bool `json:"unpaid"`
	// Rejected matches teams an admin rejected.
	Rejected bool `json:"rejected"`
	// Approved matches teams that are approved AND paid.
	Approved bool `json:"approved"`
}

// Matches reports whether the team falls under any enabled criterion.
func (c DeleteCriteria) Matches(team *models.Team) bool {
	if c.Unpaid && team.PaymentStatus == models.PaymentPending {
		return true
	}
	if c.Rejected && team.Status == models.StatusRejected {
		return true
	}
	if c.Approved && team.Status == models.StatusApproved && team.PaymentStatus == models.PaymentApproved {
		return true
	}
	return false
}

// TeamStore persists team registrations.
type TeamStore interface {
	// SaveTeam upserts by id: replace when the id exists, append otherwise.
	SaveTeam(ctx context.Context, team *models.Team) error
	GetTeams(ctx context.Context) ([]models.Team, error)
	GetTeamByID(ctx context.Context, id string) (*models.Team, error)
	GetTeamsByUser(ctx context.Context, userID string) ([]models.Team, error)
	// GetTeamNames returns every team name lowercased, for uniqueness checks.
	GetTeamNames(ctx context.Context) ([]string, error)
	// DeleteTeam removes by id and is a no-op when the id is absent.
	DeleteTeam(ctx context.Context, id string) error
	// DeleteTeamsByCriteria removes every matching team and returns the
	// count removed.
	DeleteTeamsByCriteria(ctx context.Context, criteria DeleteCriteria) (int, error)
}

// TokenStore keeps at most one active password-reset token per email;
// saving overwrites any previous token.
type TokenStore interface {
	SaveResetToken(ctx context.Context, email string, token models.PasswordResetToken) error
	GetResetToken(ctx context.Context, email string) (*models.PasswordResetToken, error)
	DeleteResetToken(ctx context.Context, email string) error
}

// SessionStore keeps the password-stripped current-user record, keyed by
// user id. Set on login/registration, cleared on logout.
type SessionStore interface {
	SetCurrentUser(ctx context.Context, user models.PublicUser) error
	GetCurrentUser(ctx context.Context, userID string) (*models.PublicUser, error)
	ClearCurrentUser(ctx context.Context, userID string) error
}

// Stores bundles the four contracts for wiring.
type Stores struct {
	Users    UserStore
	Teams    TeamStore
	Tokens   TokenStore
	Sessions SessionStore
}
