package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/iftoesports/portal-backend/internal/models"
	"github.com/iftoesports/portal-backend/internal/store"
	"github.com/iftoesports/portal-backend/pkg/email"
	"github.com/iftoesports/portal-backend/pkg/validation"
	"github.com/sirupsen/logrus"
)

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = time.Hour

// Fixed bootstrap admin account, created once when no admin exists.
const (
	adminEmail    = "admin@ifto.edu.br"
	adminPassword = "admin123"
	adminName     = "Administrador"
)

// AuthService encapsulates account registration, login, profile updates
// and the password-reset flow.
type AuthService struct {
	users    store.UserStore
	tokens   store.TokenStore
	sessions store.SessionStore
	hasher   PasswordHasher
	notifier email.Notifier
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(stores store.Stores, hasher PasswordHasher, notifier email.Notifier) *AuthService {
	return &AuthService{
		users:    stores.Users,
		tokens:   stores.Tokens,
		sessions: stores.Sessions,
		hasher:   hasher,
		notifier: notifier,
	}
}

// Register creates a new account and opens a session for it. The store
// is left untouched on any validation failure.
func (s *AuthService) Register(ctx context.Context, emailAddr, password, confirmPassword, name string) (*models.PublicUser, error) {
	logrus.Info("Registering new user")

	if emailAddr == "" || password == "" || confirmPassword == "" || name == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, fmt.Errorf("missing required fields")
	}
	if !validation.ValidateEmail(emailAddr) {
		logrus.WithField("email", emailAddr).Warn("Invalid email during registration")
		return nil, fmt.Errorf("invalid email: use your institutional address (%s)", validation.EmailDomain)
	}
	if !validation.ValidatePassword(password) {
		return nil, fmt.Errorf("password must be at least %d characters", validation.MinPasswordLength)
	}
	if password != confirmPassword {
		return nil, fmt.Errorf("passwords do not match")
	}

	existing, err := s.users.GetUserByEmail(ctx, emailAddr)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logrus.WithError(err).Error("Email lookup failed during registration")
		return nil, fmt.Errorf("failed to check email: %v", err)
	}
	if existing != nil {
		logrus.WithField("email", emailAddr).Warn("Email already registered")
		return nil, fmt.Errorf("email already registered")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:       models.NewUserID(),
		Email:    emailAddr,
		Password: hashed,
		Name:     name,
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	public := user.Public()
	if err := s.sessions.SetCurrentUser(ctx, public); err != nil {
		logrus.WithError(err).Warn("Failed to open session after registration")
	}

	logrus.WithField("userID", user.ID).Info("User registered successfully")
	return &public, nil
}

// Login checks the credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*models.PublicUser, error) {
	logrus.WithField("email", emailAddr).Info("Authenticating user")

	if emailAddr == "" || password == "" {
		return nil, fmt.Errorf("missing required fields")
	}

	user, err := s.users.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		logrus.WithField("email", emailAddr).Warn("User not found")
		return nil, fmt.Errorf("incorrect email or password")
	}
	if !s.hasher.Compare(user.Password, password) {
		logrus.WithField("email", emailAddr).Warn("Invalid credentials")
		return nil, fmt.Errorf("incorrect email or password")
	}

	public := user.Public()
	if err := s.sessions.SetCurrentUser(ctx, public); err != nil {
		logrus.WithError(err).Warn("Failed to open session after login")
	}

	logrus.WithField("userID", user.ID).Info("User authenticated successfully")
	return &public, nil
}

// Logout clears the user's session record.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.sessions.ClearCurrentUser(ctx, userID)
}

// CurrentUser returns the session record, falling back to the user
// store when no session copy exists.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.PublicUser, error) {
	if session, err := s.sessions.GetCurrentUser(ctx, userID); err == nil {
		return session, nil
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	public := user.Public()
	return &public, nil
}

// GetUser retrieves a single account.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile merges a partial profile update into the persisted user
// and refreshes the session copy. The stored password is preserved.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update models.UserUpdate) (*models.PublicUser, error) {
	logrus.WithField("userID", userID).Info("Updating user profile")

	// Profile updates never carry a password; the reset flow is the only
	// writer of that field.
	update.Password = nil

	user, err := s.users.UpdateUser(ctx, userID, update)
	if err != nil {
		logrus.WithError(err).Error("Failed to update user")
		return nil, fmt.Errorf("failed to update user: %v", err)
	}

	public := user.Public()
	if err := s.sessions.SetCurrentUser(ctx, public); err != nil {
		logrus.WithError(err).Warn("Failed to refresh session copy")
	}
	return &public, nil
}

// RequestPasswordReset generates a reset token for a registered email
// and hands it to the notifier. Unknown emails produce no token and no
// store write.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return "", fmt.Errorf("no account found with this email")
	}

	token := models.PasswordResetToken{
		Token:     newResetToken(),
		ExpiresAt: time.Now().Add(ResetTokenTTL),
	}
	if err := s.tokens.SaveResetToken(ctx, emailAddr, token); err != nil {
		return "", fmt.Errorf("failed to save reset token: %v", err)
	}

	if err := s.notifier.PasswordReset(user.Email, token.Token); err != nil {
		logrus.WithError(err).Error("Failed to send password reset notification")
	}

	logrus.WithField("email", emailAddr).Info("Password reset token generated")
	return token.Token, nil
}

// VerifyResetToken reports whether the token matches the active one for
// the email and has not expired.
func (s *AuthService) VerifyResetToken(ctx context.Context, emailAddr, token string) bool {
	stored, err := s.tokens.GetResetToken(ctx, emailAddr)
	if err != nil {
		return false
	}
	if stored.Token != token {
		return false
	}
	return !stored.Expired(time.Now())
}

// ResetPassword consumes a valid token and writes the new password.
func (s *AuthService) ResetPassword(ctx context.Context, emailAddr, token, newPassword string) error {
	if !s.VerifyResetToken(ctx, emailAddr, token) {
		return fmt.Errorf("invalid or expired reset token")
	}
	if !validation.ValidatePassword(newPassword) {
		return fmt.Errorf("password must be at least %d characters", validation.MinPasswordLength)
	}

	user, err := s.users.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("no account found with this email")
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	if _, err := s.users.UpdateUser(ctx, user.ID, models.UserUpdate{Password: &hashed}); err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}

	if err := s.tokens.DeleteResetToken(ctx, emailAddr); err != nil {
		logrus.WithError(err).Warn("Failed to clear consumed reset token")
	}

	logrus.WithField("email", emailAddr).Info("Password reset completed")
	return nil
}

// EnsureAdminUser bootstraps the fixed admin account when no stored
// user carries the admin flag. Safe to call multiple times.
func (s *AuthService) EnsureAdminUser(ctx context.Context) error {
	users, err := s.users.GetUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for admin user: %v", err)
	}
	for i := range users {
		if users[i].IsAdmin {
			return nil
		}
	}

	hashed, err := s.hasher.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %v", err)
	}

	admin := &models.User{
		ID:       models.NewUserID(),
		Email:    adminEmail,
		Password: hashed,
		Name:     adminName,
		IsAdmin:  true,
	}
	if err := s.users.SaveUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %v", err)
	}

	logrus.WithField("email", adminEmail).Info("Bootstrap admin user created")
	return nil
}

// newResetToken builds a random two-segment base36 string.
func newResetToken() string {
	return strconv.FormatUint(rand.Uint64(), 36) + strconv.FormatUint(rand.Uint64(), 36)
}

// IsNotFound reports whether err means a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
