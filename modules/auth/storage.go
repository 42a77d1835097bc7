package auth

import (
	"context"
	"time"
)

// Storage defines the persistence operations the auth module needs. All
// mutations are single-field updates against one user record; the module
// tolerates last-write-wins races on the rotating token fields.
type Storage interface {
	// CreateUser inserts a new user. Returns ErrEmailTaken when the email
	// is already registered.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByID returns ErrUserNotFound when no user matches.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByEmail returns ErrUserNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByResetToken returns ErrUserNotFound when no user currently
	// holds the given reset token.
	GetUserByResetToken(ctx context.Context, token string) (*User, error)

	// SetOTP stores a new one-time code and its expiry, replacing any
	// previous code.
	SetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error

	// MarkVerified flips the verified flag and clears the OTP fields.
	MarkVerified(ctx context.Context, userID string) error

	// SetRefreshToken overwrites the stored refresh token. An empty token
	// clears it, revoking the session.
	SetRefreshToken(ctx context.Context, userID, token string) error

	// SetResetToken stores a new password reset token and its expiry.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error

	// UpdatePassword replaces the password hash and clears the reset token
	// and the refresh token, invalidating existing sessions.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
