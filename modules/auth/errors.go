package auth

import "errors"

var (
	ErrEmailTaken                 = errors.New("email is already registered")
	ErrUserNotFound               = errors.New("user not found")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrNotVerified                = errors.New("email is not verified")
	ErrAlreadyVerified            = errors.New("email is already verified")
	ErrInvalidOrExpiredOTP        = errors.New("invalid or expired verification code")
	ErrInvalidOrExpiredResetToken = errors.New("invalid or expired reset token")
	ErrUnauthenticated            = errors.New("unauthenticated")
)
