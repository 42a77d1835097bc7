package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/contexta-app/contexta/pkg/email"
	"github.com/contexta-app/contexta/pkg/jwt"
	"github.com/contexta-app/contexta/pkg/logger"
	"github.com/contexta-app/contexta/pkg/otp"
)

// Service implements the auth flow business rules. Persistence and mail
// delivery are delegated to the injected collaborators.
type Service struct {
	cfg     Config
	storage Storage
	codec   *jwt.Codec
	mailer  email.EmailSender
	log     *slog.Logger
}

// NewService assembles the auth service.
func NewService(cfg Config, storage Storage, codec *jwt.Codec, mailer email.EmailSender, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cfg:     cfg,
		storage: storage,
		codec:   codec,
		mailer:  mailer,
		log:     log.With(logger.Component("auth")),
	}
}

// Signup creates an unverified user and emails a verification code. No
// session is issued until the code is confirmed.
func (s *Service) Signup(ctx context.Context, name, emailAddr, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        emailAddr,
		Name:         name,
		PasswordHash: string(hash),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueOTP(ctx, user); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user signed up", logger.UserID(user.ID), logger.Email(user.Email))
	return user, nil
}

// VerifyOTP confirms the emailed code, marks the user verified and
// establishes a session.
func (s *Service) VerifyOTP(ctx context.Context, emailAddr, code string) (*User, jwt.Pair, error) {
	user, err := s.storage.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, jwt.Pair{}, ErrInvalidOrExpiredOTP
		}
		return nil, jwt.Pair{}, err
	}

	if !otp.Matches(code, user.OTPCode) || time.Now().After(user.OTPExpiresAt) {
		return nil, jwt.Pair{}, ErrInvalidOrExpiredOTP
	}

	if err := s.storage.MarkVerified(ctx, user.ID); err != nil {
		return nil, jwt.Pair{}, err
	}
	user.IsVerified = true
	user.OTPCode = ""
	user.OTPExpiresAt = time.Time{}

	pair, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, jwt.Pair{}, err
	}

	s.log.InfoContext(ctx, "email verified", logger.UserID(user.ID))
	return user, pair, nil
}

// ResendOTP regenerates the verification code and re-delivers it, replacing
// the prior one.
func (s *Service) ResendOTP(ctx context.Context, emailAddr string) error {
	user, err := s.storage.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	return s.issueOTP(ctx, user)
}

// Login checks the credentials and establishes a session. Unverified users
// get ErrNotVerified so the caller can route them back into the OTP flow
// instead of showing a generic failure.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*User, jwt.Pair, error) {
	user, err := s.storage.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, jwt.Pair{}, ErrInvalidCredentials
		}
		return nil, jwt.Pair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, jwt.Pair{}, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return user, jwt.Pair{}, ErrNotVerified
	}

	pair, err := s.establishSession(ctx, user)
	if err != nil {
		return nil, jwt.Pair{}, err
	}

	s.log.InfoContext(ctx, "user logged in", logger.UserID(user.ID))
	return user, pair, nil
}

// Logout revokes the stored refresh token, ending the session server side.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.storage.SetRefreshToken(ctx, userID, ""); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "user logged out", logger.UserID(userID))
	return nil
}

// ForgotPassword issues a single-use reset token and emails a reset link.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.storage.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	token, err := otp.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("auth: failed to generate reset token: %w", err)
	}

	if err := s.storage.SetResetToken(ctx, user.ID, token, time.Now().Add(s.cfg.ResetTokenTTL)); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.AppURL, token)
	params, err := email.PasswordResetEmail(user.Email, user.Name, resetURL, s.cfg.ResetTokenTTL)
	if err != nil {
		return err
	}
	if err := s.mailer.SendEmail(ctx, params); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "password reset requested", logger.UserID(user.ID))
	return nil
}

// ResetPassword consumes the reset token and replaces the password. The
// storage update also clears the refresh token, so every existing session
// has to log in again with the new password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.storage.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidOrExpiredResetToken
		}
		return err
	}

	if !otp.Matches(token, user.ResetToken) || time.Now().After(user.ResetExpiresAt) {
		return ErrInvalidOrExpiredResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("auth: failed to hash password: %w", err)
	}

	if err := s.storage.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "password reset", logger.UserID(user.ID))
	return nil
}

// Me returns the current user's record.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	return s.storage.GetUserByID(ctx, userID)
}

// issueOTP generates a fresh code, stores it and mails it. Delivery failure
// is fatal for the request; the caller may simply retry.
func (s *Service) issueOTP(ctx context.Context, user *User) error {
	code, err := otp.GenerateCode(otp.CodeLength)
	if err != nil {
		return fmt.Errorf("auth: failed to generate otp: %w", err)
	}

	if err := s.storage.SetOTP(ctx, user.ID, code, time.Now().Add(s.cfg.OTPTTL)); err != nil {
		return err
	}

	params, err := email.VerificationOTPEmail(user.Email, user.Name, code, s.cfg.OTPTTL)
	if err != nil {
		return err
	}
	if err := s.mailer.SendEmail(ctx, params); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "verification code sent", logger.UserID(user.ID))
	return nil
}

// establishSession mints a token pair and persists the refresh token as the
// single recognized value for the user.
func (s *Service) establishSession(ctx context.Context, user *User) (jwt.Pair, error) {
	pair, err := s.codec.Issue(jwt.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return jwt.Pair{}, err
	}

	if err := s.storage.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return jwt.Pair{}, err
	}

	user.RefreshToken = pair.RefreshToken
	return pair, nil
}
