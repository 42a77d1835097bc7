package auth

import "time"

// User is the credential record persisted for every account. Secrets and
// transient verification state never leave the server: only the public
// profile fields are serialized into responses.
//
// At most one refresh token is recognized per user; issuing a new one
// invalidates the prior value by overwrite.
type User struct {
	ID           string `bson:"_id" json:"id"`
	Email        string `bson:"email" json:"email"`
	Name         string `bson:"name" json:"name"`
	PasswordHash string `bson:"password_hash" json:"-"`
	IsVerified   bool   `bson:"is_verified" json:"isVerified"`

	// RefreshToken mirrors the authoritative copy of the current refresh
	// token so it can be revoked server side by replacement.
	RefreshToken string `bson:"refresh_token,omitempty" json:"-"`

	// OTP fields are set at signup/resend and cleared once verified.
	OTPCode      string    `bson:"otp_code,omitempty" json:"-"`
	OTPExpiresAt time.Time `bson:"otp_expires_at,omitempty" json:"-"`

	// Reset fields are set by forgot-password and cleared on use.
	ResetToken     string    `bson:"reset_token,omitempty" json:"-"`
	ResetExpiresAt time.Time `bson:"reset_expires_at,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
