package auth

import (
	"github.com/contexta-app/contexta/pkg/otp"
	"github.com/contexta-app/contexta/pkg/sanitizer"
	"github.com/contexta-app/contexta/pkg/validator"
)

// Request types carry one endpoint's input each. Validate normalizes the
// fields in place and returns validator.ValidationErrors listing every
// failed field, so nothing malformed reaches the service.

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignupRequest) Validate() error {
	r.Name = sanitizer.TrimName(r.Name)
	r.Email = sanitizer.NormalizeEmail(r.Email)

	rules := []validator.Rule{
		validator.MinLen("name", r.Name, 2),
		validator.MaxLen("name", r.Name, 50),
		validator.ValidEmail("email", r.Email),
	}
	rules = append(rules, passwordRules("password", r.Password)...)

	return validator.Apply(rules...)
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r *VerifyOTPRequest) Validate() error {
	r.Email = sanitizer.NormalizeEmail(r.Email)

	return validator.Apply(
		validator.ValidEmail("email", r.Email),
		validator.Len("otp", r.OTP, otp.CodeLength),
		validator.ValidNumericString("otp", r.OTP),
	)
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

func (r *ResendOTPRequest) Validate() error {
	r.Email = sanitizer.NormalizeEmail(r.Email)

	return validator.Apply(
		validator.ValidEmail("email", r.Email),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = sanitizer.NormalizeEmail(r.Email)

	return validator.Apply(
		validator.ValidEmail("email", r.Email),
		validator.Required("password", r.Password),
	)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	r.Email = sanitizer.NormalizeEmail(r.Email)

	return validator.Apply(
		validator.ValidEmail("email", r.Email),
	)
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (r *ResetPasswordRequest) Validate() error {
	rules := []validator.Rule{
		validator.Required("token", r.Token),
	}
	rules = append(rules, passwordRules("newPassword", r.NewPassword)...)

	return validator.Apply(rules...)
}

// passwordRules is the shared complexity policy: at least 6 characters with
// one uppercase letter, one lowercase letter and one digit.
func passwordRules(field, password string) []validator.Rule {
	return []validator.Rule{
		validator.MinLen(field, password, 6),
		validator.PasswordUppercase(field, password),
		validator.PasswordLowercase(field, password),
		validator.PasswordDigit(field, password),
	}
}
