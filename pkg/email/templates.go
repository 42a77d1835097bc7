package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Tags used for outbound email classification and dev-sender filenames.
const (
	TagVerificationOTP = "verification-otp"
	TagPasswordReset   = "password-reset"
)

var verificationOTPTmpl = template.Must(template.New("verification-otp").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .otp-box { background: white; border: 2px solid #667eea; padding: 20px; text-align: center; border-radius: 10px; margin: 20px 0; }
    .otp-code { font-size: 36px; font-weight: bold; color: #667eea; letter-spacing: 8px; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>&#128278; Contexta</h1>
      <h2>Verify Your Account</h2>
    </div>
    <div class="content">
      <p>Hello {{.Name}},</p>
      <p>Welcome to Contexta! To complete your registration, please verify your email address using the OTP code below:</p>
      <div class="otp-box">
        <div class="otp-code">{{.Code}}</div>
        <p><strong>This code expires in {{.ExpiresIn}}</strong></p>
      </div>
      <p>If you didn't create this account, please ignore this email.</p>
      <div class="footer">
        <p>Thank you for choosing Contexta - Your Smart Bookmark Manager</p>
      </div>
    </div>
  </div>
</body>
</html>`))

var passwordResetTmpl = template.Must(template.New("password-reset").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .button { display: inline-block; background: #667eea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
    .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>&#128278; Contexta</h1>
      <h2>Reset Your Password</h2>
    </div>
    <div class="content">
      <p>Hello {{.Name}},</p>
      <p>We received a request to reset your Contexta password. Click the button below to choose a new one:</p>
      <p style="text-align: center;"><a class="button" href="{{.ResetURL}}">Reset Password</a></p>
      <p><strong>This link expires in {{.ExpiresIn}}.</strong></p>
      <p>If you didn't request a password reset, you can safely ignore this email; your password will not change.</p>
      <div class="footer">
        <p>Thank you for choosing Contexta - Your Smart Bookmark Manager</p>
      </div>
    </div>
  </div>
</body>
</html>`))

// VerificationOTPEmail renders the signup verification email carrying the
// one-time code.
func VerificationOTPEmail(sendTo, name, code string, expiresIn time.Duration) (SendEmailParams, error) {
	var sb strings.Builder
	err := verificationOTPTmpl.Execute(&sb, struct {
		Name      string
		Code      string
		ExpiresIn string
	}{Name: name, Code: code, ExpiresIn: humanDuration(expiresIn)})
	if err != nil {
		return SendEmailParams{}, fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	return SendEmailParams{
		SendTo:   sendTo,
		Subject:  "Verify Your Contexta Account",
		BodyHTML: sb.String(),
		Tag:      TagVerificationOTP,
	}, nil
}

// PasswordResetEmail renders the password reset email linking to the
// frontend reset page.
func PasswordResetEmail(sendTo, name, resetURL string, expiresIn time.Duration) (SendEmailParams, error) {
	var sb strings.Builder
	err := passwordResetTmpl.Execute(&sb, struct {
		Name      string
		ResetURL  string
		ExpiresIn string
	}{Name: name, ResetURL: resetURL, ExpiresIn: humanDuration(expiresIn)})
	if err != nil {
		return SendEmailParams{}, fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	return SendEmailParams{
		SendTo:   sendTo,
		Subject:  "Reset Your Contexta Password",
		BodyHTML: sb.String(),
		Tag:      TagPasswordReset,
	}, nil
}

// humanDuration formats a duration the way a human would write it in an
// email: "10 minutes", "1 hour".
func humanDuration(d time.Duration) string {
	if d < time.Hour {
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	h := int(d.Hours())
	if h == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", h)
}
