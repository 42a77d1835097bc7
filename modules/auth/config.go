package auth

import "time"

// Config holds the tunables of the auth flow. Loaded from the environment
// via pkg/config.
type Config struct {
	// AppURL is the public frontend origin, used to build password reset
	// links.
	AppURL string `env:"APP_URL" envDefault:"http://localhost:5173"`

	// OTPTTL is how long an emailed verification code stays valid.
	OTPTTL time.Duration `env:"AUTH_OTP_TTL" envDefault:"10m"`

	// ResetTokenTTL is how long a password reset link stays valid.
	ResetTokenTTL time.Duration `env:"AUTH_RESET_TOKEN_TTL" envDefault:"30m"`

	// BcryptCost is the work factor for password hashing.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"12"`

	// RateLimit and RateWindow throttle OTP resends and password reset
	// requests per client IP.
	RateLimit  int           `env:"AUTH_RATE_LIMIT" envDefault:"3"`
	RateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"10m"`
}
