package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"math/big"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// ResetTokenBytes is the entropy of a password reset token before hex encoding.
const ResetTokenBytes = 32

// GenerateCode creates a cryptographically secure numeric one-time code.
// Leading zeros are preserved, so the result is always exactly n digits.
func GenerateCode(n int) (string, error) {
	if n < 1 {
		return "", ErrInvalidCodeLength
	}

	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", errors.Join(ErrFailedToGenerateCode, err)
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}

// GenerateResetToken creates an opaque single-use token for password reset
// links: 32 random bytes hex-encoded (256 bits of entropy).
func GenerateResetToken() (string, error) {
	buf := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrFailedToGenerateCode, err)
	}
	return hex.EncodeToString(buf), nil
}

// Matches performs constant-time comparison of a submitted code or token
// against the stored value. Comparison time must not reveal where the first
// difference occurs.
func Matches(submitted, stored string) bool {
	if submitted == "" || stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
