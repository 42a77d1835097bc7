package otp

import "errors"

var (
	ErrInvalidCodeLength    = errors.New("otp: code length must be at least 1")
	ErrFailedToGenerateCode = errors.New("otp: failed to generate random code")
)
