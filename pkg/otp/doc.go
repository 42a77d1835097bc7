// Package otp generates the one-time secrets used during account
// verification and password recovery: short numeric email codes and opaque
// hex reset tokens. All randomness comes from crypto/rand and all
// comparisons are constant-time.
package otp
