// Package email sends Contexta's transactional mail: the signup
// verification OTP and the password reset link.
//
// EmailSender is the single seam the auth flow depends on. Two
// implementations are provided: a Postmark-backed client for production and
// a DevSender that writes messages to disk for local development. Template
// rendering lives here too so callers hand over data, not markup.
package email
