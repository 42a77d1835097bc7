// Package jwt implements the session token codec used by the Contexta
// authentication flow.
//
// The implementation focuses on the HS256 (HMAC-SHA256) algorithm. A Codec
// signs two kinds of tokens with distinct secrets: a short-lived access token
// authorizing individual requests and a long-lived refresh token used to mint
// new pairs without re-authentication. Both carry the user id and email.
//
// Verification is purely cryptographic and has no side effects. Parse
// failures collapse into exactly two sentinel errors: ErrExpiredToken for a
// well-signed token past its expiry, and ErrInvalidToken for everything else
// (malformed structure, bad signature, unexpected algorithm). Callers must
// not be able to learn anything else about why a token was rejected.
//
// # Usage
//
//	codec, err := jwt.New(accessSecret, refreshSecret)
//	if err != nil {
//	    // handle error
//	}
//
//	pair, err := codec.Issue(jwt.Identity{ID: "123", Email: "a@b.c"})
//
//	identity, err := codec.ParseAccess(pair.AccessToken)
//	if errors.Is(err, jwt.ErrExpiredToken) {
//	    // try the refresh token
//	}
package jwt
