package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// JWT header constants required by RFC 7519
const (
	HeaderType      = "JWT"
	HeaderAlgorithm = "HS256" // HMAC-SHA256 chosen for security/performance balance
)

// Default token lifetimes. Access tokens are short-lived because they are
// stateless; refresh tokens are long-lived but revocable server-side.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Header represents the JWT header as defined in RFC 7515
type Header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Identity is the subject a session token is issued for.
type Identity struct {
	ID    string
	Email string
}

// Claims is the payload carried by both access and refresh tokens.
type Claims struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat,omitempty"` // Unix timestamp when the token was created
	ExpiresAt int64  `json:"exp,omitempty"` // Unix timestamp when the token expires
}

// Valid validates the temporal claims against current time.
// A zero expiry is treated as unset per RFC 7519 and is ignored.
func (c Claims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return ErrExpiredToken
	}
	return nil
}

// Pair holds a freshly issued access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Codec issues and verifies session token pairs using HMAC-SHA256.
// Access and refresh tokens are signed with distinct secrets so that one
// kind can never be replayed as the other.
type Codec struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// Option configures a Codec during construction.
type Option func(*Codec)

// WithAccessTTL overrides the access token lifetime.
func WithAccessTTL(ttl time.Duration) Option {
	return func(c *Codec) { c.accessTTL = ttl }
}

// WithRefreshTTL overrides the refresh token lifetime.
func WithRefreshTTL(ttl time.Duration) Option {
	return func(c *Codec) { c.refreshTTL = ttl }
}

// New creates a session token codec from the two signing secrets.
// Secrets should be at least 32 bytes for adequate security with HMAC-SHA256.
func New(accessSecret, refreshSecret string, opts ...Option) (*Codec, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, ErrMissingSigningKey
	}

	c := &Codec{
		accessKey:  []byte(accessSecret),
		refreshKey: []byte(refreshSecret),
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// AccessTTL returns the configured access token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// Issue signs a fresh access/refresh token pair for the identity.
func (c *Codec) Issue(id Identity) (Pair, error) {
	now := time.Now()

	access, err := generate(c.accessKey, Claims{
		UserID:    id.ID,
		Email:     id.Email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(c.accessTTL).Unix(),
	})
	if err != nil {
		return Pair{}, err
	}

	refresh, err := generate(c.refreshKey, Claims{
		UserID:    id.ID,
		Email:     id.Email,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(c.refreshTTL).Unix(),
	})
	if err != nil {
		return Pair{}, err
	}

	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess verifies an access token and returns the identity it carries.
// It fails with ErrExpiredToken when the signature is valid but the token is
// past its expiry, and ErrInvalidToken for every other defect.
func (c *Codec) ParseAccess(token string) (Identity, error) {
	return parse(c.accessKey, token)
}

// ParseRefresh verifies a refresh token and returns the identity it carries.
func (c *Codec) ParseRefresh(token string) (Identity, error) {
	return parse(c.refreshKey, token)
}

func generate(key []byte, claims Claims) (string, error) {
	headerJSON, err := json.Marshal(Header{Type: HeaderType, Algorithm: HeaderAlgorithm})
	if err != nil {
		return "", err
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	// Build JWT payload: base64url(header).base64url(claims)
	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + sign(key, payload), nil
}

func parse(key []byte, token string) (Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Identity{}, ErrInvalidToken
	}

	// Verify signature using constant-time comparison to prevent timing attacks
	payload := parts[0] + "." + parts[1]
	expected := sign(key, payload)
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return Identity{}, ErrInvalidToken
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return Identity{}, ErrInvalidToken
	}

	// Reject tokens using unexpected algorithms to prevent algorithm confusion attacks
	if header.Algorithm != HeaderAlgorithm {
		return Identity{}, ErrInvalidToken
	}

	claimsJSON, err := base64URLDecode(parts[1])
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return Identity{}, ErrInvalidToken
	}

	if err := claims.Valid(); err != nil {
		return Identity{}, err
	}

	return Identity{ID: claims.UserID, Email: claims.Email}, nil
}

// sign creates an HMAC-SHA256 signature for the given payload.
// Returns base64url-encoded signature as required by RFC 7515.
func sign(key []byte, payload string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}

// base64URLEncode encodes data using base64url encoding without padding.
// Padding removal is required by RFC 7515 for JWT tokens.
func base64URLEncode(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

// base64URLDecode decodes base64url-encoded data, restoring padding as needed.
// JWT tokens omit padding per RFC 7515, but Go's decoder requires it.
func base64URLDecode(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return base64.URLEncoding.DecodeString(s)
}
