package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Names of the two session cookies the auth flow sets.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Manager writes and reads the HTTP cookies that carry session tokens.
// Tokens are already signed JWTs, so cookies are stored as plain values;
// the manager's job is enforcing consistent transport attributes.
type Manager struct {
	defaults Options
}

// New creates a cookie manager. Defaults are HttpOnly, SameSite=Strict and
// Path=/ so session cookies are never readable from scripts and never sent
// cross-site.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Set writes a cookie with the manager defaults applied.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get returns the value of the named cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete expires the named cookie immediately.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

// SetPair writes both session cookies. Max-age mirrors each token's lifetime
// so the browser drops the cookie when the token inside it dies.
func (m *Manager) SetPair(w http.ResponseWriter, accessToken, refreshToken string, accessTTL, refreshTTL time.Duration) {
	m.Set(w, AccessTokenCookie, accessToken, WithMaxAge(int(accessTTL.Seconds())))
	m.Set(w, RefreshTokenCookie, refreshToken, WithMaxAge(int(refreshTTL.Seconds())))
}

// ClearPair expires both session cookies.
func (m *Manager) ClearPair(w http.ResponseWriter) {
	m.Delete(w, AccessTokenCookie)
	m.Delete(w, RefreshTokenCookie)
}
