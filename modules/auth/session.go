package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/contexta-app/contexta/pkg/cookie"
	"github.com/contexta-app/contexta/pkg/jwt"
	"github.com/contexta-app/contexta/pkg/logger"
)

// SessionStatus classifies the outcome of a session evaluation.
type SessionStatus int

const (
	// SessionRejected means the request carries no usable session.
	SessionRejected SessionStatus = iota

	// SessionAuthenticated means the access token was valid as-is.
	SessionAuthenticated

	// SessionRotated means the access token had expired but the refresh
	// token matched the stored value, so a fresh pair was issued and
	// persisted. The caller must deliver Pair to the client.
	SessionRotated
)

// SessionResult is the explicit outcome of evaluating a request's tokens.
// The decision carries everything the HTTP boundary needs; it never touches
// cookies or response writers itself.
type SessionResult struct {
	Status SessionStatus
	User   *User

	// Pair holds the freshly issued tokens when Status is SessionRotated.
	Pair jwt.Pair
}

// Gate makes the per-request session decision: validate the access token,
// transparently rotate via the refresh token on expiry, reject otherwise.
type Gate struct {
	storage Storage
	codec   *jwt.Codec
	log     *slog.Logger
}

// NewGate assembles the session gate.
func NewGate(storage Storage, codec *jwt.Codec, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{
		storage: storage,
		codec:   codec,
		log:     log.With(logger.Component("auth.session")),
	}
}

// Evaluate runs the session state machine over the raw cookie values.
// Every failure collapses into SessionRejected; the reason is deliberately
// not exposed to the client so token probing learns nothing.
func (g *Gate) Evaluate(ctx context.Context, accessToken, refreshToken string) SessionResult {
	rejected := SessionResult{Status: SessionRejected}

	if accessToken == "" {
		return rejected
	}

	id, err := g.codec.ParseAccess(accessToken)
	if err == nil {
		user, err := g.storage.GetUserByID(ctx, id.ID)
		if err != nil || !user.IsVerified {
			return rejected
		}
		return SessionResult{Status: SessionAuthenticated, User: user}
	}

	// Access token unusable; a valid matching refresh token can still
	// rescue the session via rotation.
	if refreshToken == "" {
		return rejected
	}

	rid, err := g.codec.ParseRefresh(refreshToken)
	if err != nil {
		return rejected
	}

	user, err := g.storage.GetUserByID(ctx, rid.ID)
	if err != nil || !user.IsVerified {
		return rejected
	}

	// A rotation replay carries a structurally valid refresh token that no
	// longer matches the stored value. Reject it.
	if subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(refreshToken)) != 1 {
		return rejected
	}

	pair, err := g.codec.Issue(jwt.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		g.log.ErrorContext(ctx, "token issuance failed during rotation", logger.Error(err))
		return rejected
	}

	if err := g.storage.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		g.log.ErrorContext(ctx, "failed to persist rotated refresh token", logger.Error(err))
		return rejected
	}
	user.RefreshToken = pair.RefreshToken

	return SessionResult{Status: SessionRotated, User: user, Pair: pair}
}

// EvaluateOptional attaches an identity only when the access token is valid
// as-is. It never rotates and never rejects; anonymous callers just proceed
// without a user.
func (g *Gate) EvaluateOptional(ctx context.Context, accessToken string) (*User, bool) {
	if accessToken == "" {
		return nil, false
	}

	id, err := g.codec.ParseAccess(accessToken)
	if err != nil {
		return nil, false
	}

	user, err := g.storage.GetUserByID(ctx, id.ID)
	if err != nil || !user.IsVerified {
		return nil, false
	}
	return user, true
}

// Middleware enforces authentication: it translates the Gate's decision
// into cookies, request context and a uniform 401.
func Middleware(gate *Gate, cookies *cookie.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken, _ := cookies.Get(r, cookie.AccessTokenCookie)
			refreshToken, _ := cookies.Get(r, cookie.RefreshTokenCookie)

			result := gate.Evaluate(r.Context(), accessToken, refreshToken)
			switch result.Status {
			case SessionRotated:
				cookies.SetPair(w, result.Pair.AccessToken, result.Pair.RefreshToken,
					gate.codec.AccessTTL(), gate.codec.RefreshTTL())
			case SessionRejected:
				respondError(w, http.StatusUnauthorized, "Access denied. Please login again.")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), result.User)))
		})
	}
}

// OptionalMiddleware attaches the user when a valid session is present and
// proceeds anonymously otherwise.
func OptionalMiddleware(gate *Gate, cookies *cookie.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken, _ := cookies.Get(r, cookie.AccessTokenCookie)
			if user, ok := gate.EvaluateOptional(r.Context(), accessToken); ok {
				r = r.WithContext(ContextWithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}
