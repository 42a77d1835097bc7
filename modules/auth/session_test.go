package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contexta-app/contexta/modules/auth"
	"github.com/contexta-app/contexta/pkg/cookie"
	"github.com/contexta-app/contexta/pkg/jwt"
)

// sessionFixture wires a gate over an in-memory store with one verified
// user holding a freshly issued token pair.
type sessionFixture struct {
	gate    *auth.Gate
	storage *memStorage
	user    *auth.User
	pair    jwt.Pair
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctx := context.Background()

	storage := newMemStorage()
	codec := testCodec(t)
	svc := auth.NewService(testConfig(), storage, codec, &fakeMailer{}, slog.New(slog.DiscardHandler))

	stored := signupUser(t, svc, storage)
	user, pair, err := svc.VerifyOTP(ctx, stored.Email, stored.OTPCode)
	require.NoError(t, err)

	return &sessionFixture{
		gate:    auth.NewGate(storage, codec, slog.New(slog.DiscardHandler)),
		storage: storage,
		user:    user,
		pair:    pair,
	}
}

// expiredAccessToken mints an access token that is validly signed but
// already past its expiry.
func expiredAccessToken(t *testing.T, user *auth.User) string {
	t.Helper()
	expired := testCodec(t, jwt.WithAccessTTL(-time.Minute))
	pair, err := expired.Issue(jwt.Identity{ID: user.ID, Email: user.Email})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestGateEvaluate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no access token", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		result := f.gate.Evaluate(ctx, "", f.pair.RefreshToken)
		assert.Equal(t, auth.SessionRejected, result.Status)
	})

	t.Run("valid access token", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		result := f.gate.Evaluate(ctx, f.pair.AccessToken, "")
		require.Equal(t, auth.SessionAuthenticated, result.Status)
		assert.Equal(t, f.user.ID, result.User.ID)
	})

	t.Run("tampered access token without refresh", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		tampered := f.pair.AccessToken[:len(f.pair.AccessToken)-2] + "xx"
		result := f.gate.Evaluate(ctx, tampered, "")
		assert.Equal(t, auth.SessionRejected, result.Status)
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		codec := testCodec(t)
		pair, err := codec.Issue(jwt.Identity{ID: "ghost", Email: "ghost@x.com"})
		require.NoError(t, err)

		result := f.gate.Evaluate(ctx, pair.AccessToken, "")
		assert.Equal(t, auth.SessionRejected, result.Status)
	})

	t.Run("valid token for unverified user", func(t *testing.T) {
		t.Parallel()

		storage := newMemStorage()
		codec := testCodec(t)
		svc := auth.NewService(testConfig(), storage, codec, &fakeMailer{}, slog.New(slog.DiscardHandler))
		gate := auth.NewGate(storage, codec, slog.New(slog.DiscardHandler))

		stored := signupUser(t, svc, storage)
		pair, err := codec.Issue(jwt.Identity{ID: stored.ID, Email: stored.Email})
		require.NoError(t, err)

		result := gate.Evaluate(context.Background(), pair.AccessToken, "")
		assert.Equal(t, auth.SessionRejected, result.Status)
	})

	t.Run("expired access with matching refresh rotates", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		result := f.gate.Evaluate(ctx, expiredAccessToken(t, f.user), f.pair.RefreshToken)
		require.Equal(t, auth.SessionRotated, result.Status)
		assert.Equal(t, f.user.ID, result.User.ID)
		assert.NotEmpty(t, result.Pair.AccessToken)
		assert.NotEqual(t, f.pair.RefreshToken, result.Pair.RefreshToken)

		stored, err := f.storage.GetUserByID(ctx, f.user.ID)
		require.NoError(t, err)
		assert.Equal(t, result.Pair.RefreshToken, stored.RefreshToken)
	})

	t.Run("replayed refresh token after rotation is rejected", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		first := f.gate.Evaluate(ctx, expiredAccessToken(t, f.user), f.pair.RefreshToken)
		require.Equal(t, auth.SessionRotated, first.Status)

		replay := f.gate.Evaluate(ctx, expiredAccessToken(t, f.user), f.pair.RefreshToken)
		assert.Equal(t, auth.SessionRejected, replay.Status)

		// The rotated pair keeps working.
		second := f.gate.Evaluate(ctx, expiredAccessToken(t, f.user), first.Pair.RefreshToken)
		assert.Equal(t, auth.SessionRotated, second.Status)
	})

	t.Run("expired access without refresh", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		result := f.gate.Evaluate(ctx, expiredAccessToken(t, f.user), "")
		assert.Equal(t, auth.SessionRejected, result.Status)
	})

	t.Run("expired access with tampered refresh", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		tampered := f.pair.RefreshToken[:len(f.pair.RefreshToken)-2] + "xx"
		result := f.gate.Evaluate(ctx, expiredAccessToken(t, f.user), tampered)
		assert.Equal(t, auth.SessionRejected, result.Status)
	})

	t.Run("refresh token revoked by logout", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		require.NoError(t, f.storage.SetRefreshToken(ctx, f.user.ID, ""))

		result := f.gate.Evaluate(ctx, expiredAccessToken(t, f.user), f.pair.RefreshToken)
		assert.Equal(t, auth.SessionRejected, result.Status)
	})
}

func TestGateEvaluateOptional(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid token attaches user", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		user, ok := f.gate.EvaluateOptional(ctx, f.pair.AccessToken)
		require.True(t, ok)
		assert.Equal(t, f.user.ID, user.ID)
	})

	t.Run("expired token is swallowed, never rotated", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		_, ok := f.gate.EvaluateOptional(ctx, expiredAccessToken(t, f.user))
		assert.False(t, ok)

		// The stored refresh token must be untouched.
		stored, err := f.storage.GetUserByID(ctx, f.user.ID)
		require.NoError(t, err)
		assert.Equal(t, f.pair.RefreshToken, stored.RefreshToken)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		_, ok := f.gate.EvaluateOptional(ctx, "")
		assert.False(t, ok)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	cookies := cookie.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", user.Email)
		w.WriteHeader(http.StatusOK)
	})

	request := func(access, refresh string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		if access != "" {
			r.AddCookie(&http.Cookie{Name: cookie.AccessTokenCookie, Value: access})
		}
		if refresh != "" {
			r.AddCookie(&http.Cookie{Name: cookie.RefreshTokenCookie, Value: refresh})
		}
		return r
	}

	t.Run("authenticated request passes", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		handler := auth.Middleware(f.gate, cookies)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request(f.pair.AccessToken, f.pair.RefreshToken))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, f.user.Email, rec.Header().Get("X-User"))
		assert.Empty(t, rec.Result().Cookies(), "no rotation expected")
	})

	t.Run("rotation sets fresh cookie pair", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		handler := auth.Middleware(f.gate, cookies)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request(expiredAccessToken(t, f.user), f.pair.RefreshToken))

		assert.Equal(t, http.StatusOK, rec.Code)

		names := make(map[string]string)
		for _, c := range rec.Result().Cookies() {
			names[c.Name] = c.Value
		}
		assert.NotEmpty(t, names[cookie.AccessTokenCookie])
		assert.NotEmpty(t, names[cookie.RefreshTokenCookie])
		assert.NotEqual(t, f.pair.RefreshToken, names[cookie.RefreshTokenCookie])
	})

	t.Run("missing tokens rejected with uniform 401", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		handler := auth.Middleware(f.gate, cookies)(next)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request("", ""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t,
			`{"success":false,"message":"Access denied. Please login again."}`,
			rec.Body.String())
	})

	t.Run("optional middleware proceeds anonymously", func(t *testing.T) {
		t.Parallel()
		f := newSessionFixture(t)

		var sawUser bool
		open := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawUser = auth.UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		handler := auth.OptionalMiddleware(f.gate, cookies)(open)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request("", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, sawUser)

		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, request(f.pair.AccessToken, ""))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, sawUser)
	})
}
