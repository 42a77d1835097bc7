package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contexta-app/contexta/pkg/cookie"
	"github.com/contexta-app/contexta/pkg/jwt"
	"github.com/contexta-app/contexta/pkg/logger"
	"github.com/contexta-app/contexta/pkg/ratelimit"
)

// Router mounts the auth endpoints. The limiter throttles the two endpoints
// that trigger outbound email per client IP; pass nil to disable throttling.
func Router(svc *Service, gate *Gate, codec *jwt.Codec, cookies *cookie.Manager, limiter ratelimit.Limiter, log *slog.Logger) chi.Router {
	if log == nil {
		log = slog.Default()
	}

	h := &handlers{
		svc:        svc,
		cookies:    cookies,
		accessTTL:  codec.AccessTTL(),
		refreshTTL: codec.RefreshTTL(),
		log:        log.With(logger.Component("auth.http")),
	}

	r := chi.NewRouter()

	r.Post("/signup", h.signup)
	r.Post("/verify-otp", h.verifyOTP)
	r.Post("/login", h.login)
	r.Post("/reset-password", h.resetPassword)

	throttled := func(next http.HandlerFunc) http.Handler {
		if limiter == nil {
			return next
		}
		mw := ratelimit.Middleware(limiter,
			ratelimit.Composite(ratelimit.ClientIP, ratelimit.Path),
			ratelimit.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, result *ratelimit.Result) {
				respondError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			}),
		)
		return mw(next)
	}

	r.Method(http.MethodPost, "/resend-otp", throttled(h.resendOTP))
	r.Method(http.MethodPost, "/forgot-password", throttled(h.forgotPassword))

	r.Group(func(r chi.Router) {
		r.Use(Middleware(gate, cookies))
		r.Post("/logout", h.logout)
		r.Get("/me", h.me)
	})

	return r
}
