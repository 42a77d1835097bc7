package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/contexta-app/contexta/pkg/cookie"
	"github.com/contexta-app/contexta/pkg/logger"
)

type handlers struct {
	svc        *Service
	cookies    *cookie.Manager
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *slog.Logger
}

func (h *handlers) signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.svc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respondError(w, http.StatusConflict, "An account with this email already exists.")
			return
		}
		h.serverError(w, r, "signup failed", err)
		return
	}

	respondCreated(w, "Account created. A verification code has been sent to your email.", map[string]any{
		"email": user.Email,
	})
}

func (h *handlers) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, pair, err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, ErrInvalidOrExpiredOTP) {
			respondError(w, http.StatusBadRequest, "Invalid or expired verification code.")
			return
		}
		h.serverError(w, r, "otp verification failed", err)
		return
	}

	h.cookies.SetPair(w, pair.AccessToken, pair.RefreshToken, h.accessTTL, h.refreshTTL)
	respondOK(w, "Email verified successfully.", map[string]any{"user": user})
}

func (h *handlers) resendOTP(w http.ResponseWriter, r *http.Request) {
	var req ResendOTPRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.svc.ResendOTP(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			respondError(w, http.StatusNotFound, "No account found with this email.")
		case errors.Is(err, ErrAlreadyVerified):
			respondError(w, http.StatusBadRequest, "Email is already verified. Please login.")
		default:
			h.serverError(w, r, "otp resend failed", err)
		}
		return
	}

	respondOK(w, "A new verification code has been sent to your email.", nil)
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, pair, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respondError(w, http.StatusUnauthorized, "Invalid email or password.")
		case errors.Is(err, ErrNotVerified):
			// Distinct signal so the client can route into the OTP flow
			// instead of showing a generic failure.
			writeJSON(w, http.StatusForbidden, response{
				Success: false,
				Message: "Please verify your email to continue.",
				Data: map[string]any{
					"requiresVerification": true,
					"email":                user.Email,
				},
			})
		default:
			h.serverError(w, r, "login failed", err)
		}
		return
	}

	h.cookies.SetPair(w, pair.AccessToken, pair.RefreshToken, h.accessTTL, h.refreshTTL)
	respondOK(w, "Login successful.", map[string]any{"user": user})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. Please login again.")
		return
	}

	if err := h.svc.Logout(r.Context(), user.ID); err != nil {
		h.serverError(w, r, "logout failed", err)
		return
	}

	h.cookies.ClearPair(w)
	respondOK(w, "Logged out successfully.", nil)
}

func (h *handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "No account found with this email.")
			return
		}
		h.serverError(w, r, "password reset request failed", err)
		return
	}

	respondOK(w, "A password reset link has been sent to your email.", nil)
}

func (h *handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidOrExpiredResetToken) {
			respondError(w, http.StatusBadRequest, "Invalid or expired reset token.")
			return
		}
		h.serverError(w, r, "password reset failed", err)
		return
	}

	respondOK(w, "Password reset successful. Please login with your new password.", nil)
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Access denied. Please login again.")
		return
	}

	respondOK(w, "", map[string]any{"user": user})
}

func (h *handlers) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log.ErrorContext(r.Context(), msg, logger.Error(err))
	respondError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
