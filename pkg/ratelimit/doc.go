// Package ratelimit implements sliding window rate limiting for abuse-prone
// endpoints such as OTP resends and password reset requests.
//
// The limiter tracks individual request timestamps within a moving time
// window, which gives exact limits at the cost of storing one entry per
// request. Two storage backends are provided: an in-memory store for single
// instance deployments and tests, and a Redis store for deployments with
// more than one replica.
//
// Basic usage:
//
//	store := ratelimit.NewMemoryStore()
//	limiter, err := ratelimit.NewSlidingWindow(store, 3, 10*time.Minute)
//	if err != nil {
//		return err
//	}
//
//	r.Use(ratelimit.Middleware(limiter, ratelimit.ClientIP))
//
// The middleware fails open: when the store is unreachable the request is
// allowed through rather than turning a storage outage into an API outage.
package ratelimit
