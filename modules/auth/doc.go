// Package auth implements the user authentication flow: signup with email
// OTP verification, login, logout, and password recovery, all over cookie
// based JWT sessions with refresh token rotation.
//
// The module is split into three layers:
//
//   - Service holds the business rules (credential checks, OTP and reset
//     token lifecycles, session issuance) and talks to a Storage
//     implementation and a mail sender.
//
//   - Gate is the request-time session decision: given the raw access and
//     refresh tokens it returns a SessionResult that says whether the caller
//     is authenticated, authenticated with a freshly rotated token pair, or
//     rejected. Translating that result into cookies and status codes is
//     left to the HTTP middleware so the decision itself stays testable.
//
//   - Router wires the HTTP handlers, request validation, and rate limiting
//     into a chi router mountable under /api/auth.
package auth
