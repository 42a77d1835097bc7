// Package cookie manages the HttpOnly cookies that transport Contexta
// session tokens between browser and backend.
//
// A Manager applies consistent attributes (Path, Domain, Secure, HttpOnly,
// SameSite=Strict) to every cookie it writes. SetPair and ClearPair cover
// the two cookies the auth flow owns: accessToken and refreshToken. The
// max-age of each cookie tracks the lifetime of the token inside it.
package cookie
