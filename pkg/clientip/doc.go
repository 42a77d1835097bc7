// Package clientip extracts the real client IP address from HTTP requests,
// honoring the forwarding headers set by reverse proxies and CDNs. Used to
// key rate limits so callers behind the same proxy are told apart.
package clientip
