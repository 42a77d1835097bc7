// Package mongo owns the MongoDB connection lifecycle for the Contexta
// backend: connect with retries and pool limits, explicit Close, and a
// Ping-based healthcheck. The returned client is injected into whatever
// needs persistence; no package-level connection state exists.
package mongo
