// Package redis provides the Redis connection helpers used by the rate
// limiter: a retrying Connect, environment-driven Config, and a Ping-based
// healthcheck for readiness probes.
package redis
