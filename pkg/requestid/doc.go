// Package requestid attaches a correlation identifier to every HTTP request
// so log records belonging to the same interaction can be tied together.
//
// Middleware reuses a valid client-supplied "X-Request-ID" header or
// generates a UUID, stores it in the request context, and echoes it back in
// the response. LoggerExtractor plugs the stored ID into pkg/logger's
// context extractors so it appears on every log line for the request.
package requestid
