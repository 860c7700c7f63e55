package helpers

// ContextKey is a type for creating context keys
type ContextKey string

// ContextKeyIsolation is a specific key for identifying the isolation context added to a request context
var ContextKeyIsolation = ContextKey("isolation_context")

// ContextKeyRequestID is a specific key for identifying an inbound "request_id" added to the http request
var ContextKeyRequestID = ContextKey("request_id")
