// Package middleware holds the global and route-specific echo middleware:
// request ids, request-scoped logging, tracing, rate limiting, entity
// resolution for id routes and the global error handler.
package middleware
