// Package middleware provides the gin middleware stack for the tool API.
//
//   - RequestID: X-Request-ID assignment and propagation
//   - Logger: one zap line per request
//   - CORS: cross-origin access for browser clients
//   - RateLimit: per-IP token buckets, idle clients swept after IdleTTL
//   - GlobalRateLimit: a single bucket shared by all clients
//
// Example Usage:
//
//	router.Use(middleware.RequestID())
//	router.Use(middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
