// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request IDs, request logging, CORS, New Relic tracing,
// panic recovery, and the guards in front of the signup route
// (allowed methods, store readiness).
package middleware
