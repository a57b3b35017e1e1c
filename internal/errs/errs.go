// Package errs defines the application error types.
//
// Every error that should reach an API client is an *HTTPError. The global
// error handler logs the full error and writes only the public message,
// using the Response shape.
package errs
