// Package middleware provides the chi middleware stack of the baasdoc
// server. Every middleware that rejects a request answers with a declared
// response code rendered as the documented error body, so the behavior on
// the wire matches the generated OpenAPI document.
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID(middleware.RequestIDConfig{}))
//	r.Use(middleware.Recovery(middleware.RecoveryConfig{Logger: logger}))
//	r.Use(middleware.AccessLog(middleware.AccessLogConfig{Logger: logger}))
//	r.Use(middleware.Language(catalog))
//
// # Request ID
//
// RequestID sets the X-Request-ID header documented on every response. IDs
// are UUID v7 by default.
//
// # Request body checks
//
// ContentTypeCheck answers 415 when a body-carrying request does not send an
// allowed media type. RequestSizeLimit caps the body size; handlers see an
// *http.MaxBytesError when reading past the limit.
package middleware
