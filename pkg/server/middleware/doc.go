// Package middleware holds the HTTP middleware of the SubStack server:
// request ids, panic recovery, Prometheus instrumentation and bearer token
// authentication.
package middleware
