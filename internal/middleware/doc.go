// Package middleware provides the HTTP request logging and Prometheus
// instrumentation wrappers for the local API server.
package middleware
