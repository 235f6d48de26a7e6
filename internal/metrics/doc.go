// Package metrics declares the Prometheus collectors for the content
// store and the observer implementations that feed them from the
// filesystem and store packages.
//
// All collectors are registered via promauto at package init; call
// InitializeMetrics once at startup to pre-populate label combinations.
package metrics
