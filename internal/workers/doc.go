// Package workers determines worker pool sizes from the available CPU
// count, respecting container limits via GOMAXPROCS.
//
// The listing fan-out uses ForIO since sidecar reads are I/O bound; the
// STORE_WORKERS environment variable overrides the calculation.
package workers
