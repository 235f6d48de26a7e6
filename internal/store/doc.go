// Package store implements the local content store: persisting media
// bytes and metadata sidecars, listing them back into self-consistent
// records, and soft-delete with restore and purge.
//
// The store is stateless between calls and carries no locks. Concurrent
// writes to the same id race; the last sidecar write wins. Id collision
// is avoided by construction, not interlock. Every partial failure is
// absorbed by the orphan-drop rule during listing: the user-visible
// effect is always "item missing", never "item corrupted".
package store
