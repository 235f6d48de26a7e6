// Package filesystem provides the file move, copy and purge primitives
// the content store is built on, with hooks for operation metrics.
//
// Moves prefer an atomic rename and fall back to copy-then-remove when
// the rename crosses filesystems. No operation retries; each attempts
// once and reports.
package filesystem
