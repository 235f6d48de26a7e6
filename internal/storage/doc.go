// Package storage resolves the on-disk layout of the content store.
//
// A Context carries the storage root and the four directories derived
// from it (images/, metadata/ and their .trash mirrors) plus the path
// derivation rules for media files, sidecars and auxiliary assets. The
// layout is scaffolded once when the Context is constructed.
package storage
