// Package metadata defines the JSON sidecar document stored alongside
// each media file and validated on read.
//
// Documents are discriminated by their "type" field (image, video or
// link). Unrecognized fields are preserved across rewrites so older
// sidecars written by newer versions of the application keep their
// data.
package metadata
