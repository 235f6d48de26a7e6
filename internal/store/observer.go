package store

import "time"

// Observer records store operation metrics. The implementation is
// provided by the metrics package to break the import cycle between
// store and metrics.
type Observer interface {
	// ObserveOperation records one top-level store call:
	// "save", "list", "update", "delete", "restore", "empty_trash".
	ObserveOperation(operation string, duration time.Duration, err error)

	// ObserveOrphanDropped records a record excluded from a listing
	// because its media file is missing.
	ObserveOrphanDropped()

	// ObserveMalformedSidecar records a sidecar skipped because its
	// JSON could not be parsed or validated.
	ObserveMalformedSidecar()

	// ObserveListingSize records the record count of a listing.
	ObserveListingSize(count int)

	// ObserveTrashMove records one file moved in the given direction,
	// "delete" or "restore".
	ObserveTrashMove(direction string)

	// ObservePurge records a trash purge.
	ObservePurge()
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, time.Duration, error) {}
func (nopObserver) ObserveOrphanDropped()                         {}
func (nopObserver) ObserveMalformedSidecar()                      {}
func (nopObserver) ObserveListingSize(int)                        {}
func (nopObserver) ObserveTrashMove(string)                       {}
func (nopObserver) ObservePurge()                                 {}
