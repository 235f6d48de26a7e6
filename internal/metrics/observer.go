package metrics

import (
	"time"

	"media-board/internal/filesystem"
	"media-board/internal/store"
)

// filesystemObserver implements filesystem.Observer using the
// Prometheus metrics declared in this package.
type filesystemObserver struct{}

// NewFilesystemObserver creates an observer that records filesystem
// metrics into the collectors declared in metrics.go.
func NewFilesystemObserver() filesystem.Observer {
	return &filesystemObserver{}
}

func (o *filesystemObserver) ObserveOperation(operation string, durationSeconds float64, err error) {
	FilesystemOperationDuration.WithLabelValues(operation).Observe(durationSeconds)
	if err != nil {
		FilesystemOperationErrors.WithLabelValues(operation).Inc()
	}
}

// storeObserver implements store.Observer.
type storeObserver struct{}

// NewStoreObserver creates an observer that records store operation
// metrics.
func NewStoreObserver() store.Observer {
	return &storeObserver{}
}

func (o *storeObserver) ObserveOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (o *storeObserver) ObserveOrphanDropped() {
	StoreOrphansDropped.Inc()
}

func (o *storeObserver) ObserveMalformedSidecar() {
	StoreMalformedSidecars.Inc()
}

func (o *storeObserver) ObserveListingSize(count int) {
	StoreItemsListed.Set(float64(count))
}

func (o *storeObserver) ObserveTrashMove(direction string) {
	TrashItemsMoved.WithLabelValues(direction).Inc()
}

func (o *storeObserver) ObservePurge() {
	TrashPurgesTotal.Inc()
	TrashLastPurgeTimestamp.Set(float64(time.Now().Unix()))
}
