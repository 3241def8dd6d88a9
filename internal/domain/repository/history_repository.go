package repository

import "flightreport-ingestor/internal/domain/entity"

// HistoryRepository persists the set of report filenames already processed.
// The store is append-only; deduplication happens in memory at load time.
type HistoryRepository interface {
	// Load reads the persisted history. A missing store is an empty set,
	// not an error.
	Load() (entity.HistorySet, error)
	// Append records the given filenames (base name only) as processed.
	// Called only after the run's artifact was exported successfully.
	Append(filenames []string) error
}
