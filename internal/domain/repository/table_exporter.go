package repository

import "flightreport-ingestor/internal/domain/entity"

// TableExporter writes an assembled table to a run artifact on disk.
type TableExporter interface {
	Export(table *entity.OutputTable, path string) error
	// Extension is the artifact file extension, without the dot.
	Extension() string
}
