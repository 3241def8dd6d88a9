package repository

import (
	"context"

	"flightreport-ingestor/internal/domain/entity"
)

// FlightRecordRepository archives extracted records in a downstream store.
// Archiving is optional and best-effort; it never gates the export.
type FlightRecordRepository interface {
	Archive(ctx context.Context, records []*entity.FlightRecord) error
}
