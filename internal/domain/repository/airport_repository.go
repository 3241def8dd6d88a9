package repository

import (
	"context"

	"flightreport-ingestor/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference lookups
type AirportRepository interface {
	GetByIATA(ctx context.Context, code string) (*entity.Airport, error)
}
