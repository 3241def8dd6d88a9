package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport is a reference-data row used to enrich records with airport names.
type Airport struct {
	ID        uint
	IATA      string
	ICAO      string
	Name      string
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
