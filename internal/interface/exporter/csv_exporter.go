package exporter

import (
	"encoding/csv"
	"fmt"
	"os"

	"flightreport-ingestor/internal/domain/entity"
	"flightreport-ingestor/pkg/logger"
)

// CSVExporter writes the run artifact as a CSV file with a header row.
type CSVExporter struct {
	logger logger.Logger
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter(log logger.Logger) *CSVExporter {
	return &CSVExporter{logger: log}
}

// Extension returns the artifact file extension
func (e *CSVExporter) Extension() string {
	return "csv"
}

// Export writes the table to path. Any failure here is fatal for the run.
func (e *CSVExporter) Export(table *entity.OutputTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush artifact %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close artifact %s: %w", path, err)
	}

	e.logger.Info("Wrote CSV artifact", "path", path, "rows", len(table.Rows), "columns", len(table.Columns))
	return nil
}
