package exporter

import (
	"fmt"

	"flightreport-ingestor/internal/domain/entity"
	"flightreport-ingestor/pkg/logger"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// ParquetExporter writes the run artifact as a parquet file. Every column is
// a UTF8 byte array; the table's cells are already rendered to strings.
type ParquetExporter struct {
	logger logger.Logger
}

// NewParquetExporter creates a new parquet exporter
func NewParquetExporter(log logger.Logger) *ParquetExporter {
	return &ParquetExporter{logger: log}
}

// Extension returns the artifact file extension
func (e *ParquetExporter) Extension() string {
	return "parquet"
}

// Export writes the table to path.
func (e *ParquetExporter) Export(table *entity.OutputTable, path string) error {
	md := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		md[i] = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY", col)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", path, err)
	}

	pw, err := writer.NewCSVWriter(md, fw, 1)
	if err != nil {
		fw.Close()
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range table.Rows {
		cells := make([]*string, len(row))
		for i := range row {
			value := row[i]
			cells[i] = &value
		}
		if err := pw.WriteString(cells); err != nil {
			pw.WriteStop()
			fw.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("stop parquet writer: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("close artifact %s: %w", path, err)
	}

	e.logger.Info("Wrote parquet artifact", "path", path, "rows", len(table.Rows), "columns", len(table.Columns))
	return nil
}
