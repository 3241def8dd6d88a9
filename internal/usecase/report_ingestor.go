package usecase

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"flightreport-ingestor/internal/domain/entity"
	"flightreport-ingestor/internal/domain/repository"
	"flightreport-ingestor/internal/infrastructure/config"
	"flightreport-ingestor/pkg/logger"
	"flightreport-ingestor/pkg/metrics"
	"flightreport-ingestor/pkg/reportparser"
)

// ReportIngestor runs one ingest cycle: select new report files from the
// remote drop, fetch them, extract records, export the run artifact and
// append history. Strictly sequential, one run per invocation.
type ReportIngestor struct {
	cfg      *config.Config
	source   repository.ReportSource
	history  repository.HistoryRepository
	parser   *reportparser.Parser
	exporter repository.TableExporter
	archive  repository.FlightRecordRepository // optional, may be nil
	airports repository.AirportRepository      // optional, may be nil
	metrics  *metrics.Metrics
	logger   logger.Logger
	now      func() time.Time
}

// NewReportIngestor creates a new report ingestor
func NewReportIngestor(
	cfg *config.Config,
	source repository.ReportSource,
	history repository.HistoryRepository,
	parser *reportparser.Parser,
	exporter repository.TableExporter,
	archive repository.FlightRecordRepository,
	airports repository.AirportRepository,
	m *metrics.Metrics,
	log logger.Logger,
) *ReportIngestor {
	return &ReportIngestor{
		cfg:      cfg,
		source:   source,
		history:  history,
		parser:   parser,
		exporter: exporter,
		archive:  archive,
		airports: airports,
		metrics:  m,
		logger:   log,
		now:      time.Now,
	}
}

// RunOnce executes a full ingest cycle.
//
// Listing, fetch and export failures abort the run with no history mutation.
// A per-file extraction failure only excludes that file from the artifact
// and from history, so it is retried on a later run. Zero eligible files is
// a normal outcome.
func (i *ReportIngestor) RunOnce(ctx context.Context) error {
	history, err := i.history.Load()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	listing, err := i.source.ListFiles(i.cfg.RemoteDir)
	if err != nil {
		i.metrics.ErrorsCount.WithLabelValues("list").Inc()
		return fmt.Errorf("list remote files: %w", err)
	}
	i.metrics.FilesListed.Add(float64(len(listing)))

	selected := SelectReports(listing, history, i.now().UTC(), i.cfg.LookbackDays)
	i.metrics.FilesSelected.Add(float64(len(selected)))
	i.logger.Info("Remote listing filtered",
		"filesFound", len(listing),
		"filesSelected", len(selected),
		"historySize", history.Len(),
		"lookbackDays", i.cfg.LookbackDays)

	if len(selected) == 0 {
		i.logger.Info("No eligible report files, nothing to do")
		return nil
	}

	if err := os.MkdirAll(i.cfg.LocalDir, 0o755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	for _, name := range selected {
		localPath := filepath.Join(i.cfg.LocalDir, name)
		if err := i.source.Fetch(path.Join(i.cfg.RemoteDir, name), localPath); err != nil {
			i.metrics.ErrorsCount.WithLabelValues("fetch").Inc()
			return fmt.Errorf("fetch %s: %w", name, err)
		}
		i.metrics.FilesDownloaded.Inc()
	}

	var records []*entity.FlightRecord
	var processed []string
	failures := 0
	for _, name := range selected {
		localPath := filepath.Join(i.cfg.LocalDir, name)
		data, err := os.ReadFile(localPath)
		if err != nil {
			i.logger.Error("Failed to read staged file", "file", name, "error", err)
			i.metrics.ErrorsCount.WithLabelValues("read").Inc()
			failures++
			continue
		}

		record, err := i.parser.Extract(name, data)
		if err != nil {
			// The file stays out of history and is retried on a later run.
			i.logger.Error("Extraction failed", "file", name, "error", err)
			i.metrics.ErrorsCount.WithLabelValues("extract").Inc()
			failures++
			continue
		}

		i.enrichAirports(ctx, record)
		records = append(records, record)
		processed = append(processed, name)
	}

	if len(records) == 0 {
		i.logger.Warn("No records extracted, nothing to export",
			"filesDownloaded", len(selected),
			"extractionFailures", failures)
		return nil
	}

	table := entity.AssembleTable(records)
	if err := os.MkdirAll(i.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	artifact := filepath.Join(i.cfg.OutputDir, fmt.Sprintf("flight_reports_%s.%s",
		i.now().UTC().Format("20060102T150405Z"), i.exporter.Extension()))
	if err := i.exporter.Export(table, artifact); err != nil {
		i.metrics.ErrorsCount.WithLabelValues("export").Inc()
		return fmt.Errorf("export table: %w", err)
	}
	i.metrics.RecordsExported.Add(float64(len(table.Rows)))

	if i.archive != nil {
		if err := i.archive.Archive(ctx, records); err != nil {
			i.logger.Error("Failed to archive records", "error", err)
			i.metrics.ErrorsCount.WithLabelValues("archive").Inc()
		}
	}

	if err := i.history.Append(processed); err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	// Best-effort cleanup of the staged copies we fully processed. Files
	// that failed extraction stay in place; they are retried anyway.
	for _, name := range processed {
		if err := os.Remove(filepath.Join(i.cfg.LocalDir, name)); err != nil {
			i.logger.Warn("Failed to remove staged file", "file", name, "error", err)
		}
	}

	i.logger.Info("Run complete",
		"filesFound", len(listing),
		"filesDownloaded", len(selected),
		"recordsExported", len(table.Rows),
		"extractionFailures", failures,
		"artifact", artifact)
	return nil
}

// enrichAirports resolves IATA codes to airport names when a reference
// database is configured. Lookup misses are expected and leave the record
// untouched.
func (i *ReportIngestor) enrichAirports(ctx context.Context, record *entity.FlightRecord) {
	if i.airports == nil {
		return
	}
	pairs := []struct {
		codeField string
		nameField string
	}{
		{entity.FieldOriginIATA, entity.FieldOriginAirportName},
		{entity.FieldDestIATA, entity.FieldDestAirportName},
	}
	for _, pair := range pairs {
		value, ok := record.Get(pair.codeField)
		if !ok {
			continue
		}
		code, ok := value.(string)
		if !ok || code == "" {
			continue
		}
		airport, err := i.airports.GetByIATA(ctx, code)
		if err != nil {
			i.logger.Debug("Airport lookup miss", "code", code, "error", err)
			continue
		}
		record.Set(pair.nameField, airport.Name)
	}
}
