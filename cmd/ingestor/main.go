package main

import (
	"context"
	"time"

	"flightreport-ingestor/internal/infrastructure/config"
	"flightreport-ingestor/internal/infrastructure/persistence"
	sftpSource "flightreport-ingestor/internal/infrastructure/sftp"
	"flightreport-ingestor/internal/interface/exporter"
	"flightreport-ingestor/internal/usecase"
	"flightreport-ingestor/pkg/logger"
	"flightreport-ingestor/pkg/metrics"
	"flightreport-ingestor/pkg/reportparser"

	domainRepo "flightreport-ingestor/internal/domain/repository"
	implRepo "flightreport-ingestor/internal/interface/repository"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flight Report Ingestor")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx := context.Background()
	m := metrics.NewMetrics("flightreport")

	// Optional MongoDB archive of extracted records
	var archive domainRepo.FlightRecordRepository
	if cfg.ArchiveEnabled {
		log.Info("Connecting to MongoDB archive")
		mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(ctx); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}()
		db := persistence.GetDatabase(mongoClient, cfg.MongoDB)
		archive = implRepo.NewMongoFlightRecordRepository(db)
	}

	// Optional airport reference database for enrichment
	var airports domainRepo.AirportRepository
	if cfg.PostgresDSN != "" {
		gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airports = implRepo.NewGormAirportRepository(gormDB)
	}

	// Connect to the report drop
	source, err := sftpSource.NewClient(cfg.SFTPHost, cfg.SFTPPort, cfg.SFTPUser, cfg.SFTPPassword, cfg.DialTimeout, log)
	if err != nil {
		log.Fatal("Failed to connect to report drop", "error", err)
	}
	defer source.Close()

	historyRepo := implRepo.NewFileHistoryRepository(cfg.HistoryFile, log)
	parser := reportparser.NewParser(log)

	var tableExporter domainRepo.TableExporter
	if cfg.ExportFormat == "parquet" {
		tableExporter = exporter.NewParquetExporter(log)
	} else {
		tableExporter = exporter.NewCSVExporter(log)
	}

	ingestor := usecase.NewReportIngestor(cfg, source, historyRepo, parser, tableExporter, archive, airports, m, log)

	start := time.Now()
	runErr := ingestor.RunOnce(ctx)
	m.RunDuration.Observe(time.Since(start).Seconds())

	if cfg.PushgatewayURL != "" {
		if err := m.Push(cfg.PushgatewayURL, "flightreport_ingestor"); err != nil {
			log.Error("Failed to push metrics", "error", err)
		}
	}

	if runErr != nil {
		log.Fatal("Ingest run failed", "error", runErr)
	}
	log.Info("Flight Report Ingestor finished")
}
