package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"flightreport-ingestor/internal/domain/entity"
	"flightreport-ingestor/internal/infrastructure/config"
	"flightreport-ingestor/pkg/logger"
	"flightreport-ingestor/pkg/metrics"
	"flightreport-ingestor/pkg/reportparser"
)

const goodReport = `<?xml version="1.0"?>
<fr:FlightReport xmlns:fr="http://aims.example/eflightreport/v2">
  <fr:Flight>
    <fr:FlightNumber>XY123</fr:FlightNumber>
    <fr:DepartureAirport>AMS</fr:DepartureAirport>
    <fr:ArrivalAirport>JFK</fr:ArrivalAirport>
  </fr:Flight>
</fr:FlightReport>`

type fakeSource struct {
	listing []string
	files   map[string][]byte
	listErr error
	fetched []string
}

func (f *fakeSource) ListFiles(remoteDir string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listing, nil
}

func (f *fakeSource) Fetch(remotePath, localPath string) error {
	name := filepath.Base(remotePath)
	data, ok := f.files[name]
	if !ok {
		return errors.New("no such remote file: " + name)
	}
	f.fetched = append(f.fetched, name)
	return os.WriteFile(localPath, data, 0o644)
}

type memHistory struct {
	set      entity.HistorySet
	appended [][]string
}

func newMemHistory(names ...string) *memHistory {
	return &memHistory{set: entity.NewHistorySet(names...)}
}

func (h *memHistory) Load() (entity.HistorySet, error) {
	loaded := entity.NewHistorySet()
	for name := range h.set {
		loaded.Add(name)
	}
	return loaded, nil
}

func (h *memHistory) Append(filenames []string) error {
	h.appended = append(h.appended, filenames)
	for _, name := range filenames {
		h.set.Add(filepath.Base(name))
	}
	return nil
}

type captureExporter struct {
	table *entity.OutputTable
	path  string
	calls int
	err   error
}

func (e *captureExporter) Export(table *entity.OutputTable, path string) error {
	e.calls++
	if e.err != nil {
		return e.err
	}
	e.table = table
	e.path = path
	return nil
}

func (e *captureExporter) Extension() string { return "csv" }

func newTestIngestor(t *testing.T, source *fakeSource, history *memHistory, exp *captureExporter) *ReportIngestor {
	t.Helper()
	cfg := &config.Config{
		RemoteDir:    "/reports",
		LocalDir:     filepath.Join(t.TempDir(), "staging"),
		OutputDir:    filepath.Join(t.TempDir(), "output"),
		LookbackDays: 30,
	}
	log := logger.NewNopLogger()
	ing := NewReportIngestor(cfg, source, history, reportparser.NewParser(log), exp, nil, nil, metrics.NewMetrics("test"), log)
	ing.now = func() time.Time { return testNow }
	return ing
}

func TestRunOnceExportsAndAppendsHistory(t *testing.T) {
	source := &fakeSource{
		listing: []string{"EFR_AMS_240110_01.xml", "EFR_AMS_230601_02.xml", "notes.txt"},
		files:   map[string][]byte{"EFR_AMS_240110_01.xml": []byte(goodReport)},
	}
	history := newMemHistory()
	exp := &captureExporter{}
	ing := newTestIngestor(t, source, history, exp)

	if err := ing.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(source.fetched) != 1 || source.fetched[0] != "EFR_AMS_240110_01.xml" {
		t.Errorf("fetched = %v, want only the in-window file", source.fetched)
	}
	if exp.table == nil {
		t.Fatal("expected an exported table")
	}
	if len(exp.table.Rows) != 1 {
		t.Errorf("got %d rows, want 1", len(exp.table.Rows))
	}
	if !history.set.Contains("EFR_AMS_240110_01.xml") {
		t.Error("processed file missing from history")
	}

	// The staged copy is cleaned up after a successful run.
	staged := filepath.Join(ing.cfg.LocalDir, "EFR_AMS_240110_01.xml")
	if _, err := os.Stat(staged); !os.IsNotExist(err) {
		t.Error("staged copy should have been removed")
	}
}

func TestRunOnceMalformedFileContinuesAndRetries(t *testing.T) {
	source := &fakeSource{
		listing: []string{"EFR_AMS_240110_01.xml", "EFR_AMS_240111_02.xml"},
		files: map[string][]byte{
			"EFR_AMS_240110_01.xml": []byte(goodReport),
			"EFR_AMS_240111_02.xml": []byte("definitely not xml"),
		},
	}
	history := newMemHistory()
	exp := &captureExporter{}
	ing := newTestIngestor(t, source, history, exp)

	if err := ing.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(exp.table.Rows) != 1 {
		t.Errorf("got %d rows, want 1 (malformed file excluded)", len(exp.table.Rows))
	}
	if history.set.Contains("EFR_AMS_240111_02.xml") {
		t.Error("malformed file must stay out of history so it is retried")
	}
	if !history.set.Contains("EFR_AMS_240110_01.xml") {
		t.Error("good file missing from history")
	}

	// The malformed staged copy stays in place.
	if _, err := os.Stat(filepath.Join(ing.cfg.LocalDir, "EFR_AMS_240111_02.xml")); err != nil {
		t.Errorf("malformed staged copy should remain: %v", err)
	}

	// A second run sees the updated history and has nothing to do.
	if err := ing.RunOnce(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(source.fetched) != 3 {
		t.Errorf("fetched %v, want the malformed file downloaded again", source.fetched)
	}
	if exp.calls != 1 {
		// The retry still fails, and a run with zero records produces
		// no artifact.
		t.Errorf("export calls = %d, want 1", exp.calls)
	}
}

func TestRunOnceListFailureIsFatal(t *testing.T) {
	source := &fakeSource{listErr: errors.New("connection refused")}
	history := newMemHistory()
	ing := newTestIngestor(t, source, history, &captureExporter{})

	if err := ing.RunOnce(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(history.appended) != 0 {
		t.Error("history must not change on a fatal listing failure")
	}
}

func TestRunOnceExportFailureSkipsHistory(t *testing.T) {
	source := &fakeSource{
		listing: []string{"EFR_AMS_240110_01.xml"},
		files:   map[string][]byte{"EFR_AMS_240110_01.xml": []byte(goodReport)},
	}
	history := newMemHistory()
	exp := &captureExporter{err: errors.New("disk full")}
	ing := newTestIngestor(t, source, history, exp)

	if err := ing.RunOnce(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(history.appended) != 0 {
		t.Error("history must not change when the export fails")
	}
}

func TestRunOnceNothingEligible(t *testing.T) {
	source := &fakeSource{listing: []string{"EFR_AMS_240110_01.xml"}}
	history := newMemHistory("EFR_AMS_240110_01.xml")
	exp := &captureExporter{}
	ing := newTestIngestor(t, source, history, exp)

	if err := ing.RunOnce(context.Background()); err != nil {
		t.Fatalf("a run with nothing to do is not an error: %v", err)
	}
	if exp.calls != 0 {
		t.Error("no artifact should be produced for an empty selection")
	}
	if len(source.fetched) != 0 {
		t.Errorf("nothing should be downloaded, fetched %v", source.fetched)
	}
}
