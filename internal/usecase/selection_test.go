package usecase

import (
	"testing"
	"time"

	"flightreport-ingestor/internal/domain/entity"
)

var testNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func TestSelectReportsEndToEndScenario(t *testing.T) {
	listing := []string{
		"A_B_240101_1.xml", // in window, new
		"A_B_230101_1.xml", // out of window
		"A_B_240101_2.xml", // already in history
		"notes.txt",        // not a report
	}
	history := entity.NewHistorySet("A_B_240101_2.xml")

	selected := SelectReports(listing, history, testNow, 30)

	if len(selected) != 1 || selected[0] != "A_B_240101_1.xml" {
		t.Errorf("selected = %v, want [A_B_240101_1.xml]", selected)
	}
}

func TestSelectReportsMalformedNamesSkipped(t *testing.T) {
	listing := []string{
		"A_B_240114_1.xml",    // valid
		"A_240114.xml",        // too few segments
		"A_B_2401_1.xml",      // date segment not 6 chars
		"A_B_24011x_1.xml",    // date segment not all digits
		"A_B_241301_1.xml",    // month 13 does not parse
		"A_B_240114_1.xml.gz", // wrong extension
		"A_B_240114_1.XML",    // extension is case sensitive
	}

	selected := SelectReports(listing, entity.NewHistorySet(), testNow, 30)

	if len(selected) != 1 || selected[0] != "A_B_240114_1.xml" {
		t.Errorf("selected = %v, want [A_B_240114_1.xml]", selected)
	}
}

func TestSelectReportsWindowBoundary(t *testing.T) {
	history := entity.NewHistorySet()

	// 2023-12-16 is exactly now - 30 days and still eligible.
	onBoundary := SelectReports([]string{"A_B_231216_1.xml"}, history, testNow, 30)
	if len(onBoundary) != 1 {
		t.Errorf("boundary date should be selected, got %v", onBoundary)
	}

	beyond := SelectReports([]string{"A_B_231215_1.xml"}, history, testNow, 30)
	if len(beyond) != 0 {
		t.Errorf("date beyond the window should be excluded, got %v", beyond)
	}
}

func TestSelectReportsPreservesListingOrder(t *testing.T) {
	listing := []string{
		"C_C_240113_3.xml",
		"A_A_240111_1.xml",
		"B_B_240112_2.xml",
	}

	selected := SelectReports(listing, entity.NewHistorySet(), testNow, 30)

	if len(selected) != 3 {
		t.Fatalf("got %d selected, want 3", len(selected))
	}
	for i, want := range listing {
		if selected[i] != want {
			t.Errorf("selected[%d] = %q, want %q", i, selected[i], want)
		}
	}
}

func TestSelectReportsIdempotentAfterHistoryUpdate(t *testing.T) {
	listing := []string{"A_B_240110_1.xml", "A_B_240111_2.xml"}
	history := entity.NewHistorySet()

	first := SelectReports(listing, history, testNow, 30)
	if len(first) != 2 {
		t.Fatalf("first run selected %d files, want 2", len(first))
	}

	for _, name := range first {
		history.Add(name)
	}

	second := SelectReports(listing, history, testNow, 30)
	if len(second) != 0 {
		t.Errorf("second run selected %v, want none", second)
	}
}

func TestSelectReportsDefaultLookback(t *testing.T) {
	// A non-positive lookback falls back to the 30 day default.
	selected := SelectReports([]string{"A_B_231216_1.xml", "A_B_231215_1.xml"}, entity.NewHistorySet(), testNow, 0)
	if len(selected) != 1 || selected[0] != "A_B_231216_1.xml" {
		t.Errorf("selected = %v, want [A_B_231216_1.xml]", selected)
	}
}
