package usecase

import (
	"strings"
	"time"

	"flightreport-ingestor/internal/domain/entity"
	"flightreport-ingestor/internal/infrastructure/config"
)

// Report filenames look like {system}_{station}_{YYMMDD}_{sequence}.xml;
// the third underscore-separated segment carries the report date.
const dateSegmentLayout = "060102"

// SelectReports filters a remote listing down to the filenames eligible for
// this run: .xml files not yet in history whose name-encoded date falls
// within the lookback window. Names that do not match the dated-report shape
// are silently skipped; they are not dated report files, not errors.
// Result order follows the listing order.
func SelectReports(listing []string, history entity.HistorySet, now time.Time, lookbackDays int) []string {
	if lookbackDays <= 0 {
		lookbackDays = config.DefaultLookbackDays
	}
	cutoff := now.UTC().AddDate(0, 0, -lookbackDays)
	cutoff = time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	var selected []string
	for _, name := range listing {
		if !strings.HasSuffix(name, ".xml") {
			continue
		}
		if history.Contains(name) {
			continue
		}
		reportDay, ok := reportDate(name)
		if !ok {
			continue
		}
		if reportDay.Before(cutoff) {
			continue
		}
		selected = append(selected, name)
	}
	return selected
}

// reportDate parses the YYMMDD date segment out of a report filename.
func reportDate(name string) (time.Time, bool) {
	segments := strings.Split(name, "_")
	if len(segments) <= 2 {
		return time.Time{}, false
	}
	segment := segments[2]
	if len(segment) != len(dateSegmentLayout) {
		return time.Time{}, false
	}
	day, err := time.Parse(dateSegmentLayout, segment)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
