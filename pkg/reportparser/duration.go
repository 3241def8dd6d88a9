package reportparser

import (
	"math"
	"time"
)

// Report timestamps are always UTC with a literal Z suffix. Using the Z as a
// literal rejects offset-suffixed inputs, which the reporting system never
// produces.
const timestampLayout = "2006-01-02T15:04:05Z"

// HoursBetween returns the elapsed hours from start to end, rounded to two
// decimals. Either input being empty or not in the fixed report layout
// yields nil. A negative result is returned as-is; a reversed pair is a
// data-quality signal, not a parse failure.
func HoursBetween(start, end string) *float64 {
	if start == "" || end == "" {
		return nil
	}
	s, err := time.Parse(timestampLayout, start)
	if err != nil {
		return nil
	}
	e, err := time.Parse(timestampLayout, end)
	if err != nil {
		return nil
	}
	hours := math.Round(e.Sub(s).Hours()*100) / 100
	return &hours
}
