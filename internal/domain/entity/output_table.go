package entity

import (
	"fmt"
	"strconv"
)

// OutputTable is the per-run export: one row per extracted record, columns
// in preferred-first order. Immutable after assembly.
type OutputTable struct {
	Columns []string
	Rows    [][]string
}

// AssembleTable merges the run's records into a single table. It returns nil
// when there are no records, signalling that no artifact should be written.
//
// Column order is PreferredColumns filtered to the columns present in at
// least one record, followed by any remaining fields in the order they were
// first observed across the records. Absent fields render as empty cells.
func AssembleTable(records []*FlightRecord) *OutputTable {
	if len(records) == 0 {
		return nil
	}

	observed := make(map[string]bool)
	for _, r := range records {
		for _, f := range r.Fields() {
			observed[f] = true
		}
	}

	preferred := make(map[string]bool, len(PreferredColumns))
	var columns []string
	for _, c := range PreferredColumns {
		preferred[c] = true
		if observed[c] {
			columns = append(columns, c)
		}
	}

	added := make(map[string]bool)
	for _, r := range records {
		for _, f := range r.Fields() {
			if !preferred[f] && !added[f] {
				added[f] = true
				columns = append(columns, f)
			}
		}
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		cells := make([]string, len(columns))
		for i, c := range columns {
			if v, ok := r.Get(c); ok {
				cells[i] = formatCell(v)
			}
		}
		rows = append(rows, cells)
	}

	return &OutputTable{Columns: columns, Rows: rows}
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
