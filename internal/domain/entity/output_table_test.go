package entity

import (
	"reflect"
	"testing"
)

func TestAssembleTableEmpty(t *testing.T) {
	if table := AssembleTable(nil); table != nil {
		t.Error("expected nil table for zero records")
	}
}

func TestAssembleTablePreferredFirstOrdering(t *testing.T) {
	first := NewFlightRecord("a.xml")
	first.Set(FieldCrewDetails, "CPT Smith (7781)")
	first.Set(FieldFlightNumber, "XY1")
	first.Set("origin_airport_name", "Schiphol")

	second := NewFlightRecord("b.xml")
	second.Set(FieldBlockHour, 1.5)
	second.Set("dest_airport_name", "Kennedy")
	second.Set("origin_airport_name", "Heathrow")

	table := AssembleTable([]*FlightRecord{first, second})
	if table == nil {
		t.Fatal("expected a table")
	}

	// Preferred columns in their fixed order, then extras first-seen.
	wantColumns := []string{
		FieldFilename, FieldFlightNumber, FieldBlockHour, FieldCrewDetails,
		"origin_airport_name", "dest_airport_name",
	}
	if !reflect.DeepEqual(table.Columns, wantColumns) {
		t.Errorf("columns = %v, want %v", table.Columns, wantColumns)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}

	wantFirst := []string{"a.xml", "XY1", "", "CPT Smith (7781)", "Schiphol", ""}
	if !reflect.DeepEqual(table.Rows[0], wantFirst) {
		t.Errorf("row 0 = %v, want %v", table.Rows[0], wantFirst)
	}
	wantSecond := []string{"b.xml", "", "1.5", "", "Heathrow", "Kennedy"}
	if !reflect.DeepEqual(table.Rows[1], wantSecond) {
		t.Errorf("row 1 = %v, want %v", table.Rows[1], wantSecond)
	}
}

func TestFlightRecordAbsenceIsExplicit(t *testing.T) {
	record := NewFlightRecord("a.xml")
	record.Set(FieldAircraftReg, "")

	if _, ok := record.Get(FieldAircraftReg); !ok {
		t.Error("field set to empty string should still be present")
	}
	if _, ok := record.Get(FieldFlightNumber); ok {
		t.Error("never-set field should be absent")
	}
	if name, ok := record.Get(FieldFilename); !ok || name != "a.xml" {
		t.Errorf("filename = %v, %v; want a.xml, true", name, ok)
	}
}

func TestCrewEntryFormat(t *testing.T) {
	cases := []struct {
		entry CrewEntry
		want  string
	}{
		{CrewEntry{Rank: "CPT", Surname: "Smith", EmployeeID: "7781"}, "CPT Smith (7781)"},
		{CrewEntry{Rank: "", Surname: "Smith", EmployeeID: "7781"}, "Smith (7781)"},
		{CrewEntry{Rank: "FO", Surname: "Jones", EmployeeID: ""}, "FO Jones ()"},
	}
	for _, tc := range cases {
		if got := tc.entry.Format(); got != tc.want {
			t.Errorf("Format(%+v) = %q, want %q", tc.entry, got, tc.want)
		}
	}
}
