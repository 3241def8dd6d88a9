// internal/domain/entity/flight_record.go
package entity

import (
	"fmt"
	"strings"
)

// Field names emitted by the report extractor.
const (
	FieldFilename         = "filename"
	FieldFlightOriginDate = "flight_origin_date"
	FieldFlightID         = "flight_id"
	FieldFlightNumber     = "flight_number"
	FieldOriginIATA       = "origin_iata"
	FieldDestIATA         = "dest_iata"
	FieldAircraftReg      = "aircraft_reg"
	FieldOutTime          = "out_time"
	FieldOffTime          = "off_time"
	FieldOnTime           = "on_time"
	FieldInTime           = "in_time"
	FieldFuelOut          = "fuel_out"
	FieldFuelIn           = "fuel_in"
	FieldFuelUplift       = "fuel_uplift"
	FieldBlockHour        = "block_hour"
	FieldAirTime          = "air_time"
	FieldFlightType       = "flight_type"
	FieldPilotTakeoff     = "pilot_takeoff"
	FieldPilotLanding     = "pilot_landing"
	FieldArrivalType      = "arrival_type"
	FieldCrewDetails      = "crew_details"

	// Enrichment fields, populated only when an airport reference
	// database is configured.
	FieldOriginAirportName = "origin_airport_name"
	FieldDestAirportName   = "dest_airport_name"
)

// PreferredColumns is the export column ordering: filename and the key
// operational fields first. Fields outside this list follow in the order
// they were first observed.
var PreferredColumns = []string{
	FieldFilename,
	FieldFlightOriginDate,
	FieldFlightID,
	FieldFlightNumber,
	FieldOriginIATA,
	FieldDestIATA,
	FieldAircraftReg,
	FieldOutTime,
	FieldOffTime,
	FieldOnTime,
	FieldInTime,
	FieldFuelOut,
	FieldFuelIn,
	FieldFuelUplift,
	FieldBlockHour,
	FieldAirTime,
	FieldFlightType,
	FieldPilotTakeoff,
	FieldPilotLanding,
	FieldArrivalType,
	FieldCrewDetails,
}

// FlightRecord is one flattened flight report: a field-to-scalar map that
// preserves insertion order. A field that was never set is absent, which is
// distinct from a field set to an empty string. The filename field is always
// present.
type FlightRecord struct {
	filename string
	order    []string
	values   map[string]interface{}
}

// NewFlightRecord creates a record for the given source filename.
func NewFlightRecord(filename string) *FlightRecord {
	r := &FlightRecord{
		filename: filename,
		values:   make(map[string]interface{}),
	}
	r.Set(FieldFilename, filename)
	return r
}

// Filename returns the source filename the record was extracted from.
func (r *FlightRecord) Filename() string {
	return r.filename
}

// Set stores a field value. Setting an already present field overwrites the
// value but keeps its original position.
func (r *FlightRecord) Set(field string, value interface{}) {
	if _, exists := r.values[field]; !exists {
		r.order = append(r.order, field)
	}
	r.values[field] = value
}

// Get returns the field value and whether the field is present.
func (r *FlightRecord) Get(field string) (interface{}, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Fields returns the present field names in insertion order.
func (r *FlightRecord) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Document returns a plain map copy of the record, suitable for archiving.
func (r *FlightRecord) Document() map[string]interface{} {
	doc := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		doc[k] = v
	}
	return doc
}

// CrewEntry is one crew member parsed from a report's crew list. It exists
// only while crew_details is being rendered.
type CrewEntry struct {
	Rank       string
	Surname    string
	EmployeeID string
}

// Format renders the entry as "{rank} {surname} ({id})", trimmed so an empty
// rank does not leave a leading space.
func (c CrewEntry) Format() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s (%s)", c.Rank, c.Surname, c.EmployeeID))
}
