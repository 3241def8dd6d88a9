package reportparser

import (
	"errors"
	"fmt"
	"strings"

	"flightreport-ingestor/internal/domain/entity"
	"flightreport-ingestor/pkg/logger"

	"github.com/beevik/etree"
)

// ExtractionFailure reports a file that could not be parsed as well-formed
// XML at all. The file is excluded from the run's output but not from future
// runs.
type ExtractionFailure struct {
	Filename string
	Err      error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Filename, e.Err)
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Err
}

// Parser turns raw flight-report XML into flat FlightRecord values.
type Parser struct {
	logger logger.Logger
}

// NewParser creates a new report parser
func NewParser(log logger.Logger) *Parser {
	return &Parser{logger: log}
}

// Extract parses one report document and flattens it into a record.
//
// The five report sections (Flight, Aircraft, GeneralFlightReport,
// Operation, CrewListDetails) are each independently optional: a missing
// section leaves only its own fields absent and never aborts the others.
// Only a document that fails to parse wholesale produces an error.
func (p *Parser) Extract(filename string, data []byte) (*entity.FlightRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ExtractionFailure{Filename: filename, Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &ExtractionFailure{Filename: filename, Err: errors.New("document has no root element")}
	}

	record := entity.NewFlightRecord(filename)
	p.extractFlight(root, record)
	p.extractAircraft(root, record)
	p.extractGeneralReport(root, record)
	p.extractOperation(root, record)
	p.extractCrew(root, record)

	p.logger.Debug("Extracted report", "file", filename, "fields", len(record.Fields()))
	return record, nil
}

func (p *Parser) extractFlight(root *etree.Element, record *entity.FlightRecord) {
	flight := findDescendant(root, "Flight")
	if flight == nil {
		return
	}
	setText(record, entity.FieldFlightOriginDate, flight, "FlightOriginDate")
	setText(record, entity.FieldFlightID, flight, "FlightId")
	setText(record, entity.FieldFlightNumber, flight, "FlightNumber")
	setText(record, entity.FieldOriginIATA, flight, "DepartureAirport")
	setText(record, entity.FieldDestIATA, flight, "ArrivalAirport")
}

func (p *Parser) extractAircraft(root *etree.Element, record *entity.FlightRecord) {
	aircraft := findDescendant(root, "Aircraft")
	if aircraft == nil {
		return
	}
	setText(record, entity.FieldAircraftReg, aircraft, "Registration")
}

func (p *Parser) extractGeneralReport(root *etree.Element, record *entity.FlightRecord) {
	report := findDescendant(root, "GeneralFlightReport")
	if report == nil {
		return
	}

	out := textOf(report, "Out")
	off := textOf(report, "Off")
	on := textOf(report, "On")
	in := textOf(report, "In")

	setIfPresent(record, entity.FieldOutTime, out)
	setIfPresent(record, entity.FieldOffTime, off)
	setIfPresent(record, entity.FieldOnTime, on)
	setIfPresent(record, entity.FieldInTime, in)

	setText(record, entity.FieldFuelOut, report, "FuelOut")
	setText(record, entity.FieldFuelIn, report, "FuelIn")

	// Derived durations are set only when both bounding timestamps parse.
	if blockHour := HoursBetween(out, in); blockHour != nil {
		record.Set(entity.FieldBlockHour, *blockHour)
	}
	if airTime := HoursBetween(off, on); airTime != nil {
		record.Set(entity.FieldAirTime, *airTime)
	}
}

func (p *Parser) extractOperation(root *etree.Element, record *entity.FlightRecord) {
	operation := findDescendant(root, "Operation")
	if operation == nil {
		return
	}
	setText(record, entity.FieldFuelUplift, operation, "FuelUplift")
	setText(record, entity.FieldFlightType, operation, "FlightType")
	setText(record, entity.FieldPilotTakeoff, operation, "TakeOff")
	setText(record, entity.FieldPilotLanding, operation, "Landing")
	setText(record, entity.FieldArrivalType, operation, "ArrivalType")
}

func (p *Parser) extractCrew(root *etree.Element, record *entity.FlightRecord) {
	crewList := findDescendant(root, "CrewListDetails")
	if crewList == nil {
		return
	}

	var entries []string
	for _, crewInfo := range findDescendants(crewList, "CrewInfo") {
		entry := crewEntryOf(crewInfo)
		// A crew member without a surname cannot be rendered meaningfully.
		if entry.Surname == "" {
			continue
		}
		entries = append(entries, entry.Format())
	}
	record.Set(entity.FieldCrewDetails, strings.Join(entries, ","))
}

func crewEntryOf(crewInfo *etree.Element) entity.CrewEntry {
	var entry entity.CrewEntry

	// First surname attribute found on a PersonalInfo descendant wins.
	for _, personal := range findDescendants(crewInfo, "PersonalInfo") {
		if surname := strings.TrimSpace(personal.SelectAttrValue("surname", "")); surname != "" {
			entry.Surname = surname
			break
		}
	}

	if crew := findDescendant(crewInfo, "Crew"); crew != nil {
		entry.Rank = strings.TrimSpace(crew.SelectAttrValue("rank", ""))
		entry.EmployeeID = strings.TrimSpace(crew.SelectAttrValue("employeeId", ""))
		if entry.EmployeeID == "" {
			entry.EmployeeID = strings.TrimSpace(crew.SelectAttrValue("staffNumber", ""))
		}
	}
	return entry
}

// textOf returns the trimmed text of the first matching descendant, or ""
// when the element is missing.
func textOf(section *etree.Element, bareTag string) string {
	el := findDescendant(section, bareTag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

func setText(record *entity.FlightRecord, field string, section *etree.Element, bareTag string) {
	setIfPresent(record, field, textOf(section, bareTag))
}

func setIfPresent(record *entity.FlightRecord, field, value string) {
	if value != "" {
		record.Set(field, value)
	}
}
