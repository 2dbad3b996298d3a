// Package report lays out an inspection report on A4 pages and hands the
// result to the PDF writer.
//
// A render walks a Template's blocks top to bottom with a layout.Cursor.
// Each block measures what it needs, asks the paginator for room and draws.
// The structured template breaks onto as many pages as the content needs;
// the classic template keeps to one page and clips what does not fit.
package report

import (
	"errors"
	"fmt"

	"github.com/AmerThamer/bkv-inspector-app/refdata"
	"github.com/AmerThamer/bkv-inspector-app/timeinput"
)

// ErrInvalidTime is returned by Validate for a time that is neither empty
// nor HH:MM.
var ErrInvalidTime = errors.New("time is not in HH:MM form")

// InspectionKind distinguishes line inspections from mentoring rides.
type InspectionKind string

const (
	KindLine   InspectionKind = "line"
	KindMentor InspectionKind = "mentor"
)

// ParseKind accepts the English names and the Hungarian form values.
func ParseKind(s string) (InspectionKind, bool) {
	switch s {
	case "", "line", "Line", "Vonali", "vonali":
		return KindLine, true
	case "mentor", "Mentor", "Mentori", "mentori":
		return KindMentor, true
	}
	return "", false
}

// ReportData is everything a report shows. Times are already normalized;
// absent values are empty strings.
type ReportData struct {
	HeaderTitle   string
	InspectorName string
	InspectorCode string
	DriverName    string
	DriverCode    string
	Line          string
	StartLoc      string
	EndLoc        string
	StartTime     string
	EndTime       string
	DateStr       string
	Positives     []string
	Negatives     []string
	Notes         string

	VehicleCode string
	Kind        InspectionKind
}

// Inspector returns the inspector as a Person.
func (d ReportData) Inspector() refdata.Person {
	return refdata.Person{Name: d.InspectorName, Code: d.InspectorCode}
}

// Driver returns the driver as a Person.
func (d ReportData) Driver() refdata.Person {
	return refdata.Person{Name: d.DriverName, Code: d.DriverCode}
}

// Validate checks the fields the renderer relies on. It does not normalize.
func (d ReportData) Validate() error {
	if !timeinput.IsCanonical(d.StartTime) {
		return fmt.Errorf("%w: start %q", ErrInvalidTime, d.StartTime)
	}
	if !timeinput.IsCanonical(d.EndTime) {
		return fmt.Errorf("%w: end %q", ErrInvalidTime, d.EndTime)
	}
	return nil
}
