package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AmerThamer/bkv-inspector-app/refdata"
	"github.com/AmerThamer/bkv-inspector-app/report"
	"github.com/AmerThamer/bkv-inspector-app/timeinput"
)

// errUnknownKind is returned for a form kind other than line or mentor.
var errUnknownKind = errors.New("unknown inspection kind")

// Form is the YAML file a report is rendered from. Times are taken as typed
// and normalized; the inspector may be given as "Name (code)".
type Form struct {
	Kind          string   `yaml:"kind"`
	HeaderTitle   string   `yaml:"header_title"`
	Inspector     string   `yaml:"inspector"`
	InspectorCode string   `yaml:"inspector_code"`
	DriverName    string   `yaml:"driver_name"`
	DriverCode    string   `yaml:"driver_code"`
	Line          string   `yaml:"line"`
	VehicleCode   string   `yaml:"vehicle_code"`
	StartLocation string   `yaml:"start_location"`
	StartTime     string   `yaml:"start_time"`
	EndLocation   string   `yaml:"end_location"`
	EndTime       string   `yaml:"end_time"`
	Date          string   `yaml:"date"`
	Positives     []string `yaml:"positives"`
	Negatives     []string `yaml:"negatives"`
	Notes         string   `yaml:"notes"`
}

// LoadForm reads a form file. Unknown keys are rejected.
func LoadForm(path string) (*Form, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open form: %w", err)
	}
	defer f.Close()

	var form Form
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&form); err != nil {
		return nil, fmt.Errorf("parse form %s: %w", path, err)
	}
	return &form, nil
}

// ReportData fills in what the form leaves out: the driver's name or code
// from the driver list, the date, and a title matching the kind.
func (f *Form) ReportData(now time.Time, labels report.Labels, drivers []refdata.Driver) (report.ReportData, error) {
	kind, ok := report.ParseKind(strings.TrimSpace(f.Kind))
	if !ok {
		return report.ReportData{}, fmt.Errorf("%w: %q", errUnknownKind, f.Kind)
	}

	inspector := refdata.ParseDisplay(f.Inspector)
	if code := strings.TrimSpace(f.InspectorCode); code != "" {
		inspector.Code = code
	}

	driver := refdata.Person{Name: strings.TrimSpace(f.DriverName), Code: strings.TrimSpace(f.DriverCode)}
	switch {
	case driver.Name != "" && driver.Code == "":
		if d, ok := refdata.DriverByName(drivers, driver.Name); ok {
			driver.Code = d.Code
		}
	case driver.Code != "" && driver.Name == "":
		if d, ok := refdata.DriverByCode(drivers, driver.Code); ok {
			driver.Name = d.Name
		}
	}

	date := strings.TrimSpace(f.Date)
	if date == "" {
		date = now.Format("2006.01.02")
	}
	title := strings.TrimSpace(f.HeaderTitle)
	if title == "" {
		title = labels.TitleFor(kind)
	}

	return report.ReportData{
		HeaderTitle:   title,
		InspectorName: inspector.Name,
		InspectorCode: inspector.Code,
		DriverName:    driver.Name,
		DriverCode:    driver.Code,
		Line:          strings.TrimSpace(f.Line),
		StartLoc:      strings.TrimSpace(f.StartLocation),
		EndLoc:        strings.TrimSpace(f.EndLocation),
		StartTime:     timeinput.Normalize(f.StartTime),
		EndTime:       timeinput.Normalize(f.EndTime),
		DateStr:       date,
		Positives:     f.Positives,
		Negatives:     f.Negatives,
		Notes:         f.Notes,
		VehicleCode:   strings.TrimSpace(f.VehicleCode),
		Kind:          kind,
	}, nil
}
