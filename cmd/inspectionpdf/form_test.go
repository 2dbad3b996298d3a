package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AmerThamer/bkv-inspector-app/refdata"
	"github.com/AmerThamer/bkv-inspector-app/report"
)

const sampleForm = `kind: Mentori
inspector: "Kiss Péter (E-12)"
driver_name: Nagy Anna
line: "7"
vehicle_code: "1234"
start_location: Astoria
start_time: "815"
end_location: Keleti pályaudvar
end_time: "9.30"
positives:
  - Udvarias utastájékoztatás
negatives:
  - Késés a végállomáson
notes: |
  Nincs egyéb.
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFormReportData(t *testing.T) {
	form, err := LoadForm(writeFile(t, t.TempDir(), "form.yaml", sampleForm))
	if err != nil {
		t.Fatalf("LoadForm: %v", err)
	}
	drivers := []refdata.Driver{{Name: "Nagy Anna", Code: "5678"}}
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	data, err := form.ReportData(now, report.LabelsHU, drivers)
	if err != nil {
		t.Fatalf("ReportData: %v", err)
	}
	if data.Kind != report.KindMentor {
		t.Errorf("kind = %q, want mentor", data.Kind)
	}
	if data.InspectorName != "Kiss Péter" || data.InspectorCode != "E-12" {
		t.Errorf("inspector = %q/%q", data.InspectorName, data.InspectorCode)
	}
	if data.DriverCode != "5678" {
		t.Errorf("driver code = %q, want autofilled 5678", data.DriverCode)
	}
	if data.StartTime != "08:15" || data.EndTime != "09:30" {
		t.Errorf("times = %q-%q", data.StartTime, data.EndTime)
	}
	if data.DateStr != "2024.05.06" {
		t.Errorf("date = %q", data.DateStr)
	}
	if data.HeaderTitle != report.LabelsHU.MentorReportTitle {
		t.Errorf("title = %q", data.HeaderTitle)
	}
	if err := data.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFormDriverNameFromCode(t *testing.T) {
	form := &Form{DriverCode: "5678", Inspector: "Kiss Péter", InspectorCode: "E-99"}
	drivers := []refdata.Driver{{Name: "Nagy Anna", Code: "5678"}}
	data, err := form.ReportData(time.Now(), report.LabelsEN, drivers)
	if err != nil {
		t.Fatalf("ReportData: %v", err)
	}
	if data.DriverName != "Nagy Anna" {
		t.Errorf("driver name = %q", data.DriverName)
	}
	if data.InspectorCode != "E-99" {
		t.Errorf("inspector code = %q, want explicit code", data.InspectorCode)
	}
	if data.Kind != report.KindLine {
		t.Errorf("kind = %q, want line default", data.Kind)
	}
}

func TestFormRejectsUnknownKind(t *testing.T) {
	form := &Form{Kind: "weekly"}
	if _, err := form.ReportData(time.Now(), report.LabelsHU, nil); !errors.Is(err, errUnknownKind) {
		t.Fatalf("err = %v, want errUnknownKind", err)
	}
}

func TestLoadFormRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "form.yaml", "inspector: X\nvehicle: 12\n")
	if _, err := LoadForm(path); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}
