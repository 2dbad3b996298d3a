package report

import "fmt"

// Labels holds every fixed string printed on a report.
type Labels struct {
	Lang string

	Title             string
	LineReportTitle   string
	MentorReportTitle string

	Date      string
	Inspector string
	Driver    string
	Line      string
	Segment   string
	Positives string
	Negatives string
	Notes     string
	Generated string
	Page      string
	Closed    string

	Place         string
	Time          string
	PerformedBy   string
	CardNumber    string
	Subject       string
	LineSubject   string
	MentorSubject string
	Details       string
	DriverName    string
	Vehicle       string
	Start         string
	End           string
	Findings      string
}

// LabelsHU is the Hungarian label set used by default.
var LabelsHU = Labels{
	Lang: "hu-HU",

	Title:             "Ellenőrzési jegyzőkönyv",
	LineReportTitle:   "Jelentés vonali ellenőrzésről",
	MentorReportTitle: "Jelentés mentori ellenőrzésről",

	Date:      "Dátum",
	Inspector: "Ellenőr",
	Driver:    "Járművezető",
	Line:      "Viszonylat",
	Segment:   "Szakasz",
	Positives: "Pozitív észrevételek",
	Negatives: "Negatív észrevételek",
	Notes:     "Megjegyzés",
	Generated: "Generálva",
	Page:      "Oldal",
	Closed:    "Az ellenőrzési jegyzőkönyvet lezártam",

	Place:         "Az ellenőrzés helye",
	Time:          "Az ellenőrzés ideje",
	PerformedBy:   "Az ellenőrzést végezte",
	CardNumber:    "Az ellenőrzési igazolvány szám",
	Subject:       "Az ellenőrzés tárgya",
	LineSubject:   "Vonali ellenőrzés",
	MentorSubject: "Mentori ellenőrzés",
	Details:       "Ellenőrzés adatai:",
	DriverName:    "Járművezető neve",
	Vehicle:       "Pályaszám",
	Start:         "Ellenőrzés kezdete",
	End:           "Ellenőrzés vége",
	Findings:      "Következő megállapításokat tettem:",
}

// LabelsEN is an English label set.
var LabelsEN = Labels{
	Lang: "en-GB",

	Title:             "Inspection report",
	LineReportTitle:   "Report on a line inspection",
	MentorReportTitle: "Report on a mentoring inspection",

	Date:      "Date",
	Inspector: "Inspector",
	Driver:    "Driver",
	Line:      "Line",
	Segment:   "Segment",
	Positives: "Positive observations",
	Negatives: "Negative observations",
	Notes:     "Notes",
	Generated: "Generated",
	Page:      "Page",
	Closed:    "Inspection report closed",

	Place:         "Place of inspection",
	Time:          "Time of inspection",
	PerformedBy:   "Inspection performed by",
	CardNumber:    "Inspector card number",
	Subject:       "Subject of inspection",
	LineSubject:   "Line inspection",
	MentorSubject: "Mentoring inspection",
	Details:       "Inspection details:",
	DriverName:    "Driver name",
	Vehicle:       "Vehicle number",
	Start:         "Inspection start",
	End:           "Inspection end",
	Findings:      "I made the following findings:",
}

// LabelsByName returns the label set for "hu" or "en".
func LabelsByName(name string) (Labels, error) {
	switch name {
	case "", "hu":
		return LabelsHU, nil
	case "en":
		return LabelsEN, nil
	}
	return Labels{}, fmt.Errorf("unknown label set %q", name)
}

// TitleFor returns the report title for an inspection kind. The structured
// template uses the generic title when no kind is set.
func (l Labels) TitleFor(kind InspectionKind) string {
	switch kind {
	case KindLine:
		return l.LineReportTitle
	case KindMentor:
		return l.MentorReportTitle
	}
	return l.Title
}

// SubjectFor returns the subject line of the classic narrative.
func (l Labels) SubjectFor(kind InspectionKind) string {
	if kind == KindMentor {
		return l.MentorSubject
	}
	return l.LineSubject
}
