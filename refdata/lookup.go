package refdata

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Lines returns the distinct line numbers in Hungarian collation order.
func Lines(routes []Route) []string {
	seen := make(map[string]struct{}, len(routes))
	var lines []string
	for _, r := range routes {
		line := strings.TrimSpace(r.Line)
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	sortHungarian(lines)
	return lines
}

// LocationsForLine returns the distinct stops of line, sorted.
func LocationsForLine(routes []Route, line string) []string {
	line = strings.TrimSpace(line)
	seen := make(map[string]struct{})
	var locations []string
	for _, r := range routes {
		if strings.TrimSpace(r.Line) != line {
			continue
		}
		loc := strings.TrimSpace(r.Location)
		if loc == "" {
			continue
		}
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		locations = append(locations, loc)
	}
	sortHungarian(locations)
	return locations
}

// DriverByName returns the first driver with exactly this name.
func DriverByName(drivers []Driver, name string) (Driver, bool) {
	for _, d := range drivers {
		if d.Name == name {
			return d, true
		}
	}
	return Driver{}, false
}

// DriverByCode returns the first driver with exactly this code.
func DriverByCode(drivers []Driver, code string) (Driver, bool) {
	for _, d := range drivers {
		if d.Code == code {
			return d, true
		}
	}
	return Driver{}, false
}

// InspectorByCode returns the first inspector with exactly this code.
func InspectorByCode(inspectors []Inspector, code string) (Inspector, bool) {
	for _, in := range inspectors {
		if in.Code == code {
			return in, true
		}
	}
	return Inspector{}, false
}

func sortHungarian(ss []string) {
	collate.New(language.Hungarian, collate.Numeric).SortStrings(ss)
}
