// Package refdata holds the reference lists an inspector picks from while
// filling in a report: drivers, inspectors and route stops. The lists come
// from plain comma separated files and are cached in a small SQLite store.
package refdata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Driver is a bus driver and their staff code.
type Driver struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Inspector is a ticket inspector and their staff code.
type Inspector struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Route is one stop of a line.
type Route struct {
	Line     string `json:"line"`
	Location string `json:"location"`
}

// Stats reports what a parse dropped.
type Stats struct {
	Records int
	Skipped int
}

const byteOrderMark = "\uFEFF"

// ParseDrivers reads "name,code" lines.
func ParseDrivers(r io.Reader) ([]Driver, Stats, error) {
	return parseRecords(r, func(first, rest string) Driver {
		return Driver{Name: first, Code: rest}
	})
}

// ParseInspectors reads "name,code" lines.
func ParseInspectors(r io.Reader) ([]Inspector, Stats, error) {
	return parseRecords(r, func(first, rest string) Inspector {
		return Inspector{Name: first, Code: rest}
	})
}

// ParseRoutes reads "line,location" lines. Locations may contain commas.
func ParseRoutes(r io.Reader) ([]Route, Stats, error) {
	return parseRecords(r, func(first, rest string) Route {
		return Route{Line: first, Location: rest}
	})
}

// parseRecords splits every non-blank line at its first comma. Lines without
// a comma are counted as skipped. The second field keeps any further commas.
func parseRecords[T any](r io.Reader, build func(first, rest string) T) ([]T, Stats, error) {
	var (
		out   []T
		stats Stats
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		line := sc.Text()
		if lineNo == 0 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		first, rest, ok := strings.Cut(line, ",")
		if !ok {
			stats.Skipped++
			continue
		}
		out = append(out, build(strings.TrimSpace(first), strings.TrimSpace(rest)))
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("read line %d: %w", lineNo+1, err)
	}
	stats.Records = len(out)
	return out, stats, nil
}
