package refdata

import (
	"regexp"
	"strings"
)

// Person is a name with an optional staff code, as shown in pickers and on
// the report.
type Person struct {
	Name string
	Code string
}

var displayPattern = regexp.MustCompile(`^\s*(.*?)\s*\(([^)]+)\)\s*$`)

// Display renders "name (code)", or just the name when there is no code.
func (p Person) Display() string {
	name := strings.TrimSpace(p.Name)
	code := strings.TrimSpace(p.Code)
	if code == "" {
		return name
	}
	return name + " (" + code + ")"
}

// ParseDisplay splits a "name (code)" string. Anything else is taken as a
// bare name.
func ParseDisplay(s string) Person {
	if m := displayPattern.FindStringSubmatch(s); m != nil {
		return Person{Name: m[1], Code: strings.TrimSpace(m[2])}
	}
	return Person{Name: strings.TrimSpace(s)}
}

// Person returns the driver as a Person.
func (d Driver) Person() Person { return Person{Name: d.Name, Code: d.Code} }

// Person returns the inspector as a Person.
func (i Inspector) Person() Person { return Person{Name: i.Name, Code: i.Code} }
