// Package timeinput turns free-form time entries such as "930" or "9.30"
// into canonical HH:MM values.
package timeinput

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize returns raw as "HH:MM", or "" when raw holds no digits.
// Non-digits are ignored and only the first four digits count. One or two
// digits are the hour; three digits are H+MM; four are HH+MM. Hours clamp
// to 23 and minutes to 59.
func Normalize(raw string) string {
	d := digits(raw)
	if d == "" {
		return ""
	}
	if len(d) > 4 {
		d = d[:4]
	}
	var hStr, mStr string
	switch len(d) {
	case 1, 2:
		hStr = d
	case 3:
		hStr, mStr = d[:1], d[1:]
	default:
		hStr, mStr = d[:2], d[2:]
	}
	return fmt.Sprintf("%02d:%02d", clamp(hStr, 23), clamp(mStr, 59))
}

// IsCanonical reports whether s is empty or a valid "HH:MM" value.
func IsCanonical(s string) bool {
	if s == "" {
		return true
	}
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[3:])
	return errH == nil && errM == nil && h >= 0 && h <= 23 && m >= 0 && m <= 59 &&
		digits(s) == s[:2]+s[3:]
}

// Edit is the state of a time field while it is being typed.
type Edit struct {
	Text   string
	Cursor int
}

// Format reformats a field after a keystroke. prev is the state before the
// keystroke and raw the field's new text. The first two digits form the
// hour, clamped to 23; a ':' follows once both are present; minutes are
// clamped to 59 once complete. Typing the second hour digit moves the
// cursor past the inserted separator, and deleting the separator also
// removes the hour digit before it.
func Format(prev Edit, raw string) Edit {
	d := digits(raw)
	sepDeleted := strings.Contains(prev.Text, ":") && !strings.Contains(raw, ":") &&
		digits(prev.Text) == d && len(raw) < len(prev.Text)
	if sepDeleted && len(d) >= 2 {
		d = d[:1] + d[2:]
	}
	if d == "" {
		return Edit{}
	}
	if len(d) > 4 {
		d = d[:4]
	}
	hStr := d
	mStr := ""
	if len(d) > 2 {
		hStr, mStr = d[:2], d[2:]
	}

	out := hStr
	if len(hStr) == 2 {
		out = fmt.Sprintf("%02d:", clamp(hStr, 23))
		if len(mStr) == 2 {
			out += fmt.Sprintf("%02d", clamp(mStr, 59))
		} else {
			out += mStr
		}
	}

	cursor := len(out)
	if sepDeleted {
		cursor = min(len(hStr), len(out))
	}
	return Edit{Text: out, Cursor: cursor}
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func clamp(s string, max int) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
