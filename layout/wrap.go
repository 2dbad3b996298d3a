package layout

import (
	"iter"
	"strings"
)

// WidthFunc measures the rendered width of a string in points.
type WidthFunc func(string) float64

// Wrap splits text into lines no wider than maxWidth. Whitespace runs
// separate tokens and are collapsed to one space. A token wider than
// maxWidth is broken into the longest prefixes that fit, each on its own
// line, and the next token starts a fresh line. Every line holds at least one
// character, so a maxWidth of zero or less yields one character per line.
//
// The sequence is pure and may be ranged over more than once.
func Wrap(text string, widthOf WidthFunc, maxWidth float64) iter.Seq[string] {
	return func(yield func(string) bool) {
		tokens := strings.Fields(text)
		if len(tokens) == 0 {
			return
		}
		positive := maxWidth > 0
		fits := func(s string) bool {
			return positive && widthOf(s) <= maxWidth
		}

		line := ""
		for _, token := range tokens {
			if line != "" {
				if candidate := line + " " + token; fits(candidate) {
					line = candidate
					continue
				}
				if !yield(line) {
					return
				}
				line = ""
			}
			if fits(token) {
				line = token
				continue
			}
			rest := []rune(token)
			for len(rest) > 0 {
				n := longestFittingPrefix(rest, fits)
				if !yield(string(rest[:n])) {
					return
				}
				rest = rest[n:]
			}
		}
		if line != "" {
			yield(line)
		}
	}
}

// WrapLines collects Wrap into a slice.
func WrapLines(text string, widthOf WidthFunc, maxWidth float64) []string {
	var lines []string
	for line := range Wrap(text, widthOf, maxWidth) {
		lines = append(lines, line)
	}
	return lines
}

// longestFittingPrefix returns the largest n ≥ 1 such that runes[:n] fits.
// Widths are assumed to grow with length.
func longestFittingPrefix(runes []rune, fits func(string) bool) int {
	lo, hi := 1, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if fits(string(runes[:mid])) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
