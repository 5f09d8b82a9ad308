// Package extract pulls typed values out of free text.
//
// Search snippets arrive as unstructured prose; the search responder renders
// templated sentences from whatever typed value it can find. Each extractor
// is a small pattern cascade kept separate so it can be tested in isolation.
package extract

import (
	"regexp"
	"strings"
)

var (
	tempUnitRe  = regexp.MustCompile(`(?i)(\d{1,3})\s*degrees?\s*(celsius|fahrenheit)?`)
	bareNumRe   = regexp.MustCompile(`(\d{1,3})`)
	clockRe     = regexp.MustCompile(`(\d{1,2}:\d{2}(?:\s*[APMapm]{2})?)`)
	popWordRe   = regexp.MustCompile(`(?i)(\d+[,.]?\d*\s*(million|billion|thousand|people))`)
	popCommasRe = regexp.MustCompile(`(\d{1,3}(,\d{3})+)`)
	anyNumberRe = regexp.MustCompile(`(\d+)`)
	fullNameRe  = regexp.MustCompile(`([A-Z][a-z]+ [A-Z][a-z]+)`)
	capWordRe   = regexp.MustCompile(`([A-Z][a-z]+)`)
	yearRe      = regexp.MustCompile(`(17\d{2}|18\d{2})`)
	locInRe     = regexp.MustCompile(`in ([A-Za-z ]+)`)
	locOfRe     = regexp.MustCompile(`of ([A-Za-z ]+)`)
)

// Temperature extracts a temperature phrase like "62 degrees fahrenheit".
// The "degrees" token is kept so downstream unit conversion still sees a
// convertible phrase. A bare number is rendered as plain "degrees".
func Temperature(text string) (string, bool) {
	if m := tempUnitRe.FindStringSubmatch(text); m != nil {
		if unit := strings.ToLower(m[2]); unit != "" {
			return m[1] + " degrees " + unit, true
		}
		return m[1] + " degrees", true
	}
	if m := bareNumRe.FindStringSubmatch(text); m != nil {
		return m[1] + " degrees", true
	}
	return "", false
}

// ClockTime extracts a clock time like "3:45 PM".
func ClockTime(text string) (string, bool) {
	if m := clockRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// Population extracts a population figure: a number qualified by
// million/billion/thousand/people, a comma-grouped number, or as a last
// resort any standalone number.
func Population(text string) (string, bool) {
	if m := popWordRe.FindString(text); m != "" {
		return m, true
	}
	if m := popCommasRe.FindString(text); m != "" {
		return m, true
	}
	if m := anyNumberRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// ProperName extracts a two-word proper name, falling back to a single
// capitalized word (capital cities are often one word).
func ProperName(text string) (string, bool) {
	if m := fullNameRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := capWordRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// Year extracts an 18th or 19th century year.
func Year(text string) (string, bool) {
	if m := yearRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// Location pulls a location out of a query by looking for "in X" then
// "of X". The heuristic is crude and occasionally grabs trailing words;
// callers treat the result as best-effort display text only.
func Location(query string) string {
	if m := locInRe.FindStringSubmatch(query); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := locOfRe.FindStringSubmatch(query); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "that location"
}
