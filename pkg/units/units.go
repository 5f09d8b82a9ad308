// Package units localizes measurements embedded in free text.
//
// ToMetric rewrites imperial measurements to metric; ToPhonetic spells out
// unit symbols so the TTS boundary pronounces them naturally. Both run a
// fixed sequence of independent regex substitution passes over
// non-overlapping matches. Ambiguous units are left alone.
package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Conversion factors.
const (
	milesToKm  = 1.60934
	poundsToKg = 0.453592
	inchToCm   = 2.54
)

var (
	fahrenheitRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*°?F\b|(\d+(?:\.\d+)?)\s*(?:degrees?\s*)?fahrenheit`)
	milesRe      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*miles?\b`)
	poundsRe     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*pounds?\b|(\d+(?:\.\d+)?)\s*lbs?\b`)
	feetInchesRe = regexp.MustCompile(`(?i)(\d+)\s*feet?\s*(\d+)\s*inch(?:es)?\b`)

	celsiusSymRe = regexp.MustCompile(`°C`)
	kmRe         = regexp.MustCompile(`\bkm\b`)
	kgRe         = regexp.MustCompile(`\bkg\b`)
	cmRe         = regexp.MustCompile(`\bcm\b`)
	percentRe    = regexp.MustCompile(`%`)
)

// ToMetric converts imperial measurements in text to metric. Passes run in a
// fixed order: temperature, distance, weight, height. Text already in metric
// units is returned unchanged, so the function is idempotent.
func ToMetric(text string) string {
	text = fahrenheitRe.ReplaceAllStringFunc(text, func(m string) string {
		f, ok := firstNumber(fahrenheitRe, m)
		if !ok {
			return m
		}
		c := (f - 32) * 5 / 9
		return fmt.Sprintf("%.1f degrees Celsius", c)
	})

	text = milesRe.ReplaceAllStringFunc(text, func(m string) string {
		mi, ok := firstNumber(milesRe, m)
		if !ok {
			return m
		}
		return fmt.Sprintf("%.1f kilometres", mi*milesToKm)
	})

	text = poundsRe.ReplaceAllStringFunc(text, func(m string) string {
		lbs, ok := firstNumber(poundsRe, m)
		if !ok {
			return m
		}
		return fmt.Sprintf("%.1f kilograms", lbs*poundsToKg)
	})

	text = feetInchesRe.ReplaceAllStringFunc(text, func(m string) string {
		groups := feetInchesRe.FindStringSubmatch(m)
		feet, err1 := strconv.Atoi(groups[1])
		inches, err2 := strconv.Atoi(groups[2])
		if err1 != nil || err2 != nil {
			return m
		}
		cm := float64(feet*12+inches) * inchToCm
		return fmt.Sprintf("%.1f centimetres", cm)
	})

	return text
}

// ToPhonetic rewrites unit symbols and abbreviations as spelled-out words.
// Word-boundary matching keeps unrelated substrings intact.
func ToPhonetic(text string) string {
	text = celsiusSymRe.ReplaceAllString(text, " degrees Celsius")
	text = kmRe.ReplaceAllString(text, "kilometres")
	text = kgRe.ReplaceAllString(text, "kilograms")
	text = cmRe.ReplaceAllString(text, "centimetres")
	text = percentRe.ReplaceAllString(text, " percent")
	return strings.TrimSpace(text)
}

// firstNumber parses the first non-empty capture group of re applied to m.
// The imperial patterns use alternations, so the value may land in either
// group.
func firstNumber(re *regexp.Regexp, m string) (float64, bool) {
	groups := re.FindStringSubmatch(m)
	for _, g := range groups[1:] {
		if g == "" {
			continue
		}
		v, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
