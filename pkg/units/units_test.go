package units_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ucroboticslab/go-pepper/pkg/units"
)

func TestToMetricTemperature(t *testing.T) {
	got := units.ToMetric("It's 62 degrees Fahrenheit in Sydney today.")

	assert.Contains(t, got, "16.7")
	assert.Contains(t, got, "Celsius")
	assert.NotContains(t, got, "Fahrenheit")
}

func TestToMetricSymbolForm(t *testing.T) {
	got := units.ToMetric("High of 75°F with sun.")
	assert.Contains(t, got, "23.9 degrees Celsius")
}

func TestToMetricSpokenForms(t *testing.T) {
	// Every phrasing a rendered weather answer can carry must convert,
	// including the bare "fahrenheit" suffix with no "degrees" token.
	cases := []string{
		"It's about 75 fahrenheit in Canberra right now.",
		"It's about 75 degrees fahrenheit in Canberra right now.",
		"It's about 75 Fahrenheit in Canberra right now.",
	}
	for _, in := range cases {
		got := units.ToMetric(in)
		assert.Contains(t, got, "23.9 degrees Celsius", "input %q", in)
		assert.NotContains(t, strings.ToLower(got), "fahrenheit", "input %q", in)
	}
}

func TestToMetricDistanceWeightHeight(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The lake is 5 miles away.", "8.0 kilometres"},
		{"It weighs 10 pounds.", "4.5 kilograms"},
		{"Around 22 lbs of cargo.", "10.0 kilograms"},
		{"He is 6 feet 2 inches tall.", "188.0 centimetres"},
	}
	for _, tc := range cases {
		assert.Contains(t, units.ToMetric(tc.in), tc.want, "input %q", tc.in)
	}
}

func TestToMetricIdempotent(t *testing.T) {
	inputs := []string{
		"It's 16.7 degrees Celsius in Sydney.",
		"The run is 8.0 kilometres long and the pack weighs 4.5 kilograms.",
		"It's 62 degrees Fahrenheit in Sydney today.",
	}
	for _, in := range inputs {
		once := units.ToMetric(in)
		twice := units.ToMetric(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestToPhonetic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"It's 21°C outside.", "It's 21 degrees Celsius outside."},
		{"The track is 5 km long.", "The track is 5 kilometres long."},
		{"It weighs 3 kg.", "It weighs 3 kilograms."},
		{"About 50 cm wide.", "About 50 centimetres wide."},
		{"Humidity is 80%.", "Humidity is 80 percent."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, units.ToPhonetic(tc.in))
	}
}

func TestToPhoneticWordBoundaries(t *testing.T) {
	// "km" inside a word must not be rewritten.
	assert.Equal(t, "Checkmark kmart", units.ToPhonetic("Checkmark kmart"))
}
