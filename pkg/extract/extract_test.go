package extract_test

import (
	"testing"

	"github.com/ucroboticslab/go-pepper/pkg/extract"
)

func TestTemperature(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"Currently 62 degrees Fahrenheit with clouds", "62 degrees fahrenheit", true},
		{"A mild 18 degrees celsius afternoon", "18 degrees celsius", true},
		{"about 25 degrees right now", "25 degrees", true},
		{"sunny with a high of 31", "31 degrees", true},
		{"no reading available", "", false},
	}
	for _, tc := range cases {
		got, ok := extract.Temperature(tc.text)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Temperature(%q) = %q,%v want %q,%v", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClockTime(t *testing.T) {
	got, ok := extract.ClockTime("The local time is 3:45 PM in Canberra")
	if !ok || got != "3:45 PM" {
		t.Errorf("got %q,%v", got, ok)
	}
	if _, ok := extract.ClockTime("sometime this afternoon"); ok {
		t.Error("expected no match")
	}
}

func TestPopulation(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"home to 5.3 million residents", "5.3 million"},
		{"counted 9,000,000 at the census", "9,000,000"},
		{"grew to 453000 last year", "453000"},
	}
	for _, tc := range cases {
		got, ok := extract.Population(tc.text)
		if !ok || got != tc.want {
			t.Errorf("Population(%q) = %q,%v want %q", tc.text, got, ok, tc.want)
		}
	}
}

func TestProperName(t *testing.T) {
	got, ok := extract.ProperName("The president is Emmanuel Macron of France")
	if !ok || got != "Emmanuel Macron" {
		t.Errorf("got %q,%v", got, ok)
	}

	got, ok = extract.ProperName("the capital is Canberra")
	if !ok || got != "Canberra" {
		t.Errorf("got %q,%v", got, ok)
	}
}

func TestYear(t *testing.T) {
	got, ok := extract.Year("signed in 1776 in Philadelphia")
	if !ok || got != "1776" {
		t.Errorf("got %q,%v", got, ok)
	}
	if _, ok := extract.Year("signed in 2020"); ok {
		t.Error("expected no match for modern year")
	}
}

func TestLocation(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"what's the weather in Sydney", "Sydney"},
		{"what is the population of France", "France"},
		{"tell me a story", "that location"},
	}
	for _, tc := range cases {
		if got := extract.Location(tc.query); got != tc.want {
			t.Errorf("Location(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}
