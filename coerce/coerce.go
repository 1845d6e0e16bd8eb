// Package coerce converts the loosely-typed scalar values the Alma API emits
// (booleans and dates round-tripped as strings, inconsistently across
// endpoints) into strict Go values.
//
// Every function is total: unparseable input never raises. Instead the
// original value is returned unchanged together with a diagnostic, and the
// caller decides whether a still-loose value is acceptable. Failing hard here
// would make the client unusable against real data.
package coerce

import (
	"fmt"
	"strings"
	"time"
)

// Status tags the outcome of a coercion attempt.
type Status int

const (
	// StatusAbsent reports a nil input; the field is simply not present.
	StatusAbsent Status = iota
	// StatusConverted reports a successful conversion to the strict type.
	StatusConverted
	// StatusUnchanged reports input that was already typed, or input outside
	// this function's concern (e.g. a number where a boolean was declared),
	// passed through for the validator's type check.
	StatusUnchanged
	// StatusFailed reports a string that looked like it should convert but
	// could not be parsed. Value holds the original string and Diag the
	// diagnostic.
	StatusFailed
)

// Result is the tagged outcome of one coercion call.
type Result struct {
	Value  any
	Status Status
	Diag   string // non-empty only when Status is StatusFailed
}

var boolTokens = map[string]bool{
	"true": true, "t": true, "yes": true, "y": true, "1": true, "on": true,
	"false": false, "f": false, "no": false, "n": false, "0": false, "off": false,
}

// Boolean coerces case-insensitive boolean tokens to bool. Already-boolean
// input passes through converted; unrecognized strings fail soft; any other
// type passes through unchanged without a diagnostic.
func Boolean(v any) Result {
	switch b := v.(type) {
	case nil:
		return Result{Status: StatusAbsent}
	case bool:
		return Result{Value: b, Status: StatusConverted}
	case string:
		if parsed, ok := boolTokens[strings.ToLower(b)]; ok {
			return Result{Value: parsed, Status: StatusConverted}
		}
		return Result{
			Value:  b,
			Status: StatusFailed,
			Diag:   fmt.Sprintf("could not parse boolean value: %q", b),
		}
	default:
		return Result{Value: v, Status: StatusUnchanged}
	}
}

// Layouts accepted for instants, in trial order. The service emits RFC3339
// with Z or a numeric offset, naive date-times, and date-only strings with or
// without a zone suffix ("2024-05-02Z").
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02Z07:00",
	"2006-01-02",
}

// DateTime coerces instant strings to time.Time. Already-typed instants pass
// through converted; unparseable strings fail soft; any other type passes
// through unchanged without a diagnostic.
func DateTime(v any) Result {
	switch t := v.(type) {
	case nil:
		return Result{Status: StatusAbsent}
	case time.Time:
		return Result{Value: t, Status: StatusConverted}
	case string:
		if parsed, ok := parseInstant(t); ok {
			return Result{Value: parsed, Status: StatusConverted}
		}
		return Result{
			Value:  t,
			Status: StatusFailed,
			Diag:   fmt.Sprintf("could not parse datetime string: %q", t),
		}
	default:
		return Result{Value: v, Status: StatusUnchanged}
	}
}

// Date coerces calendar-date strings to a time.Time at UTC midnight,
// truncating any time component. Already-typed input is truncated the same
// way; unparseable strings fail soft; any other type passes through
// unchanged without a diagnostic.
func Date(v any) Result {
	switch d := v.(type) {
	case nil:
		return Result{Status: StatusAbsent}
	case time.Time:
		return Result{Value: truncateToDate(d), Status: StatusConverted}
	case string:
		if parsed, ok := parseInstant(d); ok {
			return Result{Value: truncateToDate(parsed), Status: StatusConverted}
		}
		return Result{
			Value:  d,
			Status: StatusFailed,
			Diag:   fmt.Sprintf("could not parse date string: %q", d),
		}
	default:
		return Result{Value: v, Status: StatusUnchanged}
	}
}

func parseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
