package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Stable failure codes. Callers branch on these, never on message text.
const (
	CodeMissing         = "missing"          // required field absent after alias resolution
	CodeStringType      = "string_type"      // value is not a string
	CodeListType        = "list_type"        // value is not a list
	CodeBoolParsing     = "bool_parsing"     // value could not be read as a boolean
	CodeDatetimeParsing = "datetime_parsing" // value could not be read as a date-time
	CodeDateParsing     = "date_parsing"     // value could not be read as a calendar date
	CodeModelType       = "model_type"       // nested entity expected a mapping
	CodeParseError      = "parse_error"
)

// Issue represents a single field-level validation failure. Path is a JSON
// Pointer into the validated mapping (for example /holding_data/library).
type Issue struct {
	Path    string
	Code    string
	Message string
	Cause   error // optional underlying error
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error renders a compact one-line summary: the leading failures as
// "code at path" pairs, and a count of anything elided.
func (iss Issues) Error() string {
	const maxShown = 3
	if len(iss) == 0 {
		return ""
	}
	parts := make([]string, 0, maxShown+1)
	for i, it := range iss {
		if i == maxShown {
			parts = append(parts, fmt.Sprintf("+%d more", len(iss)-maxShown))
			break
		}
		parts = append(parts, it.Code+" at "+it.Path)
	}
	return strings.Join(parts, "; ")
}

// AppendIssues grows dst with more issues, leaving it untouched when there is
// nothing to add.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if len(more) == 0 {
		return dst
	}
	return append(dst, more...)
}

// AsIssues reports whether err carries an Issues list, unwrapping as needed.
func AsIssues(err error) (Issues, bool) {
	var iss Issues
	if err == nil || !errors.As(err, &iss) {
		return nil, false
	}
	return iss, true
}

// Warning is a non-fatal diagnostic produced while conforming a mapping, such
// as a soft coercion failure. Warnings accompany a result instead of blocking
// it; concurrent callers never share a sink.
type Warning struct {
	Path    string
	Message string
}

// Warnings is an ordered diagnostic list returned alongside validation results.
type Warnings []Warning

// AppendWarnings grows dst with more warnings, leaving it untouched when
// there is nothing to add.
func AppendWarnings(dst Warnings, more ...Warning) Warnings {
	if len(more) == 0 {
		return dst
	}
	return append(dst, more...)
}
