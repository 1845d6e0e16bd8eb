// Package schema declares the entity shapes the Alma API serves and conforms
// loosely-typed mappings (parsed JSON or XML) against them.
//
// Validation is a two-step pipeline: the normalize package fixes shape
// ambiguity into one canonical mapping, and Conform only ever sees canonical
// shapes. Conform collects every field-level failure into an Issues report
// addressable by JSON-Pointer path instead of stopping at the first error.
package schema

import (
	"fmt"

	"github.com/wrlc/alma-client-go/coerce"
)

// Kind declares how a field's value is checked and coerced.
type Kind int

const (
	KindString     Kind = iota // string, or string_type issue
	KindStringList             // list of strings; a bare string collapses to a one-element list
	KindBool                   // routed through coerce.Boolean
	KindDateTime               // routed through coerce.DateTime
	KindDate                   // routed through coerce.Date
	KindRaw                    // passthrough payload (e.g. a MARC record document)
	KindEntity                 // nested entity; requires Field.Entity
	KindEntityList             // list of nested entities; requires Field.Entity
	KindRowList                // list of string-keyed rows (analytics result matrix)
)

// Field describes one declared entity field.
type Field struct {
	Name     string // canonical field name
	Alias    string // external key consulted when the canonical key is absent
	Kind     Kind
	Required bool
	// EmptyListDefault substitutes an empty list when the field is absent.
	// Only meaningful for list kinds.
	EmptyListDefault bool
	// Entity is the nested schema for KindEntity and KindEntityList fields.
	Entity *EntityDef
}

// EntityDef is a declarative record definition: the fields of one entity in
// declaration order. Definitions are static package-level tables and are safe
// for concurrent use.
type EntityDef struct {
	Name   string
	Fields []Field
}

// Conform validates a loosely-typed mapping against the definition. It
// resolves aliases, coerces scalar kinds, recurses into nested entities, and
// enforces required fields last so an aliased required field counts as
// present. Every failure is collected before returning; the mapping in the
// result keeps canonical field names and strictly-typed values.
//
// Warnings carry soft coercion diagnostics and never block an otherwise valid
// record.
func (e *EntityDef) Conform(m map[string]any) (map[string]any, Warnings, error) {
	out := make(map[string]any, len(e.Fields))
	var warns Warnings
	var iss Issues
	for _, f := range e.Fields {
		val, present := lookupField(m, f)
		if !present || val == nil {
			if f.EmptyListDefault {
				out[f.Name] = emptyListFor(f.Kind)
				continue
			}
			// Explicit null counts as missing for required fields.
			if f.Required {
				iss = AppendIssues(iss, Issue{
					Path:    "/" + f.Name,
					Code:    CodeMissing,
					Message: "required field missing",
				})
			}
			continue
		}
		conformed, w2, i2 := conformValue(f, val)
		warns = AppendWarnings(warns, w2...)
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			continue
		}
		out[f.Name] = conformed
	}
	if len(iss) > 0 {
		return nil, warns, iss
	}
	return out, warns, nil
}

// emptyListFor matches the conformed type a present list of the same kind
// would produce, so a field's canonical type never depends on whether the key
// was present.
func emptyListFor(k Kind) any {
	switch k {
	case KindStringList:
		return []string{}
	case KindEntityList:
		return []map[string]any{}
	case KindRowList:
		return []map[string]string{}
	default:
		return []any{}
	}
}

// lookupField resolves the canonical key first, then the alias.
func lookupField(m map[string]any, f Field) (any, bool) {
	if v, ok := m[f.Name]; ok {
		return v, true
	}
	if f.Alias != "" {
		if v, ok := m[f.Alias]; ok {
			return v, true
		}
	}
	return nil, false
}

func conformValue(f Field, val any) (any, Warnings, Issues) {
	base := "/" + f.Name
	switch f.Kind {
	case KindString:
		s, ok := val.(string)
		if !ok {
			return nil, nil, Issues{{Path: base, Code: CodeStringType, Message: "expected string"}}
		}
		return s, nil, nil
	case KindStringList:
		return conformStringList(base, val)
	case KindBool:
		return conformCoerced(base, coerce.Boolean(val), CodeBoolParsing, "expected boolean")
	case KindDateTime:
		return conformCoerced(base, coerce.DateTime(val), CodeDatetimeParsing, "expected date-time")
	case KindDate:
		return conformCoerced(base, coerce.Date(val), CodeDateParsing, "expected date")
	case KindRaw:
		return val, nil, nil
	case KindEntity:
		return conformNested(base, f.Entity, val)
	case KindEntityList:
		return conformEntityList(base, f.Entity, val)
	case KindRowList:
		return conformRowList(base, val)
	default:
		return nil, nil, Issues{{Path: base, Code: CodeParseError, Message: fmt.Sprintf("unhandled kind %d", f.Kind)}}
	}
}

// conformCoerced maps a coercion outcome onto the field contract: a failed or
// passthrough result where the declared kind strictly requires the typed
// value becomes a hard issue, and soft failures also surface as warnings.
func conformCoerced(base string, r coerce.Result, code, msg string) (any, Warnings, Issues) {
	switch r.Status {
	case coerce.StatusConverted:
		return r.Value, nil, nil
	case coerce.StatusFailed:
		warns := Warnings{{Path: base, Message: r.Diag}}
		return nil, warns, Issues{{Path: base, Code: code, Message: msg}}
	default:
		// Unchanged non-string input (e.g. a number): out of the coercion
		// layer's concern, rejected here by the declared type.
		return nil, nil, Issues{{Path: base, Code: code, Message: msg}}
	}
}

func conformStringList(base string, val any) (any, Warnings, Issues) {
	switch v := val.(type) {
	case string:
		return []string{v}, nil, nil
	case []any:
		out := make([]string, 0, len(v))
		var iss Issues
		for i, el := range v {
			s, ok := el.(string)
			if !ok {
				iss = AppendIssues(iss, Issue{
					Path:    fmt.Sprintf("%s/%d", base, i),
					Code:    CodeStringType,
					Message: "expected string",
				})
				continue
			}
			out = append(out, s)
		}
		if len(iss) > 0 {
			return nil, nil, iss
		}
		return out, nil, nil
	case []string:
		return v, nil, nil
	default:
		return nil, nil, Issues{{Path: base, Code: CodeListType, Message: "expected list of strings"}}
	}
}

func conformNested(base string, def *EntityDef, val any) (any, Warnings, Issues) {
	sub, ok := val.(map[string]any)
	if !ok {
		// A non-mapping where a nested entity is expected is a structural
		// failure, not a coercion attempt.
		return nil, nil, Issues{{Path: base, Code: CodeModelType, Message: "expected " + def.Name + " object"}}
	}
	conformed, warns, err := def.Conform(sub)
	if err != nil {
		if child, ok := AsIssues(err); ok {
			return nil, rebaseWarnings(base, warns), rebaseIssues(base, child)
		}
		return nil, rebaseWarnings(base, warns), Issues{{Path: base, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return conformed, rebaseWarnings(base, warns), nil
}

func conformEntityList(base string, def *EntityDef, val any) (any, Warnings, Issues) {
	list, ok := val.([]any)
	if !ok {
		return nil, nil, Issues{{Path: base, Code: CodeListType, Message: "expected list of " + def.Name}}
	}
	out := make([]map[string]any, 0, len(list))
	var warns Warnings
	var iss Issues
	for i, el := range list {
		conformed, w2, i2 := conformNested(fmt.Sprintf("%s/%d", base, i), def, el)
		warns = AppendWarnings(warns, w2...)
		if len(i2) > 0 {
			iss = AppendIssues(iss, i2...)
			continue
		}
		out = append(out, conformed.(map[string]any))
	}
	if len(iss) > 0 {
		return nil, warns, iss
	}
	return out, warns, nil
}

func conformRowList(base string, val any) (any, Warnings, Issues) {
	list, ok := val.([]any)
	if !ok {
		return nil, nil, Issues{{Path: base, Code: CodeListType, Message: "expected list of rows"}}
	}
	out := make([]map[string]string, 0, len(list))
	var iss Issues
	for i, el := range list {
		row, ok := el.(map[string]any)
		if !ok {
			iss = AppendIssues(iss, Issue{
				Path:    fmt.Sprintf("%s/%d", base, i),
				Code:    CodeModelType,
				Message: "expected row object",
			})
			continue
		}
		cells := make(map[string]string, len(row))
		for k, v := range row {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok {
				cells[k] = s
			} else {
				cells[k] = fmt.Sprint(v)
			}
		}
		out = append(out, cells)
	}
	if len(iss) > 0 {
		return nil, nil, iss
	}
	return out, nil, nil
}

// rebaseIssues prefixes child issue paths with the parent field path, matching
// the field-addressable error report contract.
func rebaseIssues(base string, child Issues) Issues {
	out := make(Issues, 0, len(child))
	for _, it := range child {
		out = append(out, Issue{Path: rebasePath(base, it.Path), Code: it.Code, Message: it.Message, Cause: it.Cause})
	}
	return out
}

func rebaseWarnings(base string, child Warnings) Warnings {
	if len(child) == 0 {
		return nil
	}
	out := make(Warnings, 0, len(child))
	for _, w := range child {
		out = append(out, Warning{Path: rebasePath(base, w.Path), Message: w.Message})
	}
	return out
}

func rebasePath(base, p string) string {
	if p == "" || p == "/" {
		return base
	}
	if p[0] == '/' {
		return base + p
	}
	return base + "/" + p
}
