// Package model holds the typed records served by the Alma API. Every record
// is built exactly once from a conformed mapping and is read-only afterwards;
// the write path dumps a record back into a mapping with external aliases
// re-applied.
package model

import (
	"time"

	"github.com/wrlc/alma-client-go/schema"
)

// Readers below assume a mapping already conformed by a schema.EntityDef:
// values carry their strict types and absent fields are simply missing keys.

func reqString(m map[string]any, k string) string {
	s, _ := m[k].(string)
	return s
}

func strPtr(m map[string]any, k string) *string {
	if s, ok := m[k].(string); ok {
		return &s
	}
	return nil
}

func boolPtr(m map[string]any, k string) *bool {
	if b, ok := m[k].(bool); ok {
		return &b
	}
	return nil
}

func timePtr(m map[string]any, k string) *time.Time {
	if t, ok := m[k].(time.Time); ok {
		return &t
	}
	return nil
}

func stringsVal(m map[string]any, k string) []string {
	if v, ok := m[k].([]string); ok {
		return v
	}
	return nil
}

func rawMap(m map[string]any, k string) map[string]any {
	if v, ok := m[k].(map[string]any); ok {
		return v
	}
	return nil
}

func nestedMap(m map[string]any, k string) (map[string]any, bool) {
	v, ok := m[k].(map[string]any)
	return v, ok
}

// putString/putBool/putTime/putRaw write optional fields into a dump mapping,
// omitting unset values.

func putString(m map[string]any, k string, v *string) {
	if v != nil {
		m[k] = *v
	}
}

func putBool(m map[string]any, k string, v *bool) {
	if v != nil {
		m[k] = *v
	}
}

func putTime(m map[string]any, k string, v *time.Time) {
	if v != nil {
		m[k] = v.Format(time.RFC3339)
	}
}

func putRaw(m map[string]any, k string, v map[string]any) {
	if v != nil {
		m[k] = v
	}
}

func parseEntity(def *schema.EntityDef, m map[string]any) (map[string]any, schema.Warnings, error) {
	cm, warns, err := def.Conform(m)
	if err != nil {
		return nil, warns, err
	}
	return cm, warns, nil
}
