package model

import (
	"fmt"

	"github.com/wrlc/alma-client-go/schema"
)

// AnalyticsColumn describes one column of an analytics report: the business
// heading plus the declared data type, when the report schema carries one.
type AnalyticsColumn struct {
	Name     string
	DataType *string
}

var analyticsColumnDef = &schema.EntityDef{
	Name: "AnalyticsColumn",
	Fields: []schema.Field{
		{Name: "name", Kind: schema.KindString, Required: true},
		{Name: "data_type", Kind: schema.KindString},
	},
}

// AnalyticsReportResult is one page of an analytics report. Rows are keyed by
// the business column headings; Columns preserves the report's column order.
// A report with no matching rows is valid and carries empty lists.
type AnalyticsReportResult struct {
	Columns         []AnalyticsColumn
	Rows            []map[string]string
	IsFinished      bool
	ResumptionToken *string
	QueryPath       *string
	JobID           *string
}

var analyticsReportDef = &schema.EntityDef{
	Name: "AnalyticsReportResult",
	Fields: []schema.Field{
		{Name: "columns", Kind: schema.KindEntityList, Entity: analyticsColumnDef, EmptyListDefault: true},
		{Name: "rows", Kind: schema.KindRowList, EmptyListDefault: true},
		{Name: "is_finished", Alias: "IsFinished", Kind: schema.KindBool, Required: true},
		{Name: "resumption_token", Alias: "ResumptionToken", Kind: schema.KindString},
		{Name: "query_path", Kind: schema.KindString},
		{Name: "job_id", Kind: schema.KindString},
	},
}

// ParseAnalyticsReport validates a loosely-typed report mapping and builds the
// result. An unfinished report without a resumption token is still valid but
// unusable for paging, so it surfaces as a warning.
func ParseAnalyticsReport(m map[string]any) (*AnalyticsReportResult, schema.Warnings, error) {
	cm, warns, err := parseEntity(analyticsReportDef, m)
	if err != nil {
		return nil, warns, err
	}
	r := &AnalyticsReportResult{
		IsFinished:      reqBool(cm, "is_finished"),
		ResumptionToken: strPtr(cm, "resumption_token"),
		QueryPath:       strPtr(cm, "query_path"),
		JobID:           strPtr(cm, "job_id"),
	}
	cols, _ := cm["columns"].([]map[string]any)
	r.Columns = make([]AnalyticsColumn, 0, len(cols))
	for _, c := range cols {
		r.Columns = append(r.Columns, AnalyticsColumn{
			Name:     reqString(c, "name"),
			DataType: strPtr(c, "data_type"),
		})
	}
	r.Rows, _ = cm["rows"].([]map[string]string)
	if !r.IsFinished && r.ResumptionToken == nil {
		path := "unknown"
		if r.QueryPath != nil {
			path = *r.QueryPath
		}
		warns = schema.AppendWarnings(warns, schema.Warning{
			Path: "/resumption_token",
			Message: fmt.Sprintf(
				"results for report %q are incomplete (is_finished=false) but no resumption_token was provided", path),
		})
	}
	return r, warns, nil
}

func reqBool(m map[string]any, k string) bool {
	b, _ := m[k].(bool)
	return b
}

// AnalyticsPath is one entry of the analytics catalog listing: the repository
// path of a report or folder plus whatever descriptive attributes the listing
// includes.
type AnalyticsPath struct {
	Path        string
	Name        *string
	Type        *string
	Description *string
}

var analyticsPathDef = &schema.EntityDef{
	Name: "AnalyticsPath",
	Fields: []schema.Field{
		{Name: "path", Kind: schema.KindString, Required: true},
		{Name: "name", Kind: schema.KindString},
		{Name: "type", Kind: schema.KindString},
		{Name: "description", Kind: schema.KindString},
	},
}

// ParseAnalyticsPath validates and builds one catalog path entry.
func ParseAnalyticsPath(m map[string]any) (*AnalyticsPath, schema.Warnings, error) {
	cm, warns, err := parseEntity(analyticsPathDef, m)
	if err != nil {
		return nil, warns, err
	}
	p := &AnalyticsPath{
		Path:        reqString(cm, "path"),
		Name:        strPtr(cm, "name"),
		Type:        strPtr(cm, "type"),
		Description: strPtr(cm, "description"),
	}
	return p, warns, nil
}
