package normalize_test

import (
	"errors"
	"testing"

	"github.com/wrlc/alma-client-go/normalize"
)

func sampleReportDoc() map[string]any {
	return map[string]any{
		"QueryResult": map[string]any{
			"ResultXml": map[string]any{
				"Schema": map[string]any{
					"complexType": map[string]any{
						"@name": "Row",
						"sequence": map[string]any{
							"element": []any{
								map[string]any{"@name": "Column0", "@saw-sql:columnHeading": "MMS ID", "@type": "xsd:string"},
								map[string]any{"@name": "Column1", "@saw-sql:columnHeading": "Title", "@type": "xsd:string"},
							},
						},
					},
				},
				"rowset": map[string]any{
					"Row": []any{
						map[string]any{"Column0": "99123", "Column1": "Title A"},
						map[string]any{"Column0": "99456", "Column1": "Title B"},
					},
				},
			},
			"ResumptionToken": "token123",
			"IsFinished":      "false",
		},
	}
}

func TestExtractReportJSON(t *testing.T) {
	out, err := normalize.ExtractReport(sampleReportDoc())
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	if out["IsFinished"] != "false" {
		t.Errorf("IsFinished = %v", out["IsFinished"])
	}
	if out["ResumptionToken"] != "token123" {
		t.Errorf("ResumptionToken = %v", out["ResumptionToken"])
	}
	cols := out["columns"].([]any)
	if len(cols) != 2 {
		t.Fatalf("columns = %+v", cols)
	}
	first := cols[0].(map[string]any)
	if first["name"] != "MMS ID" || first["data_type"] != "xsd:string" {
		t.Errorf("column 0 = %+v", first)
	}

	rows := out["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	r0 := rows[0].(map[string]any)
	if r0["MMS ID"] != "99123" || r0["Title"] != "Title A" {
		t.Errorf("row 0 not remapped to business headings: %+v", r0)
	}
	if _, present := r0["Column0"]; present {
		t.Error("synthetic key survived remapping")
	}
}

func TestExtractReportXML(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<QueryResult>
  <ResultXml>
    <rowset>
      <xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:saw-sql="urn:saw-sql">
        <xsd:complexType name="Row">
          <xsd:sequence>
            <xsd:element name="Column0" saw-sql:columnHeading="MMS ID" type="xsd:string"/>
            <xsd:element name="Column1" saw-sql:columnHeading="Title" type="xsd:string"/>
          </xsd:sequence>
        </xsd:complexType>
      </xsd:schema>
      <Row><Column0>99123</Column0><Column1>Title A</Column1></Row>
      <Row><Column0>99456</Column0><Column1>Title B</Column1></Row>
    </rowset>
  </ResultXml>
  <ResumptionToken>tokenXML123</ResumptionToken>
  <IsFinished>false</IsFinished>
</QueryResult>`)
	doc, err := normalize.Decode(body, "application/xml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := normalize.ExtractReport(doc)
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	if out["IsFinished"] != "false" || out["ResumptionToken"] != "tokenXML123" {
		t.Errorf("flags = %v / %v", out["IsFinished"], out["ResumptionToken"])
	}
	cols := out["columns"].([]any)
	if len(cols) != 2 || cols[0].(map[string]any)["name"] != "MMS ID" {
		t.Fatalf("columns = %+v", cols)
	}
	if cols[0].(map[string]any)["data_type"] != "xsd:string" {
		t.Errorf("column 0 = %+v, want data_type from the type attribute", cols[0])
	}
	rows := out["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	r1 := rows[1].(map[string]any)
	if r1["MMS ID"] != "99456" || r1["Title"] != "Title B" {
		t.Errorf("row 1 = %+v", r1)
	}
}

// The XML decoder strips namespace prefixes, so a decoded report carries
// schema/complexType/sequence/element keys and a bare @columnHeading
// attribute rather than the xsd:/saw-sql: forms of the wire document.
func TestExtractReportStrippedPrefixKeys(t *testing.T) {
	doc := map[string]any{
		"QueryResult": map[string]any{
			"IsFinished": "true",
			"ResultXml": map[string]any{
				"rowset": map[string]any{
					"schema": map[string]any{
						"complexType": map[string]any{
							"sequence": map[string]any{
								"element": []any{
									map[string]any{"@name": "Column0", "@columnHeading": "MMS ID", "@type": "xsd:string"},
								},
							},
						},
					},
					"Row": []any{map[string]any{"Column0": "99123"}},
				},
			},
		},
	}
	out, err := normalize.ExtractReport(doc)
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	cols := out["columns"].([]any)
	if len(cols) != 1 || cols[0].(map[string]any)["name"] != "MMS ID" {
		t.Fatalf("columns = %+v, want the stripped-prefix schema to be read", cols)
	}
	rows := out["rows"].([]any)
	if len(rows) != 1 || rows[0].(map[string]any)["MMS ID"] != "99123" {
		t.Errorf("rows = %+v, want remapped keys", rows)
	}
}

func TestExtractReportSingleRow(t *testing.T) {
	doc := map[string]any{
		"QueryResult": map[string]any{
			"IsFinished": "true",
			"ResultXml": map[string]any{
				"rowset": map[string]any{
					"Row": map[string]any{"Column0": "only"},
				},
			},
		},
	}
	out, err := normalize.ExtractReport(doc)
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	rows := out["rows"].([]any)
	if len(rows) != 1 {
		t.Fatalf("a bare Row object should collapse to one row, got %+v", rows)
	}
	// No schema: synthetic keys are kept.
	if rows[0].(map[string]any)["Column0"] != "only" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestExtractReportMissingIsFinished(t *testing.T) {
	doc := map[string]any{"QueryResult": map[string]any{"ResultXml": map[string]any{}}}
	_, err := normalize.ExtractReport(doc)
	var se *normalize.StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("want StructuralError, got %v", err)
	}
	if se.Msg != "Missing 'IsFinished' flag in analytics response structure" {
		t.Errorf("Msg = %q", se.Msg)
	}
}

func TestExtractReportEmpty(t *testing.T) {
	doc := map[string]any{"QueryResult": map[string]any{"IsFinished": "true"}}
	out, err := normalize.ExtractReport(doc)
	if err != nil {
		t.Fatalf("ExtractReport: %v", err)
	}
	if len(out["rows"].([]any)) != 0 || len(out["columns"].([]any)) != 0 {
		t.Errorf("empty report should carry empty lists: %+v", out)
	}
	if _, present := out["ResumptionToken"]; present {
		t.Error("absent ResumptionToken must stay absent")
	}
}

func TestPathEntriesJSON(t *testing.T) {
	doc := map[string]any{
		"path": []any{
			"/shared/University/Reports/Usage Report",
			map[string]any{"@path": "/shared/University/Dashboards", "@type": "Folder"},
		},
	}
	entries := normalize.PathEntries(doc)
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0]["path"] != "/shared/University/Reports/Usage Report" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1]["path"] != "/shared/University/Dashboards" || entries[1]["type"] != "Folder" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestPathEntriesXML(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<AnalyticsPathsResult isFinished="true">
  <path path="/shared/University/Reports/Usage Report" type="Report"/>
  <path path="/shared/University/Dashboards" type="Folder" name="Dashboards"/>
</AnalyticsPathsResult>`)
	doc, err := normalize.Decode(body, "application/xml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	entries := normalize.PathEntries(doc)
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0]["path"] != "/shared/University/Reports/Usage Report" || entries[0]["type"] != "Report" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1]["name"] != "Dashboards" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestPathEntriesAbsent(t *testing.T) {
	if entries := normalize.PathEntries(map[string]any{}); len(entries) != 0 {
		t.Errorf("entries = %+v", entries)
	}
}
