package model_test

import (
	"testing"
	"time"

	"github.com/wrlc/alma-client-go/model"
	"github.com/wrlc/alma-client-go/schema"
)

func fullBibDoc() map[string]any {
	return map[string]any{
		"mms_id":                        "991234567890987",
		"title":                         "Comprehensive Test Title",
		"author":                        "Author, Test A.",
		"network_number":                []any{"(OCoLC)12345678"},
		"place_of_publication":          "Testville",
		"publisher_const":               "Test Publisher",
		"link":                          "https://example.com/almaws/v1/bibs/991234567890987",
		"suppress_from_publishing":      "false",
		"suppress_from_external_search": true,
		"cataloging_level":              map[string]any{"value": "04", "desc": "Minimal level"},
		"record_format":                 "marc21",
		"record": map[string]any{
			"leader": "00000cam a2200000 i 4500",
		},
		"creation_date":      "2023-01-10T00:00:00Z",
		"created_by":         "import_user",
		"last_modified_date": "2024-05-02T13:20:00Z",
		"last_modified_by":   "system_update",
	}
}

func TestParseBibRecordMinimal(t *testing.T) {
	bib, warns, err := model.ParseBibRecord(map[string]any{"mms_id": "99123"})
	if err != nil {
		t.Fatalf("ParseBibRecord: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %+v", warns)
	}
	if bib.MMSID != "99123" {
		t.Errorf("MMSID = %q", bib.MMSID)
	}
	if bib.Title != nil || bib.SuppressFromPublishing != nil || bib.CreationDate != nil {
		t.Error("optional fields should stay nil when absent")
	}
}

func TestParseBibRecordFull(t *testing.T) {
	bib, warns, err := model.ParseBibRecord(fullBibDoc())
	if err != nil {
		t.Fatalf("ParseBibRecord: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %+v", warns)
	}
	if *bib.Title != "Comprehensive Test Title" {
		t.Errorf("Title = %q", *bib.Title)
	}
	if len(bib.NetworkNumber) != 1 || bib.NetworkNumber[0] != "(OCoLC)12345678" {
		t.Errorf("NetworkNumber = %v", bib.NetworkNumber)
	}
	if *bib.SuppressFromPublishing != false {
		t.Error("string \"false\" should coerce to false")
	}
	if *bib.SuppressFromExternalSearch != true {
		t.Error("typed boolean should pass through")
	}
	if *bib.CatalogingLevel.Value != "04" || *bib.CatalogingLevel.Desc != "Minimal level" {
		t.Errorf("CatalogingLevel = %+v", bib.CatalogingLevel)
	}
	if bib.RecordData["leader"] != "00000cam a2200000 i 4500" {
		t.Errorf("RecordData = %v (alias \"record\" not resolved)", bib.RecordData)
	}
	want := time.Date(2024, 5, 2, 13, 20, 0, 0, time.UTC)
	if !bib.LastModifiedDate.Equal(want) {
		t.Errorf("LastModifiedDate = %v, want %v", bib.LastModifiedDate, want)
	}
}

func TestParseBibRecordMissingID(t *testing.T) {
	_, _, err := model.ParseBibRecord(map[string]any{"title": "Only Title"})
	iss, ok := schema.AsIssues(err)
	if !ok {
		t.Fatalf("want Issues, got %v", err)
	}
	if len(iss) != 1 || iss[0].Path != "/mms_id" || iss[0].Code != schema.CodeMissing {
		t.Errorf("issues = %+v, want missing at /mms_id", iss)
	}
}

func TestParseBibRecordSoftDateWarning(t *testing.T) {
	doc := map[string]any{"mms_id": "99123", "creation_date": "sometime soon"}
	_, warns, err := model.ParseBibRecord(doc)
	if err == nil {
		t.Fatal("want validation error for unparseable creation_date")
	}
	if len(warns) != 1 || warns[0].Path != "/creation_date" {
		t.Errorf("warnings = %+v", warns)
	}
}

func TestBibRecordToMapRoundTrip(t *testing.T) {
	bib, _, err := model.ParseBibRecord(fullBibDoc())
	if err != nil {
		t.Fatalf("ParseBibRecord: %v", err)
	}
	m := bib.ToMap()
	if m["mms_id"] != "991234567890987" {
		t.Errorf("mms_id = %v", m["mms_id"])
	}
	if _, present := m["record_data"]; present {
		t.Error("dump must use the external key \"record\"")
	}
	rec, ok := m["record"].(map[string]any)
	if !ok || rec["leader"] != "00000cam a2200000 i 4500" {
		t.Errorf("record = %v", m["record"])
	}
	if m["suppress_from_publishing"] != false {
		t.Errorf("suppress_from_publishing = %v", m["suppress_from_publishing"])
	}
	if m["creation_date"] != "2023-01-10T00:00:00Z" {
		t.Errorf("creation_date = %v", m["creation_date"])
	}
	if _, present := m["issn"]; present {
		t.Error("unset fields must be omitted from the dump")
	}
}

func TestParseBibLinkSummaryEmpty(t *testing.T) {
	link, _, err := model.ParseBibLinkSummary(map[string]any{})
	if err != nil {
		t.Fatalf("an empty summary should be valid: %v", err)
	}
	if link.MMSID != nil || link.Title != nil {
		t.Errorf("link = %+v", link)
	}
}
