package model

import (
	"time"

	"github.com/wrlc/alma-client-go/schema"
)

// BibRecord is a bibliographic description record. Only the MMS ID is
// required; everything else the service may or may not supply depending on
// the view requested. The raw MARC document arrives under the external key
// "record" and is kept as-is in RecordData.
type BibRecord struct {
	MMSID                      string
	Title                      *string
	Author                     *string
	ISBN                       *string
	ISSN                       *string
	NetworkNumber              []string
	PlaceOfPublication         *string
	DateOfPublication          *string
	PublisherConst             *string
	Link                       *string
	SuppressFromPublishing     *bool
	SuppressFromExternalSearch *bool
	SyncWithOCLC               *string
	SyncWithLibrariesAustralia *string
	OriginatingSystem          *string
	OriginatingSystemID        *string
	CatalogingLevel            *CodeDesc
	BriefLevel                 *CodeDesc
	RecordFormat               *string
	RecordData                 map[string]any
	CreationDate               *time.Time
	CreatedBy                  *string
	LastModifiedDate           *time.Time
	LastModifiedBy             *string
}

var bibDef = &schema.EntityDef{
	Name: "BibRecord",
	Fields: []schema.Field{
		{Name: "mms_id", Kind: schema.KindString, Required: true},
		{Name: "title", Kind: schema.KindString},
		{Name: "author", Kind: schema.KindString},
		{Name: "isbn", Kind: schema.KindString},
		{Name: "issn", Kind: schema.KindString},
		{Name: "network_number", Kind: schema.KindStringList},
		{Name: "place_of_publication", Kind: schema.KindString},
		{Name: "date_of_publication", Kind: schema.KindString},
		{Name: "publisher_const", Kind: schema.KindString},
		{Name: "link", Kind: schema.KindString},
		{Name: "suppress_from_publishing", Kind: schema.KindBool},
		{Name: "suppress_from_external_search", Kind: schema.KindBool},
		{Name: "sync_with_oclc", Kind: schema.KindString},
		{Name: "sync_with_libraries_australia", Kind: schema.KindString},
		{Name: "originating_system", Kind: schema.KindString},
		{Name: "originating_system_id", Kind: schema.KindString},
		{Name: "cataloging_level", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "brief_level", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "record_format", Kind: schema.KindString},
		{Name: "record_data", Alias: "record", Kind: schema.KindRaw},
		{Name: "creation_date", Kind: schema.KindDateTime},
		{Name: "created_by", Kind: schema.KindString},
		{Name: "last_modified_date", Kind: schema.KindDateTime},
		{Name: "last_modified_by", Kind: schema.KindString},
	},
}

// ParseBibRecord validates a loosely-typed mapping and builds the record.
func ParseBibRecord(m map[string]any) (*BibRecord, schema.Warnings, error) {
	cm, warns, err := parseEntity(bibDef, m)
	if err != nil {
		return nil, warns, err
	}
	b := &BibRecord{
		MMSID:                      reqString(cm, "mms_id"),
		Title:                      strPtr(cm, "title"),
		Author:                     strPtr(cm, "author"),
		ISBN:                       strPtr(cm, "isbn"),
		ISSN:                       strPtr(cm, "issn"),
		NetworkNumber:              stringsVal(cm, "network_number"),
		PlaceOfPublication:         strPtr(cm, "place_of_publication"),
		DateOfPublication:          strPtr(cm, "date_of_publication"),
		PublisherConst:             strPtr(cm, "publisher_const"),
		Link:                       strPtr(cm, "link"),
		SuppressFromPublishing:     boolPtr(cm, "suppress_from_publishing"),
		SuppressFromExternalSearch: boolPtr(cm, "suppress_from_external_search"),
		SyncWithOCLC:               strPtr(cm, "sync_with_oclc"),
		SyncWithLibrariesAustralia: strPtr(cm, "sync_with_libraries_australia"),
		OriginatingSystem:          strPtr(cm, "originating_system"),
		OriginatingSystemID:        strPtr(cm, "originating_system_id"),
		CatalogingLevel:            codeDescPtr(cm, "cataloging_level"),
		BriefLevel:                 codeDescPtr(cm, "brief_level"),
		RecordFormat:               strPtr(cm, "record_format"),
		RecordData:                 rawMap(cm, "record_data"),
		CreationDate:               timePtr(cm, "creation_date"),
		CreatedBy:                  strPtr(cm, "created_by"),
		LastModifiedDate:           timePtr(cm, "last_modified_date"),
		LastModifiedBy:             strPtr(cm, "last_modified_by"),
	}
	return b, warns, nil
}

// ToMap dumps the record for the write path with external aliases re-applied
// and unset fields omitted.
func (b *BibRecord) ToMap() map[string]any {
	m := map[string]any{"mms_id": b.MMSID}
	putString(m, "title", b.Title)
	putString(m, "author", b.Author)
	putString(m, "isbn", b.ISBN)
	putString(m, "issn", b.ISSN)
	if b.NetworkNumber != nil {
		m["network_number"] = b.NetworkNumber
	}
	putString(m, "place_of_publication", b.PlaceOfPublication)
	putString(m, "date_of_publication", b.DateOfPublication)
	putString(m, "publisher_const", b.PublisherConst)
	putString(m, "link", b.Link)
	putBool(m, "suppress_from_publishing", b.SuppressFromPublishing)
	putBool(m, "suppress_from_external_search", b.SuppressFromExternalSearch)
	putString(m, "sync_with_oclc", b.SyncWithOCLC)
	putString(m, "sync_with_libraries_australia", b.SyncWithLibrariesAustralia)
	putString(m, "originating_system", b.OriginatingSystem)
	putString(m, "originating_system_id", b.OriginatingSystemID)
	putCodeDesc(m, "cataloging_level", b.CatalogingLevel)
	putCodeDesc(m, "brief_level", b.BriefLevel)
	putString(m, "record_format", b.RecordFormat)
	putRaw(m, "record", b.RecordData)
	putTime(m, "creation_date", b.CreationDate)
	putString(m, "created_by", b.CreatedBy)
	putTime(m, "last_modified_date", b.LastModifiedDate)
	putString(m, "last_modified_by", b.LastModifiedBy)
	return m
}

// BibLinkSummary is the compact bibliographic linkage embedded in holding and
// item records. Every field is optional; an empty summary is valid.
type BibLinkSummary struct {
	MMSID  *string
	Title  *string
	Author *string
	ISBN   *string
	Link   *string
}

var bibLinkDef = &schema.EntityDef{
	Name: "BibLinkSummary",
	Fields: []schema.Field{
		{Name: "mms_id", Kind: schema.KindString},
		{Name: "title", Kind: schema.KindString},
		{Name: "author", Kind: schema.KindString},
		{Name: "isbn", Kind: schema.KindString},
		{Name: "link", Kind: schema.KindString},
	},
}

// ParseBibLinkSummary validates and builds a BibLinkSummary.
func ParseBibLinkSummary(m map[string]any) (*BibLinkSummary, schema.Warnings, error) {
	cm, warns, err := parseEntity(bibLinkDef, m)
	if err != nil {
		return nil, warns, err
	}
	return bibLinkFrom(cm), warns, nil
}

func bibLinkFrom(cm map[string]any) *BibLinkSummary {
	return &BibLinkSummary{
		MMSID:  strPtr(cm, "mms_id"),
		Title:  strPtr(cm, "title"),
		Author: strPtr(cm, "author"),
		ISBN:   strPtr(cm, "isbn"),
		Link:   strPtr(cm, "link"),
	}
}

// ToMap dumps the summary for the write path, omitting unset fields.
func (b *BibLinkSummary) ToMap() map[string]any {
	m := make(map[string]any, 5)
	putString(m, "mms_id", b.MMSID)
	putString(m, "title", b.Title)
	putString(m, "author", b.Author)
	putString(m, "isbn", b.ISBN)
	putString(m, "link", b.Link)
	return m
}
