package model

import (
	"time"

	"github.com/wrlc/alma-client-go/schema"
)

// HoldingRecord describes one holding location under a bibliographic record.
// The raw MARC holdings document arrives under the external key "anies".
type HoldingRecord struct {
	HoldingID                        string
	Link                             *string
	CreatedBy                        *string
	CreatedDate                      *time.Time
	LastModifiedBy                   *string
	LastModifiedDate                 *time.Time
	SuppressFromPublishing           *bool
	CalculatedSuppressFromPublishing *bool
	OriginatingSystem                *string
	OriginatingSystemID              *string
	Library                          *CodeDesc
	Location                         *CodeDesc
	CallNumberType                   *CodeDesc
	CallNumber                       *string
	AccessionNumber                  *string
	CopyID                           *string
	RecordData                       map[string]any
	BibData                          *BibLinkSummary
}

var holdingDef = &schema.EntityDef{
	Name: "HoldingRecord",
	Fields: []schema.Field{
		{Name: "holding_id", Kind: schema.KindString, Required: true},
		{Name: "link", Kind: schema.KindString},
		{Name: "created_by", Kind: schema.KindString},
		{Name: "created_date", Kind: schema.KindDateTime},
		{Name: "last_modified_by", Kind: schema.KindString},
		{Name: "last_modified_date", Kind: schema.KindDateTime},
		{Name: "suppress_from_publishing", Kind: schema.KindBool},
		{Name: "calculated_suppress_from_publishing", Kind: schema.KindBool},
		{Name: "originating_system", Kind: schema.KindString},
		{Name: "originating_system_id", Kind: schema.KindString},
		{Name: "library", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "location", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "call_number_type", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "call_number", Kind: schema.KindString},
		{Name: "accession_number", Kind: schema.KindString},
		{Name: "copy_id", Kind: schema.KindString},
		{Name: "record_data", Alias: "anies", Kind: schema.KindRaw},
		{Name: "bib_data", Kind: schema.KindEntity, Entity: bibLinkDef},
	},
}

// ParseHoldingRecord validates a loosely-typed mapping and builds the record.
func ParseHoldingRecord(m map[string]any) (*HoldingRecord, schema.Warnings, error) {
	cm, warns, err := parseEntity(holdingDef, m)
	if err != nil {
		return nil, warns, err
	}
	h := &HoldingRecord{
		HoldingID:                        reqString(cm, "holding_id"),
		Link:                             strPtr(cm, "link"),
		CreatedBy:                        strPtr(cm, "created_by"),
		CreatedDate:                      timePtr(cm, "created_date"),
		LastModifiedBy:                   strPtr(cm, "last_modified_by"),
		LastModifiedDate:                 timePtr(cm, "last_modified_date"),
		SuppressFromPublishing:           boolPtr(cm, "suppress_from_publishing"),
		CalculatedSuppressFromPublishing: boolPtr(cm, "calculated_suppress_from_publishing"),
		OriginatingSystem:                strPtr(cm, "originating_system"),
		OriginatingSystemID:              strPtr(cm, "originating_system_id"),
		Library:                          codeDescPtr(cm, "library"),
		Location:                         codeDescPtr(cm, "location"),
		CallNumberType:                   codeDescPtr(cm, "call_number_type"),
		CallNumber:                       strPtr(cm, "call_number"),
		AccessionNumber:                  strPtr(cm, "accession_number"),
		CopyID:                           strPtr(cm, "copy_id"),
		RecordData:                       rawMap(cm, "record_data"),
	}
	if sub, ok := nestedMap(cm, "bib_data"); ok {
		h.BibData = bibLinkFrom(sub)
	}
	return h, warns, nil
}

// ToMap dumps the record for the write path with external aliases re-applied
// and unset fields omitted.
func (h *HoldingRecord) ToMap() map[string]any {
	m := map[string]any{"holding_id": h.HoldingID}
	putString(m, "link", h.Link)
	putString(m, "created_by", h.CreatedBy)
	putTime(m, "created_date", h.CreatedDate)
	putString(m, "last_modified_by", h.LastModifiedBy)
	putTime(m, "last_modified_date", h.LastModifiedDate)
	putBool(m, "suppress_from_publishing", h.SuppressFromPublishing)
	putBool(m, "calculated_suppress_from_publishing", h.CalculatedSuppressFromPublishing)
	putString(m, "originating_system", h.OriginatingSystem)
	putString(m, "originating_system_id", h.OriginatingSystemID)
	putCodeDesc(m, "library", h.Library)
	putCodeDesc(m, "location", h.Location)
	putCodeDesc(m, "call_number_type", h.CallNumberType)
	putString(m, "call_number", h.CallNumber)
	putString(m, "accession_number", h.AccessionNumber)
	putString(m, "copy_id", h.CopyID)
	putRaw(m, "anies", h.RecordData)
	if h.BibData != nil {
		m["bib_data"] = h.BibData.ToMap()
	}
	return m
}
