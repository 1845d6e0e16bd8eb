package model

import (
	"time"

	"github.com/wrlc/alma-client-go/schema"
)

// ItemDetail carries the item-level fields of an item record. Arrival and
// inventory dates are calendar dates; creation and modification are instants.
type ItemDetail struct {
	PID                  string
	Barcode              *string
	CreationDate         *time.Time
	ModificationDate     *time.Time
	ArrivalDate          *time.Time
	InventoryDate        *time.Time
	BaseStatus           *CodeDesc
	PhysicalMaterialType *CodeDesc
	Policy               *CodeDesc
	ProcessType          *CodeDesc
	Library              *CodeDesc
	Location             *CodeDesc
	Description          *string
	EnumerationA         *string
	ChronologyI          *string
	Pieces               *string
	PublicNote           *string
	IsMagnetic           *bool
	Requested            *bool
}

var itemDetailDef = &schema.EntityDef{
	Name: "ItemDetail",
	Fields: []schema.Field{
		{Name: "pid", Kind: schema.KindString, Required: true},
		{Name: "barcode", Kind: schema.KindString},
		{Name: "creation_date", Kind: schema.KindDateTime},
		{Name: "modification_date", Kind: schema.KindDateTime},
		{Name: "arrival_date", Kind: schema.KindDate},
		{Name: "inventory_date", Kind: schema.KindDate},
		{Name: "base_status", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "physical_material_type", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "policy", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "process_type", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "library", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "location", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "description", Kind: schema.KindString},
		{Name: "enumeration_a", Kind: schema.KindString},
		{Name: "chronology_i", Kind: schema.KindString},
		{Name: "pieces", Kind: schema.KindString},
		{Name: "public_note", Kind: schema.KindString},
		{Name: "is_magnetic", Kind: schema.KindBool},
		{Name: "requested", Kind: schema.KindBool},
	},
}

// ParseItemDetail validates a loosely-typed mapping and builds the detail.
func ParseItemDetail(m map[string]any) (*ItemDetail, schema.Warnings, error) {
	cm, warns, err := parseEntity(itemDetailDef, m)
	if err != nil {
		return nil, warns, err
	}
	return itemDetailFrom(cm), warns, nil
}

func itemDetailFrom(cm map[string]any) *ItemDetail {
	return &ItemDetail{
		PID:                  reqString(cm, "pid"),
		Barcode:              strPtr(cm, "barcode"),
		CreationDate:         timePtr(cm, "creation_date"),
		ModificationDate:     timePtr(cm, "modification_date"),
		ArrivalDate:          timePtr(cm, "arrival_date"),
		InventoryDate:        timePtr(cm, "inventory_date"),
		BaseStatus:           codeDescPtr(cm, "base_status"),
		PhysicalMaterialType: codeDescPtr(cm, "physical_material_type"),
		Policy:               codeDescPtr(cm, "policy"),
		ProcessType:          codeDescPtr(cm, "process_type"),
		Library:              codeDescPtr(cm, "library"),
		Location:             codeDescPtr(cm, "location"),
		Description:          strPtr(cm, "description"),
		EnumerationA:         strPtr(cm, "enumeration_a"),
		ChronologyI:          strPtr(cm, "chronology_i"),
		Pieces:               strPtr(cm, "pieces"),
		PublicNote:           strPtr(cm, "public_note"),
		IsMagnetic:           boolPtr(cm, "is_magnetic"),
		Requested:            boolPtr(cm, "requested"),
	}
}

// ToMap dumps the detail for the write path, omitting unset fields.
func (d *ItemDetail) ToMap() map[string]any {
	m := map[string]any{"pid": d.PID}
	putString(m, "barcode", d.Barcode)
	putTime(m, "creation_date", d.CreationDate)
	putTime(m, "modification_date", d.ModificationDate)
	if d.ArrivalDate != nil {
		m["arrival_date"] = d.ArrivalDate.Format("2006-01-02")
	}
	if d.InventoryDate != nil {
		m["inventory_date"] = d.InventoryDate.Format("2006-01-02")
	}
	putCodeDesc(m, "base_status", d.BaseStatus)
	putCodeDesc(m, "physical_material_type", d.PhysicalMaterialType)
	putCodeDesc(m, "policy", d.Policy)
	putCodeDesc(m, "process_type", d.ProcessType)
	putCodeDesc(m, "library", d.Library)
	putCodeDesc(m, "location", d.Location)
	putString(m, "description", d.Description)
	putString(m, "enumeration_a", d.EnumerationA)
	putString(m, "chronology_i", d.ChronologyI)
	putString(m, "pieces", d.Pieces)
	putString(m, "public_note", d.PublicNote)
	putBool(m, "is_magnetic", d.IsMagnetic)
	putBool(m, "requested", d.Requested)
	return m
}

// HoldingLinkSummary is the holding linkage embedded in an item record. The
// service serializes the permanent library and location under the plain keys
// "library" and "location"; internally they keep their unambiguous names.
type HoldingLinkSummary struct {
	HoldingID         string
	Link              *string
	CallNumber        *string
	PermanentLibrary  *CodeDesc
	PermanentLocation *CodeDesc
	InTempLocation    *bool
	TempLibrary       *CodeDesc
	TempLocation      *CodeDesc
}

var holdingLinkDef = &schema.EntityDef{
	Name: "HoldingLinkSummary",
	Fields: []schema.Field{
		{Name: "holding_id", Kind: schema.KindString, Required: true},
		{Name: "link", Kind: schema.KindString},
		{Name: "call_number", Kind: schema.KindString},
		{Name: "permanent_library", Alias: "library", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "permanent_location", Alias: "location", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "in_temp_location", Kind: schema.KindBool},
		{Name: "temp_library", Kind: schema.KindEntity, Entity: codeDescDef},
		{Name: "temp_location", Kind: schema.KindEntity, Entity: codeDescDef},
	},
}

// ParseHoldingLinkSummary validates and builds a HoldingLinkSummary.
func ParseHoldingLinkSummary(m map[string]any) (*HoldingLinkSummary, schema.Warnings, error) {
	cm, warns, err := parseEntity(holdingLinkDef, m)
	if err != nil {
		return nil, warns, err
	}
	return holdingLinkFrom(cm), warns, nil
}

func holdingLinkFrom(cm map[string]any) *HoldingLinkSummary {
	return &HoldingLinkSummary{
		HoldingID:         reqString(cm, "holding_id"),
		Link:              strPtr(cm, "link"),
		CallNumber:        strPtr(cm, "call_number"),
		PermanentLibrary:  codeDescPtr(cm, "permanent_library"),
		PermanentLocation: codeDescPtr(cm, "permanent_location"),
		InTempLocation:    boolPtr(cm, "in_temp_location"),
		TempLibrary:       codeDescPtr(cm, "temp_library"),
		TempLocation:      codeDescPtr(cm, "temp_location"),
	}
}

// ToMap dumps the summary with the external "library"/"location" aliases
// re-applied.
func (h *HoldingLinkSummary) ToMap() map[string]any {
	m := map[string]any{"holding_id": h.HoldingID}
	putString(m, "link", h.Link)
	putString(m, "call_number", h.CallNumber)
	putCodeDesc(m, "library", h.PermanentLibrary)
	putCodeDesc(m, "location", h.PermanentLocation)
	putBool(m, "in_temp_location", h.InTempLocation)
	putCodeDesc(m, "temp_library", h.TempLibrary)
	putCodeDesc(m, "temp_location", h.TempLocation)
	return m
}

// ItemRecord is the composite item document: item detail plus holding and bib
// linkage. All three sub-records are mandatory even though every field inside
// the bib linkage is optional; a missing sub-record is a validation failure
// on its own.
type ItemRecord struct {
	ItemData    *ItemDetail
	HoldingData *HoldingLinkSummary
	BibData     *BibLinkSummary
	Link        *string
}

var itemDef = &schema.EntityDef{
	Name: "ItemRecord",
	Fields: []schema.Field{
		{Name: "item_data", Kind: schema.KindEntity, Entity: itemDetailDef, Required: true},
		{Name: "holding_data", Kind: schema.KindEntity, Entity: holdingLinkDef, Required: true},
		{Name: "bib_data", Kind: schema.KindEntity, Entity: bibLinkDef, Required: true},
		{Name: "link", Kind: schema.KindString},
	},
}

// ParseItemRecord validates a loosely-typed mapping and builds the record.
func ParseItemRecord(m map[string]any) (*ItemRecord, schema.Warnings, error) {
	cm, warns, err := parseEntity(itemDef, m)
	if err != nil {
		return nil, warns, err
	}
	rec := &ItemRecord{Link: strPtr(cm, "link")}
	if sub, ok := nestedMap(cm, "item_data"); ok {
		rec.ItemData = itemDetailFrom(sub)
	}
	if sub, ok := nestedMap(cm, "holding_data"); ok {
		rec.HoldingData = holdingLinkFrom(sub)
	}
	if sub, ok := nestedMap(cm, "bib_data"); ok {
		rec.BibData = bibLinkFrom(sub)
	}
	return rec, warns, nil
}

// ToMap dumps the composite record for the write path.
func (r *ItemRecord) ToMap() map[string]any {
	m := make(map[string]any, 4)
	if r.ItemData != nil {
		m["item_data"] = r.ItemData.ToMap()
	}
	if r.HoldingData != nil {
		m["holding_data"] = r.HoldingData.ToMap()
	}
	if r.BibData != nil {
		m["bib_data"] = r.BibData.ToMap()
	}
	putString(m, "link", r.Link)
	return m
}
