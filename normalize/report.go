package normalize

import "strings"

// Analytics report documents embed an OBI rowset: a column schema mapping
// synthetic keys (Column0, Column1, ...) to business headings, and Row
// elements keyed by the synthetic names. JSON and XML responses nest the
// fragments differently; both collapse to the same canonical report mapping
// here.

// ExtractReport locates the report fragments inside a decoded analytics
// document and produces a canonical mapping with keys "columns", "rows",
// "IsFinished" and (when present) "ResumptionToken". Row keys are remapped to
// business headings when the column schema is available; without a schema the
// synthetic names are kept and zero columns are returned.
//
// A document without the IsFinished flag is structurally unexpected and
// yields a StructuralError rather than a validation failure.
func ExtractReport(doc map[string]any) (map[string]any, error) {
	qr := doc
	if sub, ok := doc["QueryResult"].(map[string]any); ok {
		qr = sub
	}
	finished, ok := qr["IsFinished"]
	if !ok {
		return nil, &StructuralError{Msg: "Missing 'IsFinished' flag in analytics response structure"}
	}
	out := map[string]any{"IsFinished": finished}
	if tok, ok := qr["ResumptionToken"]; ok {
		out["ResumptionToken"] = tok
	}

	resultXML, _ := qr["ResultXml"].(map[string]any)
	var rows []any
	var elements []any
	if resultXML != nil {
		rowset, _ := resultXML["rowset"].(map[string]any)
		if rowset != nil {
			rows = AsList(rowset["Row"])
		}
		elements = columnElements(resultXML, rowset)
	}

	headings := make(map[string]string, len(elements))
	columns := make([]any, 0, len(elements))
	for _, el := range elements {
		em, ok := el.(map[string]any)
		if !ok {
			continue
		}
		synthetic, _ := em["@name"].(string)
		heading := columnHeading(em)
		name := heading
		if name == "" {
			name = synthetic
		}
		if name == "" {
			continue
		}
		if synthetic != "" && heading != "" {
			headings[synthetic] = heading
		}
		col := map[string]any{"name": name}
		if dt, _ := em["@type"].(string); dt != "" {
			col["data_type"] = dt
		}
		columns = append(columns, col)
	}

	outRows := make([]any, 0, len(rows))
	for _, r := range rows {
		rm, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if len(headings) == 0 {
			outRows = append(outRows, rm)
			continue
		}
		remapped := make(map[string]any, len(rm))
		for k, v := range rm {
			if business, ok := headings[k]; ok {
				remapped[business] = v
			} else {
				remapped[k] = v
			}
		}
		outRows = append(outRows, remapped)
	}
	out["columns"] = columns
	out["rows"] = outRows
	return out, nil
}

// columnHeading reads the business heading attribute. The JSON document shape
// carries the attribute with its saw-sql namespace prefix intact; the XML
// decoder strips prefixes, leaving a bare columnHeading key.
func columnHeading(em map[string]any) string {
	if h, _ := em["@saw-sql:columnHeading"].(string); h != "" {
		return h
	}
	h, _ := em["@columnHeading"].(string)
	return h
}

// columnElements finds the embedded column-schema fragment. JSON responses
// nest it under ResultXml.Schema; XML responses keep the schema inside the
// rowset itself (the decoder strips the xsd prefixes from its element names).
func columnElements(resultXML, rowset map[string]any) []any {
	if s, ok := resultXML["Schema"].(map[string]any); ok {
		if ct, ok := s["complexType"].(map[string]any); ok {
			if seq, ok := ct["sequence"].(map[string]any); ok {
				return AsList(seq["element"])
			}
		}
	}
	if rowset != nil {
		if s, ok := rowset["schema"].(map[string]any); ok {
			if ct, ok := s["complexType"].(map[string]any); ok {
				if seq, ok := ct["sequence"].(map[string]any); ok {
					return AsList(seq["element"])
				}
			}
		}
	}
	return nil
}

// PathEntries extracts analytics path entries into canonical mappings. A JSON
// document lists them under "path" as bare strings or "@"-keyed objects; an
// XML document wraps the same list in a result element with attribute-only
// path children.
func PathEntries(doc map[string]any) []map[string]any {
	container := doc
	if _, ok := doc["path"]; !ok && len(doc) == 1 {
		for _, v := range doc {
			if m, ok := v.(map[string]any); ok {
				container = m
			}
		}
	}
	entries := AsList(container["path"])
	out := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		switch t := e.(type) {
		case string:
			out = append(out, map[string]any{"path": t})
		case map[string]any:
			m := make(map[string]any, len(t))
			for k, v := range t {
				m[strings.TrimPrefix(k, "@")] = v
			}
			out = append(out, m)
		}
	}
	return out
}
