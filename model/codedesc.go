package model

import "github.com/wrlc/alma-client-go/schema"

// CodeDesc is a controlled-vocabulary code paired with its optional
// human-readable label. The service supplies it wherever "code with label"
// data appears: library, location, policy, status, material type and so on.
// Both fields are optional; an entirely empty CodeDesc is valid.
type CodeDesc struct {
	Value *string
	Desc  *string
}

var codeDescDef = &schema.EntityDef{
	Name: "CodeDesc",
	Fields: []schema.Field{
		{Name: "value", Kind: schema.KindString},
		{Name: "desc", Kind: schema.KindString},
	},
}

// ParseCodeDesc validates and builds a CodeDesc from a loosely-typed mapping.
func ParseCodeDesc(m map[string]any) (*CodeDesc, schema.Warnings, error) {
	cm, warns, err := parseEntity(codeDescDef, m)
	if err != nil {
		return nil, warns, err
	}
	return codeDescFrom(cm), warns, nil
}

func codeDescFrom(cm map[string]any) *CodeDesc {
	return &CodeDesc{Value: strPtr(cm, "value"), Desc: strPtr(cm, "desc")}
}

func codeDescPtr(cm map[string]any, k string) *CodeDesc {
	if sub, ok := nestedMap(cm, k); ok {
		return codeDescFrom(sub)
	}
	return nil
}

// ToMap dumps the CodeDesc for the write path, omitting unset fields.
func (c *CodeDesc) ToMap() map[string]any {
	m := make(map[string]any, 2)
	putString(m, "value", c.Value)
	putString(m, "desc", c.Desc)
	return m
}

func putCodeDesc(m map[string]any, k string, v *CodeDesc) {
	if v != nil {
		m[k] = v.ToMap()
	}
}
