// Package normalize is the content-type-aware front end of the response
// pipeline. It parses raw body bytes as JSON or XML into one canonical nested
// mapping, collapses the service's "may be object or array" ambiguity into
// uniform lists, and extracts the analytics report and path documents.
//
// Shape normalization is kept strictly separate from validation: the schema
// package only ever sees the canonical mapping produced here.
package normalize

import (
	"fmt"
	"mime"
	"strings"

	"github.com/clbanning/mxj/v2"
	json "github.com/goccy/go-json"

	"github.com/wrlc/alma-client-go/schema"
)

func init() {
	// Attribute keys carry an "@" prefix so XML documents decode to the same
	// mapping shape as their JSON equivalents (<path path="..."/> and
	// {"@path": "..."} are indistinguishable downstream).
	mxj.SetAttrPrefix("@")
}

// Format identifies a recognized wire format.
type Format int

const (
	FormatJSON Format = iota + 1
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatXML:
		return "XML"
	default:
		return "unknown"
	}
}

// UnexpectedContentTypeError reports a declared content type that names
// neither JSON nor XML. There is no reliable fallback, so this is fatal for
// the call.
type UnexpectedContentTypeError struct {
	ContentType string
}

func (e *UnexpectedContentTypeError) Error() string {
	return fmt.Sprintf("unexpected content type %q: expected JSON or XML", e.ContentType)
}

// FormatError reports a body that could not be parsed as its declared format.
// It is surfaced before any validation is attempted.
type FormatError struct {
	Format Format
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s body: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// StructuralError reports a recognized format whose document shape is missing
// a required structural marker. It is distinct from field validation: the
// document itself is not what was expected.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string { return e.Msg }

// DetectFormat resolves the declared content type to a recognized format. The
// header value may carry parameters ("application/json;charset=UTF-8").
func DetectFormat(contentType string) (Format, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch {
	case strings.Contains(mt, "json"):
		return FormatJSON, nil
	case strings.Contains(mt, "xml"):
		return FormatXML, nil
	default:
		return 0, &UnexpectedContentTypeError{ContentType: contentType}
	}
}

// Decode parses raw body bytes into the canonical nested mapping for the
// declared content type.
func Decode(body []byte, contentType string) (map[string]any, error) {
	f, err := DetectFormat(contentType)
	if err != nil {
		return nil, err
	}
	if f == FormatXML {
		return DecodeXML(body)
	}
	return DecodeJSON(body)
}

// DecodeJSON parses a JSON document into a mapping.
func DecodeJSON(body []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &FormatError{Format: FormatJSON, Err: err}
	}
	return doc, nil
}

// DecodeXML parses an XML document into a mapping equivalent to the JSON
// shape of the same logical document: attributes become "@"-prefixed keys and
// element text "#text".
func DecodeXML(body []byte) (map[string]any, error) {
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, &FormatError{Format: FormatXML, Err: err}
	}
	return map[string]any(m), nil
}

// AsList collapses a field whose cardinality is conceptually "zero or more"
// into a uniform list: an absent key yields an empty list, a bare object a
// one-element list, and an array passes through.
func AsList(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	default:
		return []any{t}
	}
}

// ValidateBody decodes a response body and conforms it against an entity
// definition in one call: the normalize-and-validate entry point for resource
// modules.
func ValidateBody(body []byte, contentType string, def *schema.EntityDef) (map[string]any, schema.Warnings, error) {
	doc, err := Decode(body, contentType)
	if err != nil {
		return nil, nil, err
	}
	return def.Conform(doc)
}
