package almaclient

import (
	"github.com/wrlc/alma-client-go/normalize"
)

// ExtractErrorDetail pulls the service-supplied error message out of an error
// response body. It never fails: an unparsable body yields a fixed fallback
// marker and an unrecognized content type or an empty body yields "".
func ExtractErrorDetail(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	f, err := normalize.DetectFormat(contentType)
	if err != nil {
		return ""
	}
	if f == normalize.FormatJSON {
		doc, err := normalize.DecodeJSON(body)
		if err != nil {
			return "(Failed to decode JSON response body)"
		}
		return detailFromDoc(doc)
	}
	doc, err := normalize.DecodeXML(body)
	if err != nil {
		return "(Failed to parse XML response body)"
	}
	// The service wraps some XML error bodies in a web_service_result root.
	if ws, ok := doc["web_service_result"].(map[string]any); ok {
		doc = ws
	}
	return detailFromDoc(doc)
}

// detailFromDoc walks errorList.error, which may be a single entry, a list of
// entries, or bare text.
func detailFromDoc(doc map[string]any) string {
	list, ok := doc["errorList"].(map[string]any)
	if !ok {
		return ""
	}
	for _, entry := range normalize.AsList(list["error"]) {
		switch e := entry.(type) {
		case string:
			return e
		case map[string]any:
			if msg, ok := e["errorMessage"].(string); ok && msg != "" {
				return msg
			}
			// XML decoding can leave the message as element text.
			if sub, ok := e["errorMessage"].(map[string]any); ok {
				if txt, ok := sub["#text"].(string); ok && txt != "" {
					return txt
				}
			}
		}
	}
	return ""
}
