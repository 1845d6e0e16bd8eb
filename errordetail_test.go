package almaclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractErrorDetailJSONList(t *testing.T) {
	body := []byte(`{"errorList":{"error":[{"errorCode":"SOME_CODE","errorMessage":"Detailed JSON error message.","trackingId":"track123"}]}}`)
	got := ExtractErrorDetail("application/json", body)
	assert.Equal(t, "Detailed JSON error message.", got)
}

func TestExtractErrorDetailJSONSingle(t *testing.T) {
	body := []byte(`{"errorList":{"error":{"errorCode":"SINGLE_CODE","errorMessage":"Single JSON error message."}}}`)
	got := ExtractErrorDetail("application/json", body)
	assert.Equal(t, "Single JSON error message.", got)
}

func TestExtractErrorDetailXMLWebServiceResult(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<web_service_result xmlns="">
    <errorList>
        <error>
            <errorCode>XML_CODE</errorCode>
            <errorMessage>Detailed XML error message.</errorMessage>
            <trackingId>track789</trackingId>
        </error>
    </errorList>
</web_service_result>`)
	got := ExtractErrorDetail("application/xml", body)
	assert.Equal(t, "Detailed XML error message.", got)
}

func TestExtractErrorDetailXMLFlat(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<errorList>
    <error>
        <errorCode>XML_FLAT_CODE</errorCode>
        <errorMessage>Flat XML error message.</errorMessage>
    </error>
</errorList>`)
	got := ExtractErrorDetail("application/xml;charset=UTF-8", body)
	assert.Equal(t, "Flat XML error message.", got)
}

func TestExtractErrorDetailXMLTextOnly(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<errorList>
    <error>Simple text error message.</error>
</errorList>`)
	got := ExtractErrorDetail("application/xml", body)
	assert.Equal(t, "Simple text error message.", got)
}

func TestExtractErrorDetailFallbacks(t *testing.T) {
	assert.Equal(t, "(Failed to decode JSON response body)",
		ExtractErrorDetail("application/json", []byte(`{invalid json`)))
	assert.Equal(t, "(Failed to parse XML response body)",
		ExtractErrorDetail("application/xml", []byte(`<unclosed>`)))
}

func TestExtractErrorDetailNothingExtractable(t *testing.T) {
	assert.Empty(t, ExtractErrorDetail("text/plain", []byte("Service Unavailable")))
	assert.Empty(t, ExtractErrorDetail("application/json", nil))
	assert.Empty(t, ExtractErrorDetail("application/json", []byte(`{"message":"no errorList here"}`)))
}
