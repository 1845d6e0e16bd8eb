package almaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *Config {
	return &Config{BaseURL: baseURL, APIKey: "test-key", Timeout: 5 * time.Second}
}

func TestClientSendsAuthorizationHeader(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), "/bibs/99123", nil, acceptJSON)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "apikey test-key", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClientRequiresAPIKey(t *testing.T) {
	_, err := New(&Config{BaseURL: "http://example.com"})
	require.Error(t, err)
}

func TestClientClassifiesNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorList":{"error":{"errorMessage":"No bib with this identifier."}}}`))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/bibs/missing", nil, acceptJSON)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 404, nf.StatusCode)
	assert.Equal(t, "No bib with this identifier.", nf.Detail)
	assert.Contains(t, nf.Error(), "Resource not found")
}

func TestClientClassifiesRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/bibs/99123", nil, acceptJSON)
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 429, rl.StatusCode)
}

func TestClientClassifiesInvalidInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorList":{"error":{"errorMessage":"Mandatory field is missing."}}}`))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "/bibs", nil, acceptAndSendJSON, []byte(`{}`))
	var ii *InvalidInputError
	require.ErrorAs(t, err, &ii)
	assert.Equal(t, "Mandatory field is missing.", ii.Detail)
}

func TestClientClassifiesRejectedKeyAsAuthentication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorList":{"error":{"errorMessage":"Invalid API Key"}}}`))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/bibs/99123", nil, acceptJSON)
	var ae *AuthenticationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 400, ae.StatusCode)
	assert.Contains(t, ae.Error(), "Authentication failed")
}

func TestClientUnknownStatusFallsBackToAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "/bibs/99123", nil, acceptJSON)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 503, ae.StatusCode)
}

func TestClientQueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	q := map[string][]string{"view": {"brief"}, "expand": {"p_avail,requests"}}
	_, err = c.Get(context.Background(), "/bibs/99123", q, acceptJSON)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "view=brief")
	assert.Contains(t, gotQuery, "expand=p_avail%2Crequests")
}
