package almaclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wrlc/alma-client-go/model"
	"github.com/wrlc/alma-client-go/normalize"
	"github.com/wrlc/alma-client-go/schema"
)

// BibsService exposes the /bibs resource: bibliographic description records.
type BibsService struct {
	c *Client
}

// GetBibOptions narrows what a bib retrieval returns.
type GetBibOptions struct {
	View   string // "full" (default) or "brief"
	Expand string // comma-separated expansions, e.g. "p_avail,requests"
}

var acceptJSON = map[string]string{"Accept": "application/json"}

var acceptAndSendJSON = map[string]string{
	"Accept":       "application/json",
	"Content-Type": "application/json",
}

// Get retrieves one bib record by MMS ID.
func (s *BibsService) Get(ctx context.Context, mmsID string, opts GetBibOptions) (*model.BibRecord, error) {
	q := url.Values{}
	if opts.View != "" {
		q.Set("view", opts.View)
	}
	if opts.Expand != "" {
		q.Set("expand", opts.Expand)
	}
	resp, err := s.c.Get(ctx, "/bibs/"+url.PathEscape(mmsID), q, acceptJSON)
	if err != nil {
		return nil, err
	}
	return s.parseBib(resp, "MMS ID "+mmsID)
}

// Create registers a new bib record and returns the stored copy, including
// the MMS ID the service assigned.
func (s *BibsService) Create(ctx context.Context, rec *model.BibRecord) (*model.BibRecord, error) {
	payload, err := json.Marshal(rec.ToMap())
	if err != nil {
		return nil, fmt.Errorf("Failed to encode Bib record: %w", err)
	}
	resp, err := s.c.Post(ctx, "/bibs", nil, acceptAndSendJSON, payload)
	if err != nil {
		return nil, err
	}
	return s.parseBib(resp, "created bib")
}

// CreateFromXML registers a new bib record from a raw MARCXML document. The
// service still answers with the JSON representation of the stored record.
func (s *BibsService) CreateFromXML(ctx context.Context, marcxml string) (*model.BibRecord, error) {
	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/xml",
	}
	resp, err := s.c.Post(ctx, "/bibs", nil, headers, []byte(marcxml))
	if err != nil {
		return nil, err
	}
	return s.parseBib(resp, "created bib")
}

// Update replaces a bib record. The full record must be supplied; the service
// treats PUT as a whole-document swap. With overrideWarning the service
// applies the update even when it would normally warn and refuse.
func (s *BibsService) Update(ctx context.Context, mmsID string, rec *model.BibRecord, overrideWarning bool) (*model.BibRecord, error) {
	payload, err := json.Marshal(rec.ToMap())
	if err != nil {
		return nil, fmt.Errorf("Failed to encode Bib record: %w", err)
	}
	q := url.Values{}
	if overrideWarning {
		q.Set("override_warning", "true")
	}
	resp, err := s.c.Put(ctx, "/bibs/"+url.PathEscape(mmsID), q, acceptAndSendJSON, payload)
	if err != nil {
		return nil, err
	}
	return s.parseBib(resp, "MMS ID "+mmsID)
}

// DeleteBibOptions qualifies a bib deletion.
type DeleteBibOptions struct {
	OverrideWarning *bool
	Reason          string
}

// Delete removes a bib record.
func (s *BibsService) Delete(ctx context.Context, mmsID string, opts DeleteBibOptions) error {
	q := url.Values{}
	if opts.OverrideWarning != nil {
		q.Set("override_warning", boolParam(*opts.OverrideWarning))
	}
	if opts.Reason != "" {
		q.Set("reason", opts.Reason)
	}
	_, err := s.c.Delete(ctx, "/bibs/"+url.PathEscape(mmsID), q)
	return err
}

func (s *BibsService) parseBib(resp *Response, what string) (*model.BibRecord, error) {
	doc, err := decodeDoc(resp, "Bib record for "+what)
	if err != nil {
		return nil, err
	}
	rec, warns, err := model.ParseBibRecord(doc)
	s.c.logWarnings("bib "+what, warns)
	if err != nil {
		return nil, fmt.Errorf("Failed to validate Bib response data for %s: %w", what, err)
	}
	return rec, nil
}

func boolParam(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// decodeDoc parses a response body into the canonical mapping, wrapping
// failures with the caller's context and the failing format.
func decodeDoc(resp *Response, what string) (map[string]any, error) {
	doc, err := normalize.Decode(resp.Body, resp.ContentType())
	if err != nil {
		var fe *normalize.FormatError
		if errors.As(err, &fe) && fe.Format == normalize.FormatXML {
			return nil, fmt.Errorf("Failed to parse XML response for %s: %w", what, err)
		}
		if errors.As(err, &fe) {
			return nil, fmt.Errorf("Failed to decode JSON response for %s: %w", what, err)
		}
		return nil, fmt.Errorf("Unexpected response for %s: %w", what, err)
	}
	return doc, nil
}

func (c *Client) logWarnings(what string, warns schema.Warnings) {
	for _, w := range warns {
		c.log.Warn("validation warning",
			zap.String("context", what),
			zap.String("path", w.Path),
			zap.String("message", w.Message))
	}
}
