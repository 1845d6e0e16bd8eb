package almaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/wrlc/alma-client-go/model"
	"github.com/wrlc/alma-client-go/normalize"
)

// HoldingsService exposes the /bibs/{mms_id}/holdings resource.
type HoldingsService struct {
	c *Client
}

func holdingPath(mmsID, holdingID string) string {
	return "/bibs/" + url.PathEscape(mmsID) + "/holdings/" + url.PathEscape(holdingID)
}

// Get retrieves one holding record under a bib.
func (s *HoldingsService) Get(ctx context.Context, mmsID, holdingID string) (*model.HoldingRecord, error) {
	resp, err := s.c.Get(ctx, holdingPath(mmsID, holdingID), nil, acceptJSON)
	if err != nil {
		return nil, err
	}
	return s.parseHolding(resp, "holding "+holdingID)
}

// ListForBib retrieves the holdings attached to a bib. The service serves the
// "holding" key as a list, a bare object or not at all depending on how many
// holdings exist; all three shapes come back as a plain slice.
func (s *HoldingsService) ListForBib(ctx context.Context, mmsID string, limit, offset int) ([]*model.HoldingRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	resp, err := s.c.Get(ctx, "/bibs/"+url.PathEscape(mmsID)+"/holdings", q, acceptJSON)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDoc(resp, "holdings of MMS ID "+mmsID)
	if err != nil {
		return nil, err
	}
	entries := normalize.AsList(doc["holding"])
	out := make([]*model.HoldingRecord, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("Failed to validate Holding response data for MMS ID %s: entry %d is not an object", mmsID, i)
		}
		rec, warns, err := model.ParseHoldingRecord(m)
		s.c.logWarnings(fmt.Sprintf("holding list entry %d", i), warns)
		if err != nil {
			return nil, fmt.Errorf("Failed to validate Holding response data for MMS ID %s: %w", mmsID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Create attaches a new holding record to a bib.
func (s *HoldingsService) Create(ctx context.Context, mmsID string, rec *model.HoldingRecord) (*model.HoldingRecord, error) {
	payload, err := json.Marshal(rec.ToMap())
	if err != nil {
		return nil, fmt.Errorf("Failed to encode Holding record: %w", err)
	}
	resp, err := s.c.Post(ctx, "/bibs/"+url.PathEscape(mmsID)+"/holdings", nil, acceptAndSendJSON, payload)
	if err != nil {
		return nil, err
	}
	return s.parseHolding(resp, "created holding")
}

// Update replaces a holding record; the full record must be supplied.
func (s *HoldingsService) Update(ctx context.Context, mmsID, holdingID string, rec *model.HoldingRecord) (*model.HoldingRecord, error) {
	payload, err := json.Marshal(rec.ToMap())
	if err != nil {
		return nil, fmt.Errorf("Failed to encode Holding record: %w", err)
	}
	resp, err := s.c.Put(ctx, holdingPath(mmsID, holdingID), nil, acceptAndSendJSON, payload)
	if err != nil {
		return nil, err
	}
	return s.parseHolding(resp, "holding "+holdingID)
}

// Delete removes a holding record.
func (s *HoldingsService) Delete(ctx context.Context, mmsID, holdingID string) error {
	_, err := s.c.Delete(ctx, holdingPath(mmsID, holdingID), nil)
	return err
}

func (s *HoldingsService) parseHolding(resp *Response, what string) (*model.HoldingRecord, error) {
	doc, err := decodeDoc(resp, "Holding record for "+what)
	if err != nil {
		return nil, err
	}
	rec, warns, err := model.ParseHoldingRecord(doc)
	s.c.logWarnings(what, warns)
	if err != nil {
		return nil, fmt.Errorf("Failed to validate Holding response data for %s: %w", what, err)
	}
	return rec, nil
}
