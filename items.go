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

// ItemsService exposes the /bibs/{mms_id}/holdings/{holding_id}/items
// resource.
type ItemsService struct {
	c *Client
}

func itemsPath(mmsID, holdingID string) string {
	return holdingPath(mmsID, holdingID) + "/items"
}

func itemPath(mmsID, holdingID, pid string) string {
	return itemsPath(mmsID, holdingID) + "/" + url.PathEscape(pid)
}

// Get retrieves one item by its PID.
func (s *ItemsService) Get(ctx context.Context, mmsID, holdingID, pid string) (*model.ItemRecord, error) {
	resp, err := s.c.Get(ctx, itemPath(mmsID, holdingID, pid), nil, acceptJSON)
	if err != nil {
		return nil, err
	}
	return s.parseItem(resp, "item "+pid)
}

// ListForHolding retrieves the items under a holding, collapsing the "item"
// key's list/singleton/absent shapes into a plain slice.
func (s *ItemsService) ListForHolding(ctx context.Context, mmsID, holdingID string, limit, offset int) ([]*model.ItemRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	resp, err := s.c.Get(ctx, itemsPath(mmsID, holdingID), q, acceptJSON)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDoc(resp, "items of holding "+holdingID)
	if err != nil {
		return nil, err
	}
	entries := normalize.AsList(doc["item"])
	out := make([]*model.ItemRecord, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("Failed to validate Item response data for holding %s: entry %d is not an object", holdingID, i)
		}
		rec, warns, err := model.ParseItemRecord(m)
		s.c.logWarnings(fmt.Sprintf("item list entry %d", i), warns)
		if err != nil {
			return nil, fmt.Errorf("Failed to validate Item response data for holding %s: %w", holdingID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Create attaches a new item to a holding.
func (s *ItemsService) Create(ctx context.Context, mmsID, holdingID string, rec *model.ItemRecord) (*model.ItemRecord, error) {
	payload, err := json.Marshal(rec.ToMap())
	if err != nil {
		return nil, fmt.Errorf("Failed to encode Item record: %w", err)
	}
	resp, err := s.c.Post(ctx, itemsPath(mmsID, holdingID), nil, acceptAndSendJSON, payload)
	if err != nil {
		return nil, err
	}
	return s.parseItem(resp, "created item")
}

// Update replaces an item record; the full record must be supplied.
func (s *ItemsService) Update(ctx context.Context, mmsID, holdingID, pid string, rec *model.ItemRecord) (*model.ItemRecord, error) {
	payload, err := json.Marshal(rec.ToMap())
	if err != nil {
		return nil, fmt.Errorf("Failed to encode Item record: %w", err)
	}
	resp, err := s.c.Put(ctx, itemPath(mmsID, holdingID, pid), nil, acceptAndSendJSON, payload)
	if err != nil {
		return nil, err
	}
	return s.parseItem(resp, "item "+pid)
}

// Delete removes an item.
func (s *ItemsService) Delete(ctx context.Context, mmsID, holdingID, pid string) error {
	_, err := s.c.Delete(ctx, itemPath(mmsID, holdingID, pid), nil)
	return err
}

func (s *ItemsService) parseItem(resp *Response, what string) (*model.ItemRecord, error) {
	doc, err := decodeDoc(resp, "Item record for "+what)
	if err != nil {
		return nil, err
	}
	rec, warns, err := model.ParseItemRecord(doc)
	s.c.logWarnings(what, warns)
	if err != nil {
		return nil, fmt.Errorf("Failed to validate Item response data for %s: %w", what, err)
	}
	return rec, nil
}
