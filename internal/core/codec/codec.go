// Package codec converts between domain search types and their JSON wire
// form. The same item shape is returned by the search backend and persisted
// in the recent-search list, so both sides share these types.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

// Item is the wire form of a search result item.
type Item struct {
	Title    string `json:"title"`
	Ident    string `json:"ident"`
	Category string `json:"category"`
	URL      string `json:"url"`
	Extra    *Extra `json:"extra,omitempty"`
}

// Extra is the wire form of the tagged auxiliary payload.
type Extra struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// Response is the wire form of a search response.
// Data is kept raw so that a missing field can be told apart from an
// empty list, and so that one bad item does not sink the whole set.
type Response struct {
	Data json.RawMessage `json:"data"`
}

// RecentEntry is the persisted form of a recent-search entry.
type RecentEntry struct {
	Query        string `json:"query"`
	SelectedItem *Item  `json:"selectedItem,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// FromDomain converts a domain item to its wire form.
func FromDomain(item domain.SearchResultItem) Item {
	return Item{
		Title:    item.Title,
		Ident:    item.Ident,
		Category: item.Category.String(),
		URL:      item.URL,
		Extra:    encodeExtra(item.Extra),
	}
}

// ToDomain converts a wire item to a domain item.
// Unrecognised categories wrap domain.ErrUnsupportedType.
func (i Item) ToDomain() (domain.SearchResultItem, error) {
	category, ok := domain.ParseCategory(i.Category)
	if !ok {
		return domain.SearchResultItem{}, fmt.Errorf("category %q: %w", i.Category, domain.ErrUnsupportedType)
	}
	if strings.TrimSpace(i.Ident) == "" {
		return domain.SearchResultItem{}, fmt.Errorf("item without ident: %w", domain.ErrInvalidInput)
	}
	return domain.SearchResultItem{
		Title:    i.Title,
		Ident:    i.Ident,
		Category: category,
		URL:      i.URL,
		Extra:    decodeExtra(i.Extra),
	}, nil
}

// DecodeResponse parses a backend response body.
// It returns the decoded response and the number of items that were
// dropped because they could not be decoded. A body that is not an
// object with a data array wraps domain.ErrMalformedResponse.
func DecodeResponse(body []byte) (*domain.SearchResponse, int, error) {
	var wire Response
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if len(wire.Data) == 0 || bytes.Equal(bytes.TrimSpace(wire.Data), []byte("null")) {
		return nil, 0, fmt.Errorf("%w: missing data", domain.ErrMalformedResponse)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(wire.Data, &raw); err != nil {
		return nil, 0, fmt.Errorf("%w: data is not a list", domain.ErrMalformedResponse)
	}

	resp := &domain.SearchResponse{Data: make([]domain.SearchResultItem, 0, len(raw))}
	dropped := 0
	for _, r := range raw {
		var item Item
		if err := json.Unmarshal(r, &item); err != nil {
			dropped++
			continue
		}
		converted, err := item.ToDomain()
		if err != nil {
			dropped++
			continue
		}
		resp.Data = append(resp.Data, converted)
	}
	return resp, dropped, nil
}

// EncodeResponse renders a response in wire form.
func EncodeResponse(resp *domain.SearchResponse) ([]byte, error) {
	items := make([]Item, 0, resp.Len())
	if resp != nil {
		for i := range resp.Data {
			items = append(items, FromDomain(resp.Data[i]))
		}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Response{Data: data})
}

// MarshalRecent encodes recent-search entries, newest first.
func MarshalRecent(entries []domain.RecentSearchEntry) ([]byte, error) {
	records := make([]RecentEntry, len(entries))
	for i, e := range entries {
		records[i] = RecentEntry{Query: e.Query, Timestamp: e.Timestamp}
		if e.SelectedItem != nil {
			item := FromDomain(*e.SelectedItem)
			records[i].SelectedItem = &item
		}
	}
	return json.Marshal(records)
}

// UnmarshalRecent decodes recent-search entries. Entries without a query
// are skipped; a selected item that cannot be decoded is dropped while
// the entry itself is kept.
func UnmarshalRecent(data []byte) ([]domain.RecentSearchEntry, error) {
	var records []RecentEntry
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode recent searches: %w", err)
	}

	entries := make([]domain.RecentSearchEntry, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Query) == "" {
			continue
		}
		entry := domain.RecentSearchEntry{Query: r.Query, Timestamp: r.Timestamp}
		if r.SelectedItem != nil {
			if item, err := r.SelectedItem.ToDomain(); err == nil {
				entry.SelectedItem = &item
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeExtra(e *Extra) *domain.Extra {
	if e == nil {
		return nil
	}

	unknown := &domain.Extra{Type: domain.ExtraUnknown, Tag: e.Type, Raw: e.Value}

	switch domain.ExtraType(strings.ToLower(e.Type)) {
	case domain.ExtraTime:
		var s string
		if err := json.Unmarshal(e.Value, &s); err != nil {
			return unknown
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return unknown
		}
		return &domain.Extra{Type: domain.ExtraTime, Time: t}

	case domain.ExtraStake, domain.ExtraBalance:
		amount, err := parseAmount(e.Value)
		if err != nil {
			return unknown
		}
		return &domain.Extra{Type: domain.ExtraType(strings.ToLower(e.Type)), Amount: amount}

	default:
		return unknown
	}
}

// parseAmount accepts a JSON integer or a string holding one.
func parseAmount(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.ParseInt(n.String(), 10, 64)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func encodeExtra(e *domain.Extra) *Extra {
	if e == nil {
		return nil
	}

	var value any
	tag := string(e.Type)
	switch e.Type {
	case domain.ExtraTime:
		value = e.Time.Format(time.RFC3339Nano)
	case domain.ExtraStake, domain.ExtraBalance:
		value = e.Amount
	default:
		return &Extra{Type: e.Tag, Value: e.Raw}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return &Extra{Type: tag, Value: data}
}
