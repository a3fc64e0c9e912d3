package codec

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainsearch/internal/core/domain"
)

func TestDecodeResponse_Items(t *testing.T) {
	body := []byte(`{"data":[
		{"title":"WAVE Pool","ident":"pool1wave","category":"pool","url":"/pool/pool1wave","extra":{"type":"stake","value":"123456789"}},
		{"title":"Tx","ident":"ab12","category":"transaction","url":"/tx/ab12","extra":{"type":"time","value":"2024-03-01T10:00:00Z"}},
		{"title":"Addr","ident":"addr1x","category":"address","url":"/address/addr1x","extra":{"type":"balance","value":42}}
	]}`)

	resp, dropped, err := DecodeResponse(body)

	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, resp.Data, 3)

	assert.Equal(t, domain.CategoryPool, resp.Data[0].Category)
	assert.Equal(t, domain.ExtraStake, resp.Data[0].Extra.Type)
	assert.Equal(t, int64(123456789), resp.Data[0].Extra.Amount)

	assert.Equal(t, domain.CategoryTransaction, resp.Data[1].Category)
	assert.Equal(t, domain.ExtraTime, resp.Data[1].Extra.Type)
	assert.True(t, resp.Data[1].Extra.Time.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, int64(42), resp.Data[2].Extra.Amount)
}

func TestDecodeResponse_EmptyData(t *testing.T) {
	resp, dropped, err := DecodeResponse([]byte(`{"data":[]}`))

	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestDecodeResponse_DropsUnknownCategories(t *testing.T) {
	body := []byte(`{"data":[
		{"title":"x","ident":"1","category":"validator","url":"/"},
		{"title":"y","ident":"2","category":"block","url":"/block/2"},
		{"title":"z","ident":"","category":"block","url":"/"},
		"garbage"
	]}`)

	resp, dropped, err := DecodeResponse(body)

	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "2", resp.Data[0].Ident)
}

func TestDecodeResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"missing data", `{"items":[]}`},
		{"null data", `{"data":null}`},
		{"data not a list", `{"data":{"a":1}}`},
		{"top level list", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeResponse([]byte(tt.body))
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestDecodeExtra_UnknownVariantKeepsRaw(t *testing.T) {
	extra := decodeExtra(&Extra{Type: "margin", Value: json.RawMessage(`0.02`)})

	assert.Equal(t, domain.ExtraUnknown, extra.Type)
	assert.Equal(t, "margin", extra.Tag)
	assert.JSONEq(t, `0.02`, string(extra.Raw))

	bad := decodeExtra(&Extra{Type: "stake", Value: json.RawMessage(`"lots"`)})
	assert.Equal(t, domain.ExtraUnknown, bad.Type)
	assert.Equal(t, "stake", bad.Tag)
}

func TestEncodeResponse_ReadableByDecode(t *testing.T) {
	in := &domain.SearchResponse{Data: []domain.SearchResultItem{{
		Title: "Block 42", Ident: "42", Category: domain.CategoryBlock, URL: "/block/42",
		Extra: &domain.Extra{Type: domain.ExtraUnknown, Tag: "size", Raw: json.RawMessage(`1024`)},
	}}}

	body, err := EncodeResponse(in)
	require.NoError(t, err)

	out, _, err := DecodeResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "size", out.Data[0].Extra.Tag)
	assert.JSONEq(t, `{"data":[{"title":"Block 42","ident":"42","category":"block","url":"/block/42","extra":{"type":"size","value":1024}}]}`, string(body))
}

func TestRecent_StoredShape(t *testing.T) {
	sel := domain.SearchResultItem{
		Title: "WAVE Pool", Ident: "pool1wave", Category: domain.CategoryPool, URL: "/pool/pool1wave",
		Extra: &domain.Extra{Type: domain.ExtraStake, Amount: 5},
	}
	entries := []domain.RecentSearchEntry{
		{Query: "wave", SelectedItem: &sel, Timestamp: 1700000000000},
		{Query: "1234", Timestamp: 1600000000000},
	}

	data, err := MarshalRecent(entries)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"query":"wave","selectedItem":{"title":"WAVE Pool","ident":"pool1wave","category":"pool","url":"/pool/pool1wave","extra":{"type":"stake","value":5}},"timestamp":1700000000000},
		{"query":"1234","timestamp":1600000000000}
	]`, string(data))

	back, err := UnmarshalRecent(data)
	require.NoError(t, err)
	assert.Equal(t, entries, back)
}

func TestUnmarshalRecent_Tolerant(t *testing.T) {
	data := []byte(`[
		{"query":"","timestamp":1},
		{"query":"ok","selectedItem":{"title":"?","ident":"1","category":"nope","url":"/"},"timestamp":2}
	]`)

	entries, err := UnmarshalRecent(data)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Query)
	assert.Nil(t, entries[0].SelectedItem)

	_, err = UnmarshalRecent([]byte(`{}`))
	assert.Error(t, err)
}
