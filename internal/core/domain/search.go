package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Category classifies the entity kind of a search result.
// The set is closed; values outside it are rejected by ParseCategory.
type Category string

// Known categories, using the backend wire values.
const (
	CategoryTransaction Category = "tx"
	CategoryBlock       Category = "block"
	CategoryPool        Category = "pool"
	CategoryAddress     Category = "address"
	CategoryAsset       Category = "asset"
	CategoryEpoch       Category = "epoch"
	CategoryPolicy      Category = "policy"

	// CategoryAll is the pseudo category used by filters to mean "every category".
	// It never appears on a result item.
	CategoryAll Category = "all"
)

// AllCategories returns every concrete category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryTransaction,
		CategoryBlock,
		CategoryPool,
		CategoryAddress,
		CategoryAsset,
		CategoryEpoch,
		CategoryPolicy,
	}
}

// ParseCategory converts a wire value into a Category.
// "transaction" is accepted as an alias of "tx". The pseudo category
// "all" is not a valid item category and is rejected.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transaction" {
		return CategoryTransaction, true
	}
	c := Category(s)
	if c.IsValid() {
		return c, true
	}
	return "", false
}

// ParseFilter converts user input into a filter category.
// Empty input and "all" both select CategoryAll.
func ParseFilter(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(CategoryAll) {
		return CategoryAll, true
	}
	return ParseCategory(s)
}

// IsValid returns true if the category is one of the concrete categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTransaction, CategoryBlock, CategoryPool, CategoryAddress,
		CategoryAsset, CategoryEpoch, CategoryPolicy:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Label returns a human-readable tab label.
func (c Category) Label() string {
	switch c {
	case CategoryAll:
		return "All"
	case CategoryTransaction:
		return "Transactions"
	case CategoryBlock:
		return "Blocks"
	case CategoryPool:
		return "Pools"
	case CategoryAddress:
		return "Addresses"
	case CategoryAsset:
		return "Assets"
	case CategoryEpoch:
		return "Epochs"
	case CategoryPolicy:
		return "Policies"
	default:
		return unknownDescription
	}
}

// ExtraType tags the auxiliary payload of a result item.
type ExtraType string

// Known extra payload variants. The backend may send others; they are
// carried as ExtraUnknown with the raw value preserved.
const (
	ExtraTime    ExtraType = "time"
	ExtraStake   ExtraType = "stake"
	ExtraBalance ExtraType = "balance"
	ExtraUnknown ExtraType = "unknown"
)

// Extra is the tagged auxiliary payload of a result item.
// Consumers must switch on Type before reading a value field.
type Extra struct {
	// Type selects which value field is meaningful.
	Type ExtraType

	// Time is set for ExtraTime.
	Time time.Time

	// Amount is set for ExtraStake and ExtraBalance, in lovelace.
	Amount int64

	// Tag is the original type tag for ExtraUnknown.
	Tag string

	// Raw holds the undecoded value for ExtraUnknown.
	Raw json.RawMessage
}

// SearchResultItem is one matched entity.
type SearchResultItem struct {
	// Title is the display label.
	Title string

	// Ident is the canonical identifier, unique within a category.
	Ident string

	// Category is the entity kind.
	Category Category

	// URL is the navigation target.
	URL string

	// Extra is the optional auxiliary payload.
	Extra *Extra
}

// Key returns an identifier unique across categories.
func (i SearchResultItem) Key() string {
	return string(i.Category) + ":" + i.Ident
}

// SearchResponse is the result set for one query.
// The categories present are inferred from Data, not declared.
type SearchResponse struct {
	Data []SearchResultItem
}

// Categories returns the distinct categories in Data in first-appearance order.
func (r *SearchResponse) Categories() []Category {
	if r == nil {
		return nil
	}
	seen := make(map[Category]bool)
	var cats []Category
	for i := range r.Data {
		c := r.Data[i].Category
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	return cats
}

// Len returns the number of items, treating a nil response as empty.
func (r *SearchResponse) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Data)
}

// SearchRequest is a single query sent to the search backend.
type SearchRequest struct {
	// Query is the stabilized query string.
	Query string

	// Locale is passed through to the backend untouched.
	Locale string

	// Category scopes the request; empty means every category.
	Category Category
}

// Normalized returns the request with the query trimmed and the
// "all" scope folded into the empty scope.
func (r SearchRequest) Normalized() SearchRequest {
	r.Query = strings.TrimSpace(r.Query)
	if r.Category == CategoryAll {
		r.Category = ""
	}
	return r
}

// CacheKey returns the key used to cache responses for this request.
// The query keeps its case: Byron addresses and asset names are
// case-sensitive.
func (r SearchRequest) CacheKey() string {
	n := r.Normalized()
	return n.Query + "|" + n.Locale + "|" + string(n.Category)
}

// CachedResponse is a response remembered by the search service.
type CachedResponse struct {
	Response  *SearchResponse
	FetchedAt time.Time
}

// Fresh returns true if the response is younger than maxAge.
func (c CachedResponse) Fresh(now time.Time, maxAge time.Duration) bool {
	return now.Sub(c.FetchedAt) < maxAge
}
