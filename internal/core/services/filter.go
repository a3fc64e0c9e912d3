package services

import "github.com/custodia-labs/chainsearch/internal/core/domain"

// Group is a run of items sharing a category, for sectioned display.
type Group struct {
	Category domain.Category
	Items    []domain.SearchResultItem
}

// FilterItems narrows the response to the active category.
// CategoryAll returns every item in order. The result is never nil.
func FilterItems(resp *domain.SearchResponse, active domain.Category) []domain.SearchResultItem {
	if resp == nil || len(resp.Data) == 0 {
		return []domain.SearchResultItem{}
	}
	if active == domain.CategoryAll || active == "" {
		return resp.Data
	}

	items := make([]domain.SearchResultItem, 0, len(resp.Data))
	for i := range resp.Data {
		if resp.Data[i].Category == active {
			items = append(items, resp.Data[i])
		}
	}
	return items
}

// Tabs returns CategoryAll followed by the categories present in the response.
func Tabs(resp *domain.SearchResponse) []domain.Category {
	return append([]domain.Category{domain.CategoryAll}, resp.Categories()...)
}

// GroupItems groups items by category in first-appearance order.
// Items keep their relative order within a group.
func GroupItems(items []domain.SearchResultItem) []Group {
	index := make(map[domain.Category]int)
	var groups []Group
	for i := range items {
		c := items[i].Category
		g, ok := index[c]
		if !ok {
			g = len(groups)
			index[c] = g
			groups = append(groups, Group{Category: c})
		}
		groups[g].Items = append(groups[g].Items, items[i])
	}
	return groups
}

// Flatten returns the items of the groups in display order.
func Flatten(groups []Group) []domain.SearchResultItem {
	var items []domain.SearchResultItem
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}

// NextCategory returns the tab after active, wrapping around.
// An active category missing from tabs selects the first tab.
func NextCategory(tabs []domain.Category, active domain.Category) domain.Category {
	return stepCategory(tabs, active, 1)
}

// PrevCategory returns the tab before active, wrapping around.
func PrevCategory(tabs []domain.Category, active domain.Category) domain.Category {
	return stepCategory(tabs, active, -1)
}

func stepCategory(tabs []domain.Category, active domain.Category, step int) domain.Category {
	if len(tabs) == 0 {
		return domain.CategoryAll
	}
	for i, c := range tabs {
		if c == active {
			return tabs[(i+step+len(tabs))%len(tabs)]
		}
	}
	return tabs[0]
}
