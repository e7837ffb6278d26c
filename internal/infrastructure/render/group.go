package render

import (
	"fmt"
	"sort"
	"strings"
)

// FallbackCategory is the bucket for items without a category
const FallbackCategory = "Other Items"

// ItemGroup is a display bucket of line items sharing a category.
// Derived for table section headers, never persisted.
type ItemGroup struct {
	Category string
	Label    string // "{n}- {category}", 1-based
	Items    []LineItem
}

// GroupItems buckets items by category, preserving each item's input
// order within its bucket. Missing categories fold into the fallback
// bucket. Groups are sorted by category name, ascending lexicographic,
// and labeled with their 1-based position.
func GroupItems(items []LineItem) []ItemGroup {
	buckets := make(map[string][]LineItem)
	for _, item := range items {
		category := strings.TrimSpace(item.Category)
		if category == "" {
			category = FallbackCategory
		}
		buckets[category] = append(buckets[category], item)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]ItemGroup, 0, len(keys))
	for i, key := range keys {
		groups = append(groups, ItemGroup{
			Category: key,
			Label:    fmt.Sprintf("%d- %s", i+1, key),
			Items:    buckets[key],
		})
	}
	return groups
}

// FlattenGroups returns all grouped items in group order
func FlattenGroups(groups []ItemGroup) []LineItem {
	items := make([]LineItem, 0)
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}
