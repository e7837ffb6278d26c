package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(description, category string) LineItem {
	return LineItem{Description: description, Category: category}
}

func TestGroupItems(t *testing.T) {
	t.Run("should bucket by category and sort keys ascending", func(t *testing.T) {
		groups := GroupItems([]LineItem{
			item("Regrout tiles", "Tiling"),
			item("Replace trap", "Plumbing"),
			item("Seal joints", "Tiling"),
		})

		require.Len(t, groups, 2)
		assert.Equal(t, "1- Plumbing", groups[0].Label)
		assert.Equal(t, "2- Tiling", groups[1].Label)
	})

	t.Run("should preserve input order within a group", func(t *testing.T) {
		groups := GroupItems([]LineItem{
			item("first", "Tiling"),
			item("second", "Tiling"),
			item("third", "Tiling"),
		})

		require.Len(t, groups, 1)
		assert.Equal(t, "first", groups[0].Items[0].Description)
		assert.Equal(t, "second", groups[0].Items[1].Description)
		assert.Equal(t, "third", groups[0].Items[2].Description)
	})

	t.Run("should fold empty categories into the fallback group", func(t *testing.T) {
		groups := GroupItems([]LineItem{
			item("A", ""),
			item("B", "  "),
		})

		require.Len(t, groups, 1)
		assert.Equal(t, FallbackCategory, groups[0].Category)
		assert.Len(t, groups[0].Items, 2)
	})

	t.Run("fallback group sorts lexicographically with the rest", func(t *testing.T) {
		groups := GroupItems([]LineItem{
			item("A", ""),
			item("B", "Tiling"),
		})

		require.Len(t, groups, 2)
		// "Other Items" < "Tiling" in ASCII order
		assert.Equal(t, "1- Other Items", groups[0].Label)
		assert.Equal(t, "2- Tiling", groups[1].Label)
	})

	t.Run("should neither drop nor duplicate items", func(t *testing.T) {
		input := []LineItem{
			item("a", "Z"), item("b", ""), item("c", "A"),
			item("d", "Z"), item("e", "A"), item("f", ""),
		}
		groups := GroupItems(input)

		total := 0
		seen := make(map[string]bool)
		for _, g := range groups {
			total += len(g.Items)
			for _, it := range g.Items {
				assert.False(t, seen[it.Description], "duplicate %s", it.Description)
				seen[it.Description] = true
			}
		}
		assert.Equal(t, len(input), total)
	})

	t.Run("regrouping flattened output is stable", func(t *testing.T) {
		input := []LineItem{
			item("a", "Z"), item("b", ""), item("c", "A"), item("d", "Z"),
		}
		once := GroupItems(input)
		twice := GroupItems(FlattenGroups(once))

		assert.Equal(t, once, twice)
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		assert.Empty(t, GroupItems(nil))
	})
}
