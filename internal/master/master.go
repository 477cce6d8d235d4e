// Package master collapses the normalized product master to one row per
// SKU so the later enrichment join cannot fan out.
package master

import "salesetl/internal/table"

// Deduplicate keeps exactly the first occurrence of every SKU, by input
// row order. The tie-break is positional: a later duplicate never
// overrides an earlier row, even when it looks more complete. Returns the
// deduplicated table and the number of rows removed.
func Deduplicate(t table.Table) (table.Table, int) {
	seen := make(map[string]struct{}, len(t.Rows))
	removed := t.Filter(func(row table.Row) bool {
		key := row.Get("sku").Text()
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
	return t, removed
}
