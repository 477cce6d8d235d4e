// Package integrate stacks the two sales sources into one table and
// enriches it from the deduplicated product master.
package integrate

import (
	"fmt"
	"log"

	"salesetl/internal/table"
)

const joinKey = "sku"

// Integrate concatenates marketplace rows then wholesale rows (original
// order preserved within each), left-joins the product master on SKU, and
// resolves the column collisions the join produces.
//
// Both sales sources carry their own product_category/product_size; the
// master carries authoritative ones. Master data wins: the sales-side
// value is dropped unconditionally and the master-side value takes the
// unsuffixed name.
func Integrate(marketplace, wholesale, productMaster table.Table) (table.Table, error) {
	combined := table.Concat(marketplace, wholesale)
	log.Printf("integrate: stacked sales sources rows=%d cols=%d", len(combined.Rows), len(combined.Columns))

	// The deduplicator upholds master-side key uniqueness; the join
	// re-checks it because a violation here multiplies revenue rows.
	joined, err := table.LeftJoin(combined, productMaster, joinKey)
	if err != nil {
		return table.Table{}, fmt.Errorf("integrate: %w", err)
	}
	if len(joined.Rows) != len(combined.Rows) {
		return table.Table{}, fmt.Errorf("integrate: join changed cardinality %d -> %d", len(combined.Rows), len(joined.Rows))
	}

	joined.DropColumns("product_category_x", "product_size_x")
	joined.RenameColumns(map[string]string{
		"product_category_y": "product_category",
		"product_size_y":     "product_size",
	})
	log.Printf("integrate: joined product master rows=%d cols=%d", len(joined.Rows), len(joined.Columns))
	return joined, nil
}
