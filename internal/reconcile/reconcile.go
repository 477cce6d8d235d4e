// Package reconcile is the quality gate between the integrated sales
// table and everything downstream. Its steps are order-sensitive: each
// one's precondition is established by the step before it, and rows that
// cannot satisfy a gate are dropped and counted rather than propagated.
package reconcile

import (
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"salesetl/internal/source"
	"salesetl/internal/table"
)

// Sales-channel literals.
const (
	ChannelAmazon    = "Amazon.in"
	ChannelNonAmazon = "Non-Amazon"
	ChannelUnknown   = "Unknown"
)

// NumericColumns get null filled with zero and a defensive re-parse.
var NumericColumns = []string{"amount", "unit_price", "total_amount", "current_stock"}

// CategoricalColumns fall back to the Unknown literal when null. The set
// is fixed: it is every text column of the warehouse schema that a
// downstream consumer treats as mandatory.
var CategoricalColumns = []string{
	"order_status", "fulfillment_type", "ship_service_level",
	"product_style", "product_asin", "courier_status", "currency",
	"ship_city", "ship_state", "ship_postal_code", "ship_country",
	"promotion_ids", "fulfillment_by", "customer_name",
	"product_category", "product_size", "product_color", "design_no",
}

// Result reports what the engine did to the table. The counts are
// observability signals, not correctness outputs.
type Result struct {
	Table             table.Table
	DroppedMissingSKU int
	DroppedBadDate    int
	DroppedCritical   int
	SyntheticIDs      int
}

// Apply runs the full reconciliation sequence. The returned error is an
// integrity failure: the final assertions did not hold, meaning a gate
// earlier in the sequence is broken, and the run must abort.
func Apply(t table.Table) (Result, error) {
	res := Result{}

	// 1. identity gate: a row without a SKU can be neither enriched
	// nor deduplicated downstream
	res.DroppedMissingSKU = t.Filter(func(r table.Row) bool {
		return !r.Get("sku").IsNull()
	})
	if res.DroppedMissingSKU > 0 {
		log.Printf("reconcile: dropped %d rows with missing sku", res.DroppedMissingSKU)
	}

	// 2. boolean normalization: only a literal "true" (case-insensitive)
	// counts; every other representation collapses to false
	if t.HasColumn("is_b2b") {
		for _, row := range t.Rows {
			row.Set("is_b2b", table.BoolVal(strings.EqualFold(row.Get("is_b2b").Text(), "true")))
		}
	}

	// 3. numeric defaulting: re-parse, then null -> 0
	for _, col := range NumericColumns {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			row.Set(col, defaultNumeric(row.Get(col), col == "current_stock"))
		}
	}

	// 4. temporal gate: day-before-month preference; rows without a
	// parsable order date carry no calendar meaning and are dropped
	res.DroppedBadDate = t.Filter(func(row table.Row) bool {
		v := row.Get("order_date")
		switch v.Kind {
		case table.Date:
			return true
		case table.String:
			ts, ok := source.ParseDate(v.Str, true)
			if !ok {
				return false
			}
			row.Set("order_date", table.Value{Kind: table.Date, Raw: v.Raw, Time: ts})
			return true
		default:
			return false
		}
	})
	if res.DroppedBadDate > 0 {
		log.Printf("reconcile: dropped %d rows with invalid order_date", res.DroppedBadDate)
	}

	// 5. channel re-derivation from the order id prefix. Runs before
	// identity synthesis so wholesale rows, which have no order id yet,
	// are not reclassified here.
	for _, row := range t.Rows {
		id := row.Get("order_id")
		if id.IsNull() {
			continue
		}
		switch DeriveChannel(id.Text()) {
		case ChannelAmazon:
			row.Set("sales_channel", table.Str(ChannelAmazon))
		case ChannelNonAmazon:
			row.Set("sales_channel", table.Str(ChannelNonAmazon))
		}
	}

	// 6. synthetic identity for rows that arrived without one
	for _, row := range t.Rows {
		if !row.Get("order_id").IsNull() {
			continue
		}
		row.Set("order_id", table.Str(SyntheticOrderID(
			row.Get("customer_name").Text(),
			row.Get("order_date").Text(),
			row.Get("product_style").Text(),
			row.Get("sku").Text(),
			row.Get("quantity").Text(),
			row.Get("unit_price").Text(),
			row.Get("total_amount").Text(),
		)))
		res.SyntheticIDs++
	}
	if res.SyntheticIDs > 0 {
		log.Printf("reconcile: synthesized %d order ids", res.SyntheticIDs)
	}

	// 7. channel fallback
	for _, row := range t.Rows {
		if row.Get("sales_channel").IsNull() {
			row.Set("sales_channel", table.Str(ChannelUnknown))
		}
	}

	// 8. categorical fallback over the fixed column set
	for _, col := range CategoricalColumns {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			if row.Get(col).IsNull() {
				row.Set(col, table.Str(ChannelUnknown))
			}
		}
	}

	// 9. critical-null gate. Steps 6-7 should have left this empty; a
	// non-zero count is a logic error upstream and must be visible.
	res.DroppedCritical = t.Filter(func(row table.Row) bool {
		return !row.Get("order_id").IsNull() && !row.Get("sales_channel").IsNull()
	})
	if res.DroppedCritical > 0 {
		log.Printf("reconcile: WARNING dropped %d rows with critical nulls after filling; upstream gate is broken", res.DroppedCritical)
	}

	// 10. post-condition assertion
	for i, row := range t.Rows {
		if row.Get("order_date").IsNull() {
			return Result{}, fmt.Errorf("reconcile: integrity violation at row %d: null order_date survived the temporal gate", i)
		}
		if row.Get("sku").IsNull() {
			return Result{}, fmt.Errorf("reconcile: integrity violation at row %d: null sku survived the identity gate", i)
		}
	}

	res.Table = t
	return res, nil
}

// DeriveChannel classifies an order id by prefix: S and D identify
// non-marketplace channels, B the marketplace. Anything else returns ""
// and the caller leaves the existing channel untouched.
func DeriveChannel(orderID string) string {
	if orderID == "" {
		return ""
	}
	switch orderID[0] {
	case 'S', 'D':
		return ChannelNonAmazon
	case 'B':
		return ChannelAmazon
	}
	return ""
}

func defaultNumeric(v table.Value, wantInt bool) table.Value {
	switch v.Kind {
	case table.Int, table.Decimal:
		if wantInt && v.Kind == table.Decimal {
			return table.Value{Kind: table.Int, Raw: v.Raw, Int: v.Dec.IntPart()}
		}
		return v
	case table.String:
		// defensive re-parse; a cell that still cannot parse falls
		// through to the zero default
		if d, err := decimal.NewFromString(strings.TrimSpace(v.Str)); err == nil {
			if wantInt {
				return table.Value{Kind: table.Int, Raw: v.Raw, Int: d.IntPart()}
			}
			return table.Value{Kind: table.Decimal, Raw: v.Raw, Dec: d}
		}
	}
	if wantInt {
		return table.IntVal(0)
	}
	return table.Dec(decimal.Zero)
}
