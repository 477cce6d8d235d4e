// Package feature derives the calendar and pricing columns from an
// already-reconciled table. Everything here is a pure function of values
// the reconciliation gates guaranteed to be present and valid.
package feature

import (
	"log"

	"github.com/shopspring/decimal"

	"salesetl/internal/table"
)

// Warning flags sales worth auditing: quantity sold but no price
// survived any of the candidate amount fields. Non-fatal.
type Warning struct {
	UnpricedSales int
	SampleSKUs    []string
}

const sampleLimit = 5

// Engineer adds order_year, order_month_num, order_day_of_week (Monday=0),
// order_hour and total_price to every row.
//
// total_price resolves three candidate amounts by priority: amount
// (authoritative for marketplace rows), then total_amount (authoritative
// for wholesale rows), then quantity x unit_price as a last resort for
// rows where neither total survived normalization.
func Engineer(t table.Table) (table.Table, Warning) {
	for _, col := range []string{"order_year", "order_month_num", "order_day_of_week", "order_hour", "total_price"} {
		if !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}

	warn := Warning{}
	for _, row := range t.Rows {
		ts := row.Get("order_date").Time
		row.Set("order_year", table.IntVal(int64(ts.Year())))
		row.Set("order_month_num", table.IntVal(int64(ts.Month())))
		row.Set("order_day_of_week", table.IntVal(int64((int(ts.Weekday())+6)%7)))
		row.Set("order_hour", table.IntVal(int64(ts.Hour())))

		total := TotalPrice(
			row.Get("amount").Dec,
			row.Get("total_amount").Dec,
			row.Get("quantity").Int,
			row.Get("unit_price").Dec,
		)
		row.Set("total_price", table.Dec(total))

		if row.Get("quantity").Int > 0 && total.IsZero() {
			warn.UnpricedSales++
			if len(warn.SampleSKUs) < sampleLimit {
				warn.SampleSKUs = append(warn.SampleSKUs, row.Get("sku").Text())
			}
		}
	}
	if warn.UnpricedSales > 0 {
		log.Printf("feature: WARNING %d orders with quantity but zero price (sample skus: %v)", warn.UnpricedSales, warn.SampleSKUs)
	}
	return t, warn
}

// TotalPrice applies the amount > total_amount > quantity*unit_price
// priority. Positive means strictly greater than zero; a negative or zero
// candidate falls through.
func TotalPrice(amount, totalAmount decimal.Decimal, quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	if amount.IsPositive() {
		return amount
	}
	if totalAmount.IsPositive() {
		return totalAmount
	}
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}
