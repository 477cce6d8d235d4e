// Package warehouse carries the sales-fact target schema and the
// postgres sink that persists each run's output.
package warehouse

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"salesetl/internal/table"
)

// SalesRecord is one denormalized sales-fact row, the exact column set
// the warehouse table carries.
type SalesRecord struct {
	OrderID          string
	OrderDate        time.Time
	OrderStatus      string
	FulfillmentType  string
	SalesChannel     string
	ShipServiceLevel string
	ProductStyle     string
	SKU              string
	ProductASIN      string
	CourierStatus    string
	Quantity         int64
	Currency         string
	Amount           decimal.Decimal
	ShipCity         string
	ShipState        string
	ShipPostalCode   string
	ShipCountry      string
	PromotionIDs     string
	IsB2B            bool
	FulfillmentBy    string
	CustomerName     string
	UnitPrice        decimal.Decimal
	TotalAmount      decimal.Decimal
	DesignNo         string
	CurrentStock     int64
	ProductCategory  string
	ProductSize      string
	ProductColor     string
	OrderYear        int64
	OrderMonthNum    int64
	OrderDayOfWeek   int64
	OrderHour        int64
	TotalPrice       decimal.Decimal
}

// FromTable extracts the final record set from the engineered table. The
// reconciliation gates guarantee the mandatory cells; a null here means
// those gates were bypassed and the run must not load.
func FromTable(t table.Table) ([]SalesRecord, error) {
	out := make([]SalesRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		if row.Get("order_id").IsNull() || row.Get("sku").IsNull() || row.Get("order_date").IsNull() {
			return nil, fmt.Errorf("warehouse: row %d missing a mandatory cell; table was not reconciled", i)
		}
		out = append(out, SalesRecord{
			OrderID:          row.Get("order_id").Text(),
			OrderDate:        row.Get("order_date").Time,
			OrderStatus:      row.Get("order_status").Text(),
			FulfillmentType:  row.Get("fulfillment_type").Text(),
			SalesChannel:     row.Get("sales_channel").Text(),
			ShipServiceLevel: row.Get("ship_service_level").Text(),
			ProductStyle:     row.Get("product_style").Text(),
			SKU:              row.Get("sku").Text(),
			ProductASIN:      row.Get("product_asin").Text(),
			CourierStatus:    row.Get("courier_status").Text(),
			Quantity:         row.Get("quantity").Int,
			Currency:         row.Get("currency").Text(),
			Amount:           row.Get("amount").Dec,
			ShipCity:         row.Get("ship_city").Text(),
			ShipState:        row.Get("ship_state").Text(),
			ShipPostalCode:   row.Get("ship_postal_code").Text(),
			ShipCountry:      row.Get("ship_country").Text(),
			PromotionIDs:     row.Get("promotion_ids").Text(),
			IsB2B:            row.Get("is_b2b").Bool,
			FulfillmentBy:    row.Get("fulfillment_by").Text(),
			CustomerName:     row.Get("customer_name").Text(),
			UnitPrice:        row.Get("unit_price").Dec,
			TotalAmount:      row.Get("total_amount").Dec,
			DesignNo:         row.Get("design_no").Text(),
			CurrentStock:     row.Get("current_stock").Int,
			ProductCategory:  row.Get("product_category").Text(),
			ProductSize:      row.Get("product_size").Text(),
			ProductColor:     row.Get("product_color").Text(),
			OrderYear:        row.Get("order_year").Int,
			OrderMonthNum:    row.Get("order_month_num").Int,
			OrderDayOfWeek:   row.Get("order_day_of_week").Int,
			OrderHour:        row.Get("order_hour").Int,
			TotalPrice:       row.Get("total_price").Dec,
		})
	}
	return out, nil
}
