package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// TableName is the warehouse fact table each run appends to.
const TableName = "sales_fact"

// ChunkSize rows go into a single multi-row INSERT.
const ChunkSize = 1000

var insertColumns = []string{
	"order_id", "order_date", "order_status", "fulfillment_type",
	"sales_channel", "ship_service_level", "product_style", "sku",
	"product_asin", "courier_status", "quantity", "currency",
	"amount", "ship_city", "ship_state", "ship_postal_code",
	"ship_country", "promotion_ids", "is_b2b", "fulfillment_by",
	"customer_name", "unit_price", "total_amount", "design_no",
	"current_stock", "product_category", "product_size", "product_color",
	"order_year", "order_month_num", "order_day_of_week", "order_hour",
	"total_price",
}

const createTableStmt = `CREATE TABLE IF NOT EXISTS ` + TableName + ` (
	order_id          TEXT NOT NULL,
	order_date        TIMESTAMP NOT NULL,
	order_status      TEXT,
	fulfillment_type  TEXT,
	sales_channel     TEXT NOT NULL,
	ship_service_level TEXT,
	product_style     TEXT,
	sku               TEXT NOT NULL,
	product_asin      TEXT,
	courier_status    TEXT,
	quantity          BIGINT,
	currency          TEXT,
	amount            NUMERIC(14,2),
	ship_city         TEXT,
	ship_state        TEXT,
	ship_postal_code  TEXT,
	ship_country      TEXT,
	promotion_ids     TEXT,
	is_b2b            BOOLEAN,
	fulfillment_by    TEXT,
	customer_name     TEXT,
	unit_price        NUMERIC(14,2),
	total_amount      NUMERIC(14,2),
	design_no         TEXT,
	current_stock     BIGINT,
	product_category  TEXT,
	product_size      TEXT,
	product_color     TEXT,
	order_year        INTEGER,
	order_month_num   INTEGER,
	order_day_of_week INTEGER,
	order_hour        INTEGER,
	total_price       NUMERIC(14,2)
)`

// execer abstracts *sql.DB so tests can inject a fake.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Loader appends reconciled sales records to the warehouse in fixed-size
// chunks. A failed chunk aborts the run: there is no partial-load
// semantics to fall back on.
type Loader struct {
	db        execer
	chunkSize int
}

func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db, chunkSize: ChunkSize}
}

// NewLoaderWith is only for tests to inject a fake execer.
func NewLoaderWith(db execer, chunkSize int) *Loader {
	return &Loader{db: db, chunkSize: chunkSize}
}

// EnsureSchema creates the fact table when it does not exist yet.
func (l *Loader) EnsureSchema(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, createTableStmt); err != nil {
		return fmt.Errorf("ensure %s: %w", TableName, err)
	}
	return nil
}

// Load appends all records and returns the number written.
func (l *Loader) Load(ctx context.Context, records []SalesRecord) (int, error) {
	loaded := 0
	for start := 0; start < len(records); start += l.chunkSize {
		end := start + l.chunkSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]
		if _, err := l.db.ExecContext(ctx, buildInsert(len(chunk)), chunkArgs(chunk)...); err != nil {
			return loaded, fmt.Errorf("load %s rows %d-%d: %w", TableName, start, end-1, err)
		}
		loaded += len(chunk)
		log.Printf("warehouse: loaded chunk rows=%d total=%d", len(chunk), loaded)
	}
	return loaded, nil
}

func buildInsert(rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO " + TableName + " (" + strings.Join(insertColumns, ",") + ") VALUES ")
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(",")
		}
		b.WriteString("(")
		for c := range insertColumns {
			if c > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, "$%d", n)
			n++
		}
		b.WriteString(")")
	}
	return b.String()
}

func chunkArgs(chunk []SalesRecord) []any {
	args := make([]any, 0, len(chunk)*len(insertColumns))
	for _, r := range chunk {
		args = append(args,
			r.OrderID, r.OrderDate, r.OrderStatus, r.FulfillmentType,
			r.SalesChannel, r.ShipServiceLevel, r.ProductStyle, r.SKU,
			r.ProductASIN, r.CourierStatus, r.Quantity, r.Currency,
			r.Amount.String(), r.ShipCity, r.ShipState, r.ShipPostalCode,
			r.ShipCountry, r.PromotionIDs, r.IsB2B, r.FulfillmentBy,
			r.CustomerName, r.UnitPrice.String(), r.TotalAmount.String(), r.DesignNo,
			r.CurrentStock, r.ProductCategory, r.ProductSize, r.ProductColor,
			r.OrderYear, r.OrderMonthNum, r.OrderDayOfWeek, r.OrderHour,
			r.TotalPrice.String(),
		)
	}
	return args
}
