package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"salesetl/internal/table"
)

func TestConfigFromEnv(t *testing.T) {
	for _, v := range envVars {
		t.Setenv(v, "")
	}
	if _, err := ConfigFromEnv(); err == nil {
		t.Fatalf("expected error for missing env")
	} else if !strings.Contains(err.Error(), "DB_PASSWORD") {
		t.Fatalf("error should name missing vars: %v", err)
	}

	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "warehouse")
	t.Setenv("DB_USER", "etl")
	t.Setenv("DB_PASSWORD", "p@ss w#rd")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	dsn := cfg.DSN()
	if !strings.Contains(dsn, "p%40ss+w%23rd") {
		t.Fatalf("password not percent-encoded: %s", dsn)
	}
	if !strings.HasPrefix(dsn, "postgres://etl:") || !strings.Contains(dsn, "@localhost:5432/warehouse") {
		t.Fatalf("dsn shape wrong: %s", dsn)
	}
}

// fakeExecer implements execer for tests.
type fakeExecer struct {
	queries []string
	argLens []int
	failAt  int // 1-based exec index to fail on; 0 = never
}

func (f *fakeExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.queries = append(f.queries, query)
	f.argLens = append(f.argLens, len(args))
	if f.failAt > 0 && len(f.queries) == f.failAt {
		return nil, errors.New("connection reset")
	}
	return nil, nil
}

func record(orderID string) SalesRecord {
	return SalesRecord{
		OrderID:      orderID,
		OrderDate:    time.Date(2022, 6, 6, 0, 0, 0, 0, time.UTC),
		SKU:          "X1",
		SalesChannel: "Amazon.in",
		Quantity:     1,
		Amount:       decimal.NewFromInt(10),
		TotalPrice:   decimal.NewFromInt(10),
	}
}

func TestLoader_Chunking(t *testing.T) {
	fk := &fakeExecer{}
	l := NewLoaderWith(fk, 2)

	recs := []SalesRecord{record("a"), record("b"), record("c"), record("d"), record("e")}
	n, err := l.Load(context.Background(), recs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n != 5 {
		t.Fatalf("loaded: got %d want 5", n)
	}
	if len(fk.queries) != 3 {
		t.Fatalf("chunks: got %d want 3", len(fk.queries))
	}
	// 2 rows x 33 columns in the first chunk, 1 x 33 in the last
	if fk.argLens[0] != 2*len(insertColumns) || fk.argLens[2] != len(insertColumns) {
		t.Fatalf("arg counts: %v", fk.argLens)
	}
	if !strings.HasPrefix(fk.queries[0], "INSERT INTO sales_fact") {
		t.Fatalf("query: %s", fk.queries[0])
	}
	if !strings.Contains(fk.queries[0], "$66") || strings.Contains(fk.queries[0], "$67") {
		t.Fatalf("placeholder numbering wrong: %s", fk.queries[0])
	}
}

func TestLoader_FailureAborts(t *testing.T) {
	fk := &fakeExecer{failAt: 2}
	l := NewLoaderWith(fk, 1)
	n, err := l.Load(context.Background(), []SalesRecord{record("a"), record("b"), record("c")})
	if err == nil {
		t.Fatalf("expected error")
	}
	if n != 1 {
		t.Fatalf("loaded before failure: got %d want 1", n)
	}
	if len(fk.queries) != 2 {
		t.Fatalf("load must stop at the failing chunk, execs=%d", len(fk.queries))
	}
}

func TestLoader_EnsureSchema(t *testing.T) {
	fk := &fakeExecer{}
	l := NewLoaderWith(fk, 1)
	if err := l.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if len(fk.queries) != 1 || !strings.Contains(fk.queries[0], "CREATE TABLE IF NOT EXISTS sales_fact") {
		t.Fatalf("schema statement: %v", fk.queries)
	}
}

func TestFromTable(t *testing.T) {
	tab := table.New("order_id", "order_date", "sku", "sales_channel", "quantity", "amount", "is_b2b", "product_category")
	tab.Rows = []table.Row{{
		"order_id":         table.Str("B1"),
		"order_date":       table.DateVal(time.Date(2022, 6, 6, 0, 0, 0, 0, time.UTC)),
		"sku":              table.Str("X1"),
		"sales_channel":    table.Str("Amazon.in"),
		"quantity":         table.IntVal(2),
		"amount":           table.Dec(decimal.NewFromInt(100)),
		"is_b2b":           table.BoolVal(true),
		"product_category": table.Str("Kurta"),
	}}
	recs, err := FromTable(tab)
	if err != nil {
		t.Fatalf("FromTable: %v", err)
	}
	r := recs[0]
	if r.OrderID != "B1" || r.SKU != "X1" || !r.IsB2B || r.Quantity != 2 || r.ProductCategory != "Kurta" {
		t.Fatalf("record mapping wrong: %+v", r)
	}
}

func TestFromTable_RejectsUnreconciledRows(t *testing.T) {
	tab := table.New("order_id", "order_date", "sku")
	tab.Rows = []table.Row{{"order_date": table.DateVal(time.Now()), "sku": table.Str("X1")}}
	if _, err := FromTable(tab); err == nil {
		t.Fatalf("missing order_id must be rejected")
	}
}
