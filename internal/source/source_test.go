package source

import (
	"os"
	"path/filepath"
	"testing"

	"salesetl/internal/table"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadCSV_TrimsHeadersAndBOM(t *testing.T) {
	path := writeCSV(t, "in.csv", "\xEF\xBB\xBF SKU Code ,Stock\nX1,4\nX2\n")
	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if got.Columns[0] != "SKU Code" || got.Columns[1] != "Stock" {
		t.Fatalf("headers not trimmed: %v", got.Columns)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("rows: got %d want 2", len(got.Rows))
	}
	// short second row pads out with null
	if !got.Rows[1].Get("Stock").IsNull() {
		t.Fatalf("ragged row should pad with null")
	}
}

func TestReadCSV_MissingFileIsError(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestClean_DropRenameCoerce(t *testing.T) {
	path := writeCSV(t, "master.csv",
		"index,SKU Code,Design No.,Stock,Category,Size,Color\n"+
			"0,X1,D100,4,Kurta,M,Red\n"+
			"1,X2,D200,oops,Top,S,Blue\n")
	got, err := Load(path, ProductMaster())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.HasColumn("index") || !got.HasColumn("sku") {
		t.Fatalf("drop/rename failed: %v", got.Columns)
	}
	if v := got.Rows[0].Get("current_stock"); v.Kind != table.Int || v.Int != 4 {
		t.Fatalf("stock coercion: %+v", v)
	}
	// "oops" fails integer coercion; the cell goes null, the row survives
	if !got.Rows[1].Get("current_stock").IsNull() {
		t.Fatalf("failed coercion should null the cell")
	}
	if got.Rows[1].Get("sku").Str != "X2" {
		t.Fatalf("row with bad cell must be kept")
	}
}

func TestClean_WholesaleDateLayout(t *testing.T) {
	path := writeCSV(t, "intl.csv",
		"DATE,Months,CUSTOMER,Style,SKU,Size,PCS,RATE,GROSS AMT\n"+
			"06-05-22,Jun-22,ACME,ST1,X1,M,2,300.50,601\n"+
			"not-a-date,Jun-22,ACME,ST1,X2,M,1,100,100\n")
	got, err := Load(path, Wholesale())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := got.Rows[0].Get("order_date")
	if d.Kind != table.Date {
		t.Fatalf("date not coerced: %+v", d)
	}
	// MM-DD-YY: June 5th, not May 6th
	if d.Time.Month() != 6 || d.Time.Day() != 5 || d.Time.Year() != 2022 {
		t.Fatalf("wholesale layout wrong: %v", d.Time)
	}
	if d.Raw != "06-05-22" {
		t.Fatalf("raw date text must survive coercion, got %q", d.Raw)
	}
	if !got.Rows[1].Get("order_date").IsNull() {
		t.Fatalf("unparseable date should be null")
	}
	if v := got.Rows[0].Get("unit_price"); v.Kind != table.Decimal || v.Dec.String() != "300.5" {
		t.Fatalf("unit_price coercion: %+v", v)
	}
}

func TestParseDate_DayFirstPreference(t *testing.T) {
	ts, ok := ParseDate("06-05-22", true)
	if !ok {
		t.Fatalf("parse failed")
	}
	// day-before-month: May 6th
	if ts.Month() != 5 || ts.Day() != 6 {
		t.Fatalf("day-first wrong: %v", ts)
	}
	if _, ok := ParseDate("31-31-22", true); ok {
		t.Fatalf("impossible date should fail")
	}
}

func TestCoercion_IntAcceptsWholeDecimals(t *testing.T) {
	c := Coercion{Kind: CoerceInt}
	if v := c.Apply("3.0"); v.Kind != table.Int || v.Int != 3 {
		t.Fatalf("3.0 should coerce to 3: %+v", v)
	}
	if v := c.Apply("3.7"); !v.IsNull() {
		t.Fatalf("3.7 is not an integer: %+v", v)
	}
}
