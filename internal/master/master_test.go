package master

import (
	"testing"

	"salesetl/internal/table"
)

func masterTable(skus ...string) table.Table {
	t := table.New("sku", "current_stock")
	for i, s := range skus {
		row := table.Row{"current_stock": table.IntVal(int64(i))}
		if s != "" {
			row["sku"] = table.Str(s)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func TestDeduplicate_FirstOccurrenceWins(t *testing.T) {
	in := masterTable("X1", "X2", "X1", "X3", "X2")
	out, removed := Deduplicate(in)
	if removed != 2 {
		t.Fatalf("removed: got %d want 2", removed)
	}
	if len(out.Rows) != 3 {
		t.Fatalf("rows: got %d want 3", len(out.Rows))
	}
	// the surviving X1 must be the first one (stock 0), not the later "better" row
	if got := out.Rows[0].Get("current_stock").Int; got != 0 {
		t.Fatalf("first occurrence should win, stock=%d", got)
	}
	if out.Rows[1].Get("sku").Str != "X2" || out.Rows[2].Get("sku").Str != "X3" {
		t.Fatalf("order broken: %v", out.Rows)
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	once, _ := Deduplicate(masterTable("X1", "X1", "X2"))
	twice, removed := Deduplicate(once)
	if removed != 0 {
		t.Fatalf("second pass removed %d rows", removed)
	}
	if len(twice.Rows) != len(once.Rows) {
		t.Fatalf("idempotence broken: %d vs %d", len(twice.Rows), len(once.Rows))
	}
}

func TestDeduplicate_NullSKUsCollapseToo(t *testing.T) {
	out, removed := Deduplicate(masterTable("X1", "", ""))
	if removed != 1 || len(out.Rows) != 2 {
		t.Fatalf("null skus should dedup together: removed=%d rows=%d", removed, len(out.Rows))
	}
}
