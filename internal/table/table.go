package table

import "fmt"

// Row maps column name to cell. A column absent from the map reads as Null.
type Row map[string]Value

func (r Row) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return NullValue()
}

func (r Row) Set(col string, v Value) { r[col] = v }

// Table is a fully materialized in-memory table. Columns fixes the column
// order; Rows keeps input order, which every stage is required to preserve.
type Table struct {
	Columns []string
	Rows    []Row
}

func New(columns ...string) Table {
	return Table{Columns: append([]string(nil), columns...)}
}

func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// DropColumns removes the named columns. Missing names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if _, ok := drop[c]; !ok {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, row := range t.Rows {
		for n := range drop {
			delete(row, n)
		}
	}
}

// RenameColumns applies the rename map. Names without a mapping are kept;
// mappings whose source column is missing are ignored.
func (t *Table) RenameColumns(renames map[string]string) {
	for i, c := range t.Columns {
		if to, ok := renames[c]; ok {
			t.Columns[i] = to
		}
	}
	for _, row := range t.Rows {
		for from, to := range renames {
			if v, ok := row[from]; ok {
				delete(row, from)
				row[to] = v
			}
		}
	}
}

// Filter keeps rows for which keep returns true, preserving order, and
// returns the number removed.
func (t *Table) Filter(keep func(Row) bool) int {
	kept := t.Rows[:0]
	removed := 0
	for _, row := range t.Rows {
		if keep(row) {
			kept = append(kept, row)
		} else {
			removed++
		}
	}
	t.Rows = kept
	return removed
}

// Concat stacks b under a. The output carries the union of both column
// sets, a's columns first; cells a side never had read as Null.
func Concat(a, b Table) Table {
	out := New(a.Columns...)
	for _, c := range b.Columns {
		if !out.HasColumn(c) {
			out.Columns = append(out.Columns, c)
		}
	}
	out.Rows = make([]Row, 0, len(a.Rows)+len(b.Rows))
	out.Rows = append(out.Rows, a.Rows...)
	out.Rows = append(out.Rows, b.Rows...)
	return out
}

// LeftJoin joins right onto left by key. Every left row appears exactly
// once; the right side must be unique on the key or the join would fan
// out, so duplicates are an error, not a best-effort match. Columns both
// sides share (other than the key) come out suffixed _x (left) and _y
// (right).
func LeftJoin(left, right Table, key string) (Table, error) {
	index := make(map[string]Row, len(right.Rows))
	for _, row := range right.Rows {
		k := row.Get(key)
		if k.IsNull() {
			continue
		}
		if _, dup := index[k.Text()]; dup {
			return Table{}, fmt.Errorf("left join on %q: right side has duplicate key %q", key, k.Text())
		}
		index[k.Text()] = row
	}

	shared := make(map[string]struct{})
	for _, c := range right.Columns {
		if c != key && left.HasColumn(c) {
			shared[c] = struct{}{}
		}
	}

	out := New()
	for _, c := range left.Columns {
		if _, ok := shared[c]; ok {
			out.Columns = append(out.Columns, c+"_x")
		} else {
			out.Columns = append(out.Columns, c)
		}
	}
	for _, c := range right.Columns {
		if c == key {
			continue
		}
		if _, ok := shared[c]; ok {
			out.Columns = append(out.Columns, c+"_y")
		} else {
			out.Columns = append(out.Columns, c)
		}
	}

	out.Rows = make([]Row, 0, len(left.Rows))
	for _, lrow := range left.Rows {
		row := make(Row, len(out.Columns))
		for _, c := range left.Columns {
			name := c
			if _, ok := shared[c]; ok {
				name = c + "_x"
			}
			if v, has := lrow[c]; has {
				row[name] = v
			}
		}
		k := lrow.Get(key)
		if !k.IsNull() {
			if rrow, ok := index[k.Text()]; ok {
				for _, c := range right.Columns {
					if c == key {
						continue
					}
					name := c
					if _, ok := shared[c]; ok {
						name = c + "_y"
					}
					if v, has := rrow[c]; has {
						row[name] = v
					}
				}
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
