package source

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"salesetl/internal/table"
)

// CoerceKind selects the typed-field transform applied to a column. A
// small closed set instead of arbitrary closures keeps the per-source
// cleaning specs inspectable and testable on their own.
type CoerceKind int

const (
	CoerceString CoerceKind = iota
	CoerceInt
	CoerceDecimal
	CoerceDate
)

// Coercion is one column transform. Layout applies to CoerceDate only;
// when empty the flexible month-first parse is used.
type Coercion struct {
	Kind   CoerceKind
	Layout string
}

// monthFirstLayouts covers the marketplace export's free-form dates.
var monthFirstLayouts = []string{
	"01-02-06",
	"01-02-2006",
	"01/02/2006",
	"01/02/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04",
}

// dayFirstLayouts is the locale-style preference the reconciliation
// temporal gate re-parses with (dd/mm, not mm/dd).
var dayFirstLayouts = []string{
	"02-01-06",
	"02-01-2006",
	"02/01/2006",
	"02/01/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
}

// Apply coerces one raw cell. A failure yields a null cell, never an
// error: a bad value must not abort its row.
func (c Coercion) Apply(raw string) table.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return table.NullValue()
	}
	switch c.Kind {
	case CoerceInt:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return table.Value{Kind: table.Int, Raw: raw, Int: i}
		}
		// whole-valued decimals ("3.0") still count as integers
		if d, err := decimal.NewFromString(s); err == nil && d.IsInteger() {
			return table.Value{Kind: table.Int, Raw: raw, Int: d.IntPart()}
		}
		return table.NullValue()
	case CoerceDecimal:
		if d, err := decimal.NewFromString(s); err == nil {
			return table.Value{Kind: table.Decimal, Raw: raw, Dec: d}
		}
		return table.NullValue()
	case CoerceDate:
		if c.Layout != "" {
			if ts, err := time.Parse(c.Layout, s); err == nil {
				return table.Value{Kind: table.Date, Raw: raw, Time: ts}
			}
			return table.NullValue()
		}
		if ts, ok := ParseDate(s, false); ok {
			return table.Value{Kind: table.Date, Raw: raw, Time: ts}
		}
		return table.NullValue()
	default:
		return table.Str(raw)
	}
}

// ParseDate tries the known calendar layouts. dayFirst resolves the
// dd/mm vs mm/dd ambiguity in favor of day-before-month.
func ParseDate(s string, dayFirst bool) (time.Time, bool) {
	layouts := monthFirstLayouts
	if dayFirst {
		layouts = dayFirstLayouts
	}
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
