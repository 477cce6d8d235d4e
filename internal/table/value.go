package table

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the typed cell variants a column coercion can produce.
type Kind int

const (
	Null Kind = iota
	String
	Int
	Decimal
	Date
	Bool
)

// Value is one typed cell. Raw keeps the original source text so later
// stages (the identity hash in particular) can work on what the file
// actually said, not on a reformatted rendering.
type Value struct {
	Kind Kind
	Raw  string

	Str  string
	Int  int64
	Dec  decimal.Decimal
	Time time.Time
	Bool bool
}

func NullValue() Value { return Value{Kind: Null} }

func Str(s string) Value { return Value{Kind: String, Raw: s, Str: s} }

func IntVal(i int64) Value { return Value{Kind: Int, Int: i} }

func Dec(d decimal.Decimal) Value { return Value{Kind: Decimal, Dec: d} }

func DateVal(t time.Time) Value { return Value{Kind: Date, Time: t} }

func BoolVal(b bool) Value { return Value{Kind: Bool, Bool: b} }

func (v Value) IsNull() bool { return v.Kind == Null }

// Text renders the cell as stable text: the raw source form when one
// survived coercion, otherwise the canonical rendering of the typed value.
// Null renders as the empty string.
func (v Value) Text() string {
	if v.Raw != "" {
		return v.Raw
	}
	switch v.Kind {
	case String:
		return v.Str
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Decimal:
		return v.Dec.String()
	case Date:
		return v.Time.Format("2006-01-02 15:04:05")
	case Bool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
