package tally

import (
	"math"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindNull valueKind = iota
	kindText
	kindNumber
)

// Value is a single table cell: null, text, or number
type Value struct {
	kind valueKind
	text string
	num  float64
}

// Null returns an empty cell
func Null() Value {
	return Value{}
}

// Text returns a text cell
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// Number returns a numeric cell. NaN becomes null.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Null()
	}
	return Value{kind: kindNumber, num: f}
}

// IsNull reports whether the cell is empty
func (v Value) IsNull() bool {
	return v.kind == kindNull
}

// IsNumber reports whether the cell holds a number
func (v Value) IsNumber() bool {
	return v.kind == kindNumber
}

// Float returns the numeric content of the cell
func (v Value) Float() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.num, true
}

// String renders the cell; null renders as the empty string
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// parseCount coerces a cell into a non-negative whole vote count.
// Null and blank text stay null.
func parseCount(v Value) (Value, bool) {
	switch v.kind {
	case kindNull:
		return v, true
	case kindNumber:
		return v, isCount(v.num)
	}

	s := strings.TrimSpace(v.text)
	if s == "" {
		return Null(), true
	}
	f, err := strconv.ParseFloat(plainNumber(s), 64)
	if err != nil || !isCount(f) {
		return v, false
	}
	return Number(f), true
}

// plainNumber rewrites a localized number into ParseFloat syntax. With both
// ',' and '.' present the last one is the decimal separator ("1.234,00").
// With one kind only, it is a thousands separator when every group after
// the first has three digits ("1.234", "12,345,678", "12 345").
func plainNumber(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")

	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	if comma >= 0 && dot >= 0 {
		dec, thou := ".", ","
		if comma > dot {
			dec, thou = ",", "."
		}
		s = strings.ReplaceAll(s, thou, "")
		s = strings.ReplaceAll(s, " ", "")
		return strings.Replace(s, dec, ".", 1)
	}

	for _, sep := range []string{",", ".", " "} {
		if parts := strings.Split(s, sep); len(parts) > 1 && digitGroups(parts) {
			return strings.Join(parts, "")
		}
	}
	return s
}

func digitGroups(parts []string) bool {
	if n := len(parts[0]); n == 0 || n > 3 || !allDigits(parts[0]) {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 || !allDigits(p) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isCount(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0) && f == math.Trunc(f)
}
