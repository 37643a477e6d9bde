// Package core contains the single source of truth for the engine: the
// scalar value model, table schemas, the query tree produced by the parser,
// and the predicate tree evaluated by WHERE.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindInt
	KindText
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// Value is a tagged scalar: 64-bit integer, UTF-8 text, calendar day, or NULL.
// The zero Value is NULL.
type Value struct {
	kind Kind
	i    int64
	s    string
	d    time.Time
}

// Null returns the NULL value.
func Null() Value { return Value{} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Date returns a date value. Only the calendar day survives; the time of day
// and location are discarded so that equal days compare equal.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, d: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// dateLayout is the wire and display format for dates.
const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD literal into a date value.
func ParseDate(s string) (Value, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Null(), fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(t), nil
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) Int() int64      { return v.i }
func (v Value) Text() string    { return v.s }
func (v Value) Date() time.Time { return v.d }

// String renders the value for result tables: integers in decimal, text
// verbatim, dates as YYYY-MM-DD, and NULL as the literal NULL.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindText:
		return v.s
	case KindDate:
		return v.d.Format(dateLayout)
	default:
		return "NULL"
	}
}

// Equal reports strict equality: same kind and same content. Text compares
// case-sensitively and NULL equals NULL. Primary-key projection, foreign-key
// membership, and reference scans all use this relation.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindText:
		return v.s == o.s
	case KindDate:
		return v.d.Equal(o.d)
	default:
		return true
	}
}

// Key returns a canonical encoding usable as a map key. Distinct values map
// to distinct keys across kinds.
func (v Value) Key() string {
	switch v.kind {
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindText:
		return "t:" + v.s
	case KindDate:
		return "d:" + v.d.Format(dateLayout)
	default:
		return "n"
	}
}

// ErrIncomparable reports a comparison between values of different non-null
// kinds, or of a kind that has no ordering.
var ErrIncomparable = errors.New("incomparable values")

// Compare orders two non-null values of the same kind: -1, 0, or 1.
// Text compares case-insensitively. Any cross-kind pair is ErrIncomparable;
// callers handle NULL operands before calling (three-valued logic).
func Compare(a, b Value) (int, error) {
	if a.kind != b.kind || a.kind == KindNull {
		return 0, ErrIncomparable
	}
	switch a.kind {
	case KindInt:
		switch {
		case a.i < b.i:
			return -1, nil
		case a.i > b.i:
			return 1, nil
		}
		return 0, nil
	case KindText:
		return strings.Compare(strings.ToLower(a.s), strings.ToLower(b.s)), nil
	case KindDate:
		switch {
		case a.d.Before(b.d):
			return -1, nil
		case a.d.After(b.d):
			return 1, nil
		}
		return 0, nil
	}
	return 0, ErrIncomparable
}
