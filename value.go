package bizlist

import (
	"encoding/json"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindInteger
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	default:
		return "absent"
	}
}

// Value is the content of one canonical field. The zero Value is absent,
// which is distinct from empty text.
type Value struct {
	kind Kind
	text string
	num  float64
	n    int64
}

// Absent returns the explicit "no value" marker.
func Absent() Value { return Value{} }

// Text returns a textual value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a floating point value, used for money fields.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Integer returns an integral value, used for counts.
func Integer(n int64) Value { return Value{kind: KindInteger, n: n} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v holds no value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Text returns the textual content of v and whether v is text.
func (v Value) Text() (string, bool) { return v.text, v.kind == KindText }

// Number returns the numeric content of v and whether v is a number.
func (v Value) Number() (float64, bool) { return v.num, v.kind == KindNumber }

// Integer returns the integral content of v and whether v is an integer.
func (v Value) Integer() (int64, bool) { return v.n, v.kind == KindInteger }

// String renders v for tabular output. Absent renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindInteger:
		return strconv.FormatInt(v.n, 10)
	default:
		return ""
	}
}

// MarshalJSON encodes absent as null and every other kind as its natural
// JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return marshalNoEscape(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	case KindInteger:
		return json.Marshal(v.n)
	default:
		return []byte("null"), nil
	}
}
