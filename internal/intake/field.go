package intake

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind tags the shape a loosely typed booking field arrived in.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindList
	KindOther // bool, object or anything else the engine does not accept
)

// Field is a booking field as submitted by a client: a scalar, a list, or nothing.
// It is converted to an ordered sequence by the normalizers and never inspected again.
type Field struct {
	kind  Kind
	text  string // raw text for strings, JSON literal for numbers
	items []Field
}

// String builds a scalar text field.
func String(s string) Field {
	return Field{kind: KindString, text: s}
}

// Number builds a numeric field from its JSON literal, e.g. "14".
func Number(literal string) Field {
	return Field{kind: KindNumber, text: literal}
}

// List builds a list field.
func List(items ...Field) Field {
	return Field{kind: KindList, items: items}
}

// Strings builds a list field of text items.
func Strings(values ...string) Field {
	items := make([]Field, 0, len(values))
	for _, v := range values {
		items = append(items, String(v))
	}
	return List(items...)
}

// Ints builds a list field of numeric items.
func Ints(values ...int) Field {
	items := make([]Field, 0, len(values))
	for _, v := range values {
		items = append(items, Number(strconv.Itoa(v)))
	}
	return List(items...)
}

func (f Field) Kind() Kind {
	return f.kind
}

func (f Field) IsAbsent() bool {
	return f.kind == KindAbsent
}

// Text returns the scalar text of a string or number field, trimmed.
func (f Field) Text() string {
	if f.kind == KindString || f.kind == KindNumber {
		return strings.TrimSpace(f.text)
	}
	return ""
}

// UnmarshalJSON accepts null, strings, numbers and arrays of those.
// Other JSON values are kept as KindOther so the normalizers can ignore them.
func (f *Field) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = Field{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = String(s)
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		items := make([]Field, 0, len(raw))
		for _, r := range raw {
			var item Field
			if err := item.UnmarshalJSON(r); err != nil {
				return err
			}
			items = append(items, item)
		}
		*f = List(items...)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*f = Number(n.String())
	default:
		*f = Field{kind: KindOther}
	}
	return nil
}

// MarshalJSON writes the field back in the shape it was received.
func (f Field) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case KindString:
		return json.Marshal(f.text)
	case KindNumber:
		return []byte(f.text), nil
	case KindList:
		return json.Marshal(f.items)
	default:
		return []byte("null"), nil
	}
}
