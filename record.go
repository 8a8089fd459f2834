package bizlist

import (
	"bytes"
	"encoding/json"
)

// Record is one listing with exactly the schema's field set. Unset fields
// hold Absent. Records are immutable once built.
type Record struct {
	schema *Schema
	values []Value
}

// Get returns the value of field, or Absent for unknown fields.
func (r *Record) Get(field string) Value {
	i, ok := r.schema.index[field]
	if !ok {
		return Absent()
	}
	return r.values[i]
}

// Fields returns the record's keys in schema order.
func (r *Record) Fields() []string {
	return r.schema.Fields()
}

// Len returns the number of keys, absent ones included.
func (r *Record) Len() int {
	return len(r.values)
}

// Map returns a copy of the record keyed by field name.
func (r *Record) Map() map[string]Value {
	m := make(map[string]Value, len(r.values))
	for i, f := range r.schema.fields {
		m[f] = r.values[i]
	}
	return m
}

// MarshalJSON encodes the record as an object with keys in schema order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.schema.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape encodes v without escaping &, < and >, so field names like
// FF&E stay readable in exported files.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
