package projects

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one project entry: an ordered key/value mapping. Keys keep their
// first-seen position; setting an existing key overwrites its value in place.
// Scalar values are strings, the single multi-valued field (stack) holds a
// []string. Unknown keys pass through untouched.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores value under key, overwriting in place when the key exists.
func (r *Record) Set(key string, value any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the raw value stored under key.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the value for key when it is a scalar, or "" otherwise.
func (r *Record) GetString(key string) string {
	if s, ok := r.values[key].(string); ok {
		return s
	}
	return ""
}

// GetStrings returns the value for key when it is a sequence, or nil.
func (r *Record) GetStrings(key string) []string {
	if s, ok := r.values[key].([]string); ok {
		return s
	}
	return nil
}

// Keys returns the record's keys in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys in the record.
func (r *Record) Len() int {
	return len(r.keys)
}

// Clone returns a deep copy sharing no state with the receiver.
func (r *Record) Clone() *Record {
	out := NewRecord()
	for _, k := range r.keys {
		v := r.values[k]
		if seq, ok := v.([]string); ok {
			v = append([]string(nil), seq...)
		}
		out.Set(k, v)
	}
	return out
}

// MarshalJSON writes the record as a JSON object with keys in insertion
// order, which the standard map type cannot guarantee.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
