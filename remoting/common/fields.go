package common

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Ordered Extension Field Bag
// --------------------------------------------------------------------------

// Field is a single extension field of a command header
type Field struct {
	Key   string
	Value string
}

// Fields is an ordered bag of extension fields. Iteration order is insertion
// order, which matters because the request signature covers all field values
// in exactly this order. A plain map would not give a stable order.
//
// Fields is not safe for concurrent mutation - a command is owned by a single
// request at a time.
type Fields struct {
	pairs []Field
	index map[string]int
}

// NewFields creates an empty field bag
func NewFields() *Fields {
	return &Fields{index: make(map[string]int)}
}

// Set adds a field or overwrites the value of an existing one. Overwriting
// keeps the original insertion position.
func (f *Fields) Set(key, value string) {
	if i, ok := f.index[key]; ok {
		f.pairs[i].Value = value
		return
	}
	f.index[key] = len(f.pairs)
	f.pairs = append(f.pairs, Field{Key: key, Value: value})
}

// Get returns the value for key and whether it is present
func (f *Fields) Get(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	i, ok := f.index[key]
	if !ok {
		return "", false
	}
	return f.pairs[i].Value, true
}

// Len returns the number of fields
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.pairs)
}

// Range calls fn for every field in insertion order until fn returns false
func (f *Fields) Range(fn func(key, value string) bool) {
	if f == nil {
		return
	}
	for _, p := range f.pairs {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Merge stringifies every value of the given loose key/value structure with
// fmt.Sprint and sets it on the bag. The merge order follows the caller's
// explicit pair list, not map iteration, to keep the bag deterministic.
func (f *Fields) Merge(extra map[string]any, order []string) {
	if len(order) == 0 {
		// No explicit order given - collect keys as delivered. Callers that
		// care about signature stability pass an order slice.
		for k := range extra {
			order = append(order, k)
		}
	}
	for _, k := range order {
		if v, ok := extra[k]; ok {
			f.Set(k, fmt.Sprint(v))
		}
	}
}

// --------------------------------------------------------------------------
// Serialization (ordered JSON object / gob pair list)
// --------------------------------------------------------------------------

// MarshalJSON encodes the bag as a JSON object with keys in insertion order
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range f.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving the key order of the document
func (f *Fields) UnmarshalJSON(data []byte) error {
	f.pairs = nil
	f.index = make(map[string]int)

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	// Opening brace
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fields: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("fields: expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("fields: value for %q: %v", key, err)
		}
		f.Set(key, value)
	}

	// Closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// GobEncode encodes the bag as its ordered pair list
func (f *Fields) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(f.pairs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores the bag from its ordered pair list
func (f *Fields) GobDecode(data []byte) error {
	var pairs []Field
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&pairs); err != nil {
		return err
	}
	f.pairs = nil
	f.index = make(map[string]int)
	for _, p := range pairs {
		f.Set(p.Key, p.Value)
	}
	return nil
}
