package common

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestFieldsOrder tests that iteration follows insertion order and that
// overwriting a value keeps the original position
func TestFieldsOrder(t *testing.T) {
	f := NewFields()
	f.Set("b", "2")
	f.Set("a", "1")
	f.Set("c", "3")
	f.Set("b", "22") // overwrite, must keep position 0

	var keys []string
	var values []string
	f.Range(func(key, value string) bool {
		keys = append(keys, key)
		values = append(values, value)
		return true
	})

	if strings.Join(keys, ",") != "b,a,c" {
		t.Errorf("Unexpected key order: %v", keys)
	}
	if strings.Join(values, ",") != "22,1,3" {
		t.Errorf("Unexpected values: %v", values)
	}

	if v, ok := f.Get("b"); !ok || v != "22" {
		t.Errorf("Get(b) = %q, %v", v, ok)
	}
	if _, ok := f.Get("missing"); ok {
		t.Error("Get(missing) should not be present")
	}
	if f.Len() != 3 {
		t.Errorf("Expected 3 fields, got %d", f.Len())
	}
}

// TestFieldsNil tests the nil receiver behavior used by response handling
func TestFieldsNil(t *testing.T) {
	var f *Fields
	if f.Len() != 0 {
		t.Error("nil bag should be empty")
	}
	f.Range(func(string, string) bool {
		t.Error("nil bag should not iterate")
		return false
	})
	if _, ok := f.Get("x"); ok {
		t.Error("nil bag should have no values")
	}
}

// TestFieldsMerge tests stringification of loose key/value structures
func TestFieldsMerge(t *testing.T) {
	f := NewFields()
	f.Merge(map[string]any{
		"num":  7,
		"str":  "text",
		"flag": true,
	}, []string{"num", "str", "flag"})

	var got []string
	f.Range(func(key, value string) bool {
		got = append(got, key+"="+value)
		return true
	})
	expected := "num=7,str=text,flag=true"
	if strings.Join(got, ",") != expected {
		t.Errorf("Expected %q, got %q", expected, strings.Join(got, ","))
	}
}

// TestFieldsJSONRoundTrip tests that the JSON encoding preserves key order
func TestFieldsJSONRoundTrip(t *testing.T) {
	f := NewFields()
	f.Set("z", "last first")
	f.Set("a", "then this")
	f.Set("m", "middle")

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	expected := `{"z":"last first","a":"then this","m":"middle"}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}

	var back Fields
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	var keys []string
	back.Range(func(key, _ string) bool {
		keys = append(keys, key)
		return true
	})
	if strings.Join(keys, ",") != "z,a,m" {
		t.Errorf("Order lost after round trip: %v", keys)
	}
}

// TestFieldsJSONInvalid tests decoding of malformed documents
func TestFieldsJSONInvalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "Array instead of object", data: `["a","b"]`},
		{name: "Non-string value", data: `{"a":{"nested":true}}`},
		{name: "Truncated", data: `{"a":"b"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var f Fields
			if err := json.Unmarshal([]byte(tc.data), &f); err == nil {
				t.Errorf("Expected error for %s", tc.data)
			}
		})
	}
}
