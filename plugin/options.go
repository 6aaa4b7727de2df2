package plugin

import (
	"math"
	"reflect"
	"strings"

	"github.com/leeforge/plminify/json"
)

// Options is an opaque, pass-through value supplied by host configuration.
// The plugin never re-types it; it only tests truthiness, reads keys and
// binds it onto its own structs.
type Options struct {
	value any
}

// NewOptions wraps a raw configuration value.
func NewOptions(v any) Options {
	if o, ok := v.(Options); ok {
		return o
	}
	return Options{value: v}
}

// Value returns the raw value.
func (o Options) Value() any { return o.value }

// IsZero reports whether no value was supplied.
func (o Options) IsZero() bool { return o.value == nil }

// Truthy follows the host's truthiness rules: nil, false, zero numbers,
// NaN and the empty string are falsy. Everything else, including empty
// maps and slices, is truthy.
func (o Options) Truthy() bool {
	switch v := o.value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	}

	rv := reflect.ValueOf(o.value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// Get returns the value stored under key when Options holds a map.
// Keys are matched exactly first, then case-insensitively.
func (o Options) Get(key string) (any, bool) {
	m, ok := o.value.(map[string]any)
	if !ok {
		return nil, false
	}
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func (o Options) GetString(key string, defaultVal string) string {
	v, ok := o.Get(key)
	if !ok {
		return defaultVal
	}
	s, ok := v.(string)
	if !ok {
		return defaultVal
	}
	return s
}

func (o Options) GetInt(key string, defaultVal int) int {
	v, ok := o.Get(key)
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return defaultVal
	}
}

func (o Options) GetBool(key string, defaultVal bool) bool {
	v, ok := o.Get(key)
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// Bind decodes the raw value onto target. Struct defaults are applied first,
// so keys absent from the value keep their `default` tag.
func (o Options) Bind(target any) error {
	data, err := json.Marshal(o.value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// MarshalJSON encodes the raw value unchanged.
func (o Options) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.value)
}

// UnmarshalJSON stores the decoded value without interpreting it.
func (o *Options) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value = v
	return nil
}
