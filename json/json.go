package json

import (
	"reflect"

	"github.com/creasty/defaults"
	jsoniter "github.com/json-iterator/go"
)

// json sorts map keys, so encoded documents are stable across runs.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// applyDefaults fills `default` tags when v points at a struct. Any other
// value is encoded or decoded as is.
func applyDefaults(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil
	}
	return defaults.Set(v)
}

func Marshal(v any) ([]byte, error) {
	if err := applyDefaults(v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	if err := applyDefaults(v); err != nil {
		return nil, err
	}
	return json.MarshalIndent(v, prefix, indent)
}

// MarshalPretty encodes v with two-space indentation.
func MarshalPretty(v any) ([]byte, error) {
	return MarshalIndent(v, "", "  ")
}

func Unmarshal(data []byte, v any) error {
	if err := applyDefaults(v); err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Valid reports whether data is a valid JSON document.
func Valid(data []byte) bool {
	return json.Valid(data)
}
