package json

import (
	stdjson "encoding/json"
	"strings"
	"testing"
)

type testAsset struct {
	Name    string   `json:"name" default:"bundle"`
	Files   []string `json:"files" default:"[]"`
	Order   int      `json:"order" default:"10"`
	Enabled bool     `json:"enabled" default:"true"`
}

func TestMarshalAppliesDefaults(t *testing.T) {
	asset := &testAsset{Name: "app"}

	data, err := Marshal(asset)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	if asset.Order != 10 {
		t.Fatalf("expected default Order=10, got %d", asset.Order)
	}
	if !asset.Enabled {
		t.Fatalf("expected default Enabled=true, got false")
	}

	var decoded map[string]any
	if err := stdjson.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("encoded JSON should be valid, got error: %v", err)
	}
	files, ok := decoded["files"].([]any)
	if !ok {
		t.Fatalf("expected files to encode as an array, got %#v", decoded["files"])
	}
	if len(files) != 0 {
		t.Fatalf("expected empty files array, got %v", files)
	}
}

func TestMarshalNonStructSkipsDefaults(t *testing.T) {
	data, err := Marshal(map[string]any{"b": 1, "a": true})
	if err != nil {
		t.Fatalf("Marshal map returned error: %v", err)
	}
	if string(data) != `{"a":true,"b":1}` {
		t.Fatalf("expected sorted keys, got %s", data)
	}

	data, err = Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal nil returned error: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("expected null, got %s", data)
	}
}

func TestUnmarshalAppliesDefaultsForMissingFields(t *testing.T) {
	var asset testAsset
	if err := Unmarshal([]byte(`{"name":"app"}`), &asset); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if asset.Order != 10 {
		t.Fatalf("expected default Order=10, got %d", asset.Order)
	}
	if asset.Name != "app" {
		t.Fatalf("expected Name from JSON to be app, got %s", asset.Name)
	}
}

func TestUnmarshalPreservesExplicitZeroValues(t *testing.T) {
	var asset testAsset
	if err := Unmarshal([]byte(`{"order":0,"enabled":false,"name":""}`), &asset); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if asset.Order != 0 {
		t.Fatalf("expected explicit Order=0 to be preserved, got %d", asset.Order)
	}
	if asset.Enabled {
		t.Fatalf("expected explicit Enabled=false to be preserved")
	}
}

func TestUnmarshalMatchesKeysCaseInsensitively(t *testing.T) {
	var asset testAsset
	if err := Unmarshal([]byte(`{"ORDER":3}`), &asset); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if asset.Order != 3 {
		t.Fatalf("expected Order=3, got %d", asset.Order)
	}
}

func TestMarshalPretty(t *testing.T) {
	data, err := MarshalPretty(&testAsset{Name: "app"})
	if err != nil {
		t.Fatalf("MarshalPretty returned error: %v", err)
	}

	output := string(data)
	if !strings.HasPrefix(output, "{\n  \"name\": \"app\"") {
		t.Fatalf("expected two-space indentation, got:\n%s", output)
	}
	if !Valid(data) {
		t.Fatalf("expected valid JSON, got:\n%s", output)
	}
}
