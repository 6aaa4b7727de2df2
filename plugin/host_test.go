package plugin

import (
	"path/filepath"
	"testing"
)

func TestHostState_EnsurePluginsIsNonDestructive(t *testing.T) {
	host := NewHostState(Paths{PublicRoot: "public"}, nil, nil)
	if host.HasPlugins() {
		t.Fatal("new host should not have a plugins map")
	}

	host.EnsurePlugins()
	if !host.HasPlugins() {
		t.Fatal("EnsurePlugins should create the map")
	}

	host.SetPluginRecord("a", PluginRecord{Enabled: true})
	host.EnsurePlugins()
	if _, ok := host.PluginRecord("a"); !ok {
		t.Fatal("EnsurePlugins must keep existing records")
	}
}

func TestHostState_MarkInitialized(t *testing.T) {
	host := NewHostState(Paths{}, nil, nil)
	if host.MarkInitialized("missing") {
		t.Error("MarkInitialized should fail without a record")
	}

	host.SetPluginRecord("a", PluginRecord{Enabled: true})
	if got := host.RegistrationState("a"); got != StateUnregistered {
		t.Errorf("state = %v, want unregistered", got)
	}
	if !host.MarkInitialized("a") {
		t.Fatal("MarkInitialized should succeed")
	}
	if got := host.RegistrationState("a"); got != StateRegistered {
		t.Errorf("state = %v, want registered", got)
	}

	rec, _ := host.PluginRecord("a")
	rec.Initialized = false
	if got := host.RegistrationState("a"); got != StateRegistered {
		t.Error("PluginRecord must return a copy")
	}
}

func TestHostState_Descriptors(t *testing.T) {
	host := NewHostState(Paths{}, nil, nil)
	host.AddDescriptor(&Descriptor{Name: "one"})
	host.AddDescriptor(&Descriptor{Name: "two"})

	got := host.Descriptors()
	if len(got) != 2 || got[0].Name != "one" || got[1].Name != "two" {
		t.Fatalf("Descriptors() = %v", got)
	}
}

func TestHostState_PatternsDir(t *testing.T) {
	host := NewHostState(Paths{PublicRoot: "public"}, nil, nil)
	if got := host.PatternsDir(); got != filepath.Join("public", "patterns") {
		t.Errorf("PatternsDir() = %q", got)
	}

	host.Paths.PublicPatterns = "out"
	if got := host.PatternsDir(); got != "out" {
		t.Errorf("PatternsDir() = %q, want out", got)
	}
}

func TestPattern_Paths(t *testing.T) {
	p := &Pattern{RelPath: "00-atoms/00-button.mustache"}
	if got := p.FlatName(); got != "00-atoms-00-button" {
		t.Fatalf("FlatName() = %q", got)
	}

	want := filepath.Join("pub", "00-atoms-00-button", "00-atoms-00-button.html")
	if got := p.OutputPath("pub"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
	want = filepath.Join("pub", "00-atoms-00-button", "00-atoms-00-button.markup-only.html")
	if got := p.MarkupOnlyPath("pub"); got != want {
		t.Errorf("MarkupOnlyPath() = %q, want %q", got, want)
	}
}

func TestDescriptor_WithOptions(t *testing.T) {
	base := Descriptor{Name: "x"}
	d := base.WithOptions(&PluginRecord{Options: NewOptions(true)})
	if !d.Options.Truthy() {
		t.Error("options should be copied from the record")
	}
	if base.Options.Truthy() {
		t.Error("WithOptions must not mutate the receiver")
	}
	if base.WithOptions(nil).Options.Truthy() {
		t.Error("nil record should leave options empty")
	}
}
