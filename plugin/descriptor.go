package plugin

// Descriptor is the frontend-facing configuration a plugin exposes to the
// pattern library UI. It is serialized verbatim to the public packages folder
// and appended to the host's descriptor list.
type Descriptor struct {
	Name          string   `json:"name"`
	Templates     []string `json:"templates" default:"[]"`
	Stylesheets   []string `json:"stylesheets" default:"[]"`
	Javascripts   []string `json:"javascripts" default:"[]"`
	OnReady       string   `json:"onready"`
	Callback      string   `json:"callback"`
	Options       Options  `json:"options"`
	PluginOptions Options  `json:"pluginOptions"`
}

// WithOptions copies the host-supplied option values onto a copy of d.
func (d Descriptor) WithOptions(rec *PluginRecord) *Descriptor {
	if rec != nil {
		d.Options = rec.Options
		d.PluginOptions = rec.PluginOptions
	}
	return &d
}
