package plugin

// RegistrationState represents whether a plugin's event handlers are attached to the host.
type RegistrationState int

const (
	StateUnregistered RegistrationState = iota // No record, or record not yet initialized
	StateRegistered                            // Handlers attached, Initialized flag set
)

// String returns a human-readable state name.
func (s RegistrationState) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateRegistered:
		return "registered"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the state cannot transition further.
func (s RegistrationState) IsTerminal() bool {
	return s == StateRegistered
}

// PluginRecord is the host's per-plugin configuration entry.
type PluginRecord struct {
	Enabled       bool
	Initialized   bool
	Options       Options
	PluginOptions Options
}

// State derives the registration state from the record.
// A nil record is unregistered.
func (r *PluginRecord) State() RegistrationState {
	if r != nil && r.Initialized {
		return StateRegistered
	}
	return StateUnregistered
}
