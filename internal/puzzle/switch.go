package puzzle

// Switch is one boolean input the player can flip. It knows nothing about the
// circuit or the session that owns it.
type Switch struct {
	ID             int
	Value          bool
	HasBeenToggled bool
	Enabled        bool
}

// NewSwitch creates an enabled switch with the given starting value.
func NewSwitch(id int, value bool) Switch {
	return Switch{ID: id, Value: value, Enabled: true}
}

// Toggle flips the switch and records the first interaction.
// Returns false without changing anything when the switch is disabled.
func (s *Switch) Toggle() bool {
	if !s.Enabled {
		return false
	}
	s.Value = !s.Value
	s.HasBeenToggled = true
	return true
}

// newSwitches builds a fresh switch vector from initial values.
func newSwitches(initial []bool) []Switch {
	switches := make([]Switch, len(initial))
	for i, v := range initial {
		switches[i] = NewSwitch(i, v)
	}
	return switches
}

// values extracts the current switch values.
func values(switches []Switch) []bool {
	v := make([]bool, len(switches))
	for i, s := range switches {
		v[i] = s.Value
	}
	return v
}
