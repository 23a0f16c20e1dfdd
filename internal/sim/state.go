package sim

// Phase is the session state. Running is the zero value.
type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseLost
	PhaseWon
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseLost:
		return "lost"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether p ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseLost || p == PhaseWon
}

// Machine tracks the session phase. Transitions are one-way out of Running;
// only Reset returns to it.
type Machine struct {
	phase  Phase
	events *Events
}

// NewMachine creates a machine in the Running phase.
func NewMachine(events *Events) *Machine {
	return &Machine{events: events}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Running reports whether updates are allowed.
func (m *Machine) Running() bool {
	return m.phase == PhaseRunning
}

// Lose moves Running to Lost. Returns false if the session already ended.
func (m *Machine) Lose() bool {
	return m.transition(PhaseLost)
}

// Win moves Running to Won. Returns false if the session already ended.
func (m *Machine) Win() bool {
	return m.transition(PhaseWon)
}

// Reset returns to Running from any phase.
func (m *Machine) Reset() {
	if m.phase == PhaseRunning {
		return
	}
	m.phase = PhaseRunning
	m.events.Emit(Event{Kind: EventPhase, Phase: PhaseRunning})
}

func (m *Machine) transition(to Phase) bool {
	if m.phase != PhaseRunning {
		return false
	}
	m.phase = to
	m.events.Emit(Event{Kind: EventPhase, Phase: to})
	return true
}
