package sim

// EventKind identifies what changed in the simulation.
type EventKind uint8

const (
	EventSpawned   EventKind = iota + 1 // entity appended to the store
	EventRemoved                        // entity removed; Name holds the reason
	EventPhase                          // phase transition; Phase holds the new phase
	EventCounter                        // counter changed; Name/Value hold counter and new value
	EventMilestone                      // milestone reached; Value holds the running total
)

// Removal reasons carried in Event.Name.
const (
	ReasonOffField = "off-field"
	ReasonMerged   = "merged"
	ReasonAbsorbed = "absorbed"
	ReasonEscaped  = "escaped"
	ReasonReset    = "reset"
)

// Event is a notification from the core to the presentation layer.
type Event struct {
	Kind   EventKind
	ID     EntityID
	Entity Kind
	Phase  Phase
	Name   string
	Value  float64
}

// Events is a FIFO of pending notifications, drained once per frame.
// A nil *Events discards everything.
type Events struct {
	queue []Event
}

// NewEvents creates an empty queue.
func NewEvents() *Events {
	return &Events{queue: make([]Event, 0, 16)}
}

// Emit appends an event.
func (q *Events) Emit(e Event) {
	if q == nil {
		return
	}
	q.queue = append(q.queue, e)
}

// Len returns the number of pending events.
func (q *Events) Len() int {
	if q == nil {
		return 0
	}
	return len(q.queue)
}

// Drain returns all pending events and empties the queue.
func (q *Events) Drain() []Event {
	if q == nil || len(q.queue) == 0 {
		return nil
	}
	out := make([]Event, len(q.queue))
	copy(out, q.queue)
	q.queue = q.queue[:0]
	return out
}
