// Package sim is the fixed-step simulation core shared by every game:
// an ordered entity store, kinematics, collision queries, lifecycle helpers,
// a phase machine and a logical-clock scheduler. It never touches the
// terminal; the presentation layer learns about changes through Events.
package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/gravity-arcade/internal/core"
)

// EntityID is an opaque handle. Renderers key their resources by it.
type EntityID uint64

// Kind selects which of the variant fields of an Entity are meaningful.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindProjectile
	KindParticle
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindProjectile:
		return "projectile"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// NoSupport marks a projectile that is not resting on any surface.
const NoSupport = -1

// Entity is a simulated object. Fields outside the common block are only
// read for the matching Kind.
type Entity struct {
	ID   EntityID
	Kind Kind

	Pos    core.Vec2
	Vel    core.Vec2
	Size   core.Vec2 // box extent (player, projectile)
	Radius float64   // circle extent (particle)

	// Player
	Airborne    bool
	OnClimbable bool
	Climbing    bool

	// Projectile: index of the surface it rolls on, or NoSupport.
	Support int

	// Particle
	Mass float64
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.BoxAt(e.Pos, e.Size)
}

// Store is the ordered collection of live entities. It is the only mutable
// state shared between the step function and input handlers; appends are
// always safe between steps, removals go through RemoveAt.
type Store struct {
	entities []*Entity
	nextID   EntityID
	events   *Events
}

// NewStore creates an empty store that reports spawns and removals to events.
// events may be nil.
func NewStore(events *Events) *Store {
	return &Store{
		entities: make([]*Entity, 0, 32),
		events:   events,
	}
}

// Spawn appends a copy of e with a fresh ID and returns the stored entity.
// Non-finite positions or velocities are zeroed.
func (s *Store) Spawn(e Entity) *Entity {
	s.nextID++
	e.ID = s.nextID
	if !e.Pos.Finite() {
		e.Pos = core.Vec2{}
	}
	if !e.Vel.Finite() {
		e.Vel = core.Vec2{}
	}

	stored := &e
	s.entities = append(s.entities, stored)
	s.events.Emit(Event{Kind: EventSpawned, ID: stored.ID, Entity: stored.Kind})
	return stored
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// At returns the entity at index i, or nil when i is out of range.
func (s *Store) At(i int) *Entity {
	if i < 0 || i >= len(s.entities) {
		return nil
	}
	return s.entities[i]
}

// Get returns the entity with the given ID, or nil.
func (s *Store) Get(id EntityID) *Entity {
	for _, e := range s.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Count returns the number of entities of the given kind.
func (s *Store) Count(kind Kind) int {
	n := 0
	for _, e := range s.entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Each calls fn for every entity in order. fn must not remove entities.
func (s *Store) Each(fn func(e *Entity)) {
	for _, e := range s.entities {
		fn(e)
	}
}

// RemoveAt removes the entity at index i, preserving the order of the rest.
// Callers iterating by index must not advance past i after a removal.
// reason is forwarded to the removal event. Out-of-range indices are ignored.
func (s *Store) RemoveAt(i int, reason string) bool {
	if i < 0 || i >= len(s.entities) {
		return false
	}
	e := s.entities[i]
	copy(s.entities[i:], s.entities[i+1:])
	s.entities[len(s.entities)-1] = nil
	s.entities = s.entities[:len(s.entities)-1]
	s.events.Emit(Event{Kind: EventRemoved, ID: e.ID, Entity: e.Kind, Name: reason})
	return true
}

// ClearExcept removes every entity whose kind is not keep.
func (s *Store) ClearExcept(keep Kind, reason string) int {
	removed := 0
	for i := 0; i < len(s.entities); i++ {
		if s.entities[i].Kind == keep {
			continue
		}
		s.RemoveAt(i, reason)
		i--
		removed++
	}
	return removed
}

// Clear removes every entity.
func (s *Store) Clear(reason string) {
	for len(s.entities) > 0 {
		s.RemoveAt(len(s.entities)-1, reason)
	}
}

// Checksum hashes ids, kinds, positions, velocities and masses in store order.
// Two sessions fed the same seed and inputs produce the same checksum.
func (s *Store) Checksum() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, e := range s.entities {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.ID))
		buf = append(buf, byte(e.Kind))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Pos.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Pos.Y))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Vel.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Vel.Y))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Mass))
		//nolint:errcheck // xxhash.Digest.Write never fails
		d.Write(buf)
	}
	return d.Sum64()
}
