package headless

import (
	"math/rand"

	"github.com/vovakirdan/gravity-arcade/internal/core"
)

var directions = []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown}

// Policy is a seeded scripted player. It holds a random direction for a
// random stretch of ticks and sprinkles in jumps, clicks and purchases, so
// one policy drives both game families.
type Policy struct {
	rng    *rand.Rand
	width  int
	height int

	held    core.Action
	holdFor int
}

// NewPolicy creates a policy clicking inside a width x height screen.
func NewPolicy(seed int64, width, height int) *Policy {
	return &Policy{
		rng:    rand.New(rand.NewSource(seed)),
		width:  core.Max(width, 1),
		height: core.Max(height, 1),
	}
}

// Next returns the input for the coming tick.
func (p *Policy) Next() core.InputFrame {
	in := core.NewInputFrame()

	if p.holdFor == 0 {
		p.held = core.ActionNone
		if p.rng.Intn(4) > 0 {
			p.held = directions[p.rng.Intn(len(directions))]
		}
		p.holdFor = 10 + p.rng.Intn(50)
	}
	p.holdFor--
	if p.held != core.ActionNone {
		in.Set(p.held)
	}

	switch roll := p.rng.Intn(100); {
	case roll < 3:
		in.Set(core.ActionJump)
	case roll < 15:
		in.Click(p.rng.Intn(p.width), p.rng.Intn(p.height))
	case roll == 15:
		in.Set(core.ActionSlot1 + core.Action(p.rng.Intn(3)))
	}
	return in
}
