package tui

import (
	"time"

	"github.com/vovakirdan/gravity-arcade/internal/core"
)

// Terminals report key presses and auto-repeats but never releases. A held
// direction therefore stays active for a window after each press: long
// enough after the first press to bridge the terminal's initial repeat
// delay, short after a repeat so letting go stops the player quickly.
const (
	FirstHold  = 300 * time.Millisecond
	RepeatHold = 100 * time.Millisecond
)

// opposite releases the contrary direction when a direction is pressed.
var opposite = map[core.Action]core.Action{
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
}

// HeldInput turns key presses into per-tick input frames.
type HeldInput struct {
	first  uint64
	repeat uint64
	tick   uint64
	until  map[core.Action]uint64 // first tick a held action is released
	frame  core.InputFrame        // one-shot actions for the next tick
}

// NewHeldInput creates an input accumulator for the given tick rate.
func NewHeldInput(tickRate int) *HeldInput {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := func(d time.Duration) uint64 {
		n := uint64(d * time.Duration(tickRate) / time.Second)
		if n < 1 {
			n = 1
		}
		return n
	}
	return &HeldInput{
		first:  ticks(FirstHold),
		repeat: ticks(RepeatHold),
		until:  make(map[core.Action]uint64),
		frame:  core.NewInputFrame(),
	}
}

// Press records an action. Directions are held; everything else fires on
// the next tick only.
func (h *HeldInput) Press(a core.Action) {
	other, held := opposite[a]
	if !held {
		h.frame.Set(a)
		return
	}
	delete(h.until, other)

	window := h.first
	until, active := h.until[a]
	if active && until > h.tick {
		window = h.repeat
	}
	if next := h.tick + window; next > until {
		until = next
	}
	h.until[a] = until
}

// Click records a pointer press at a screen cell.
func (h *HeldInput) Click(x, y int) {
	h.frame.Click(x, y)
}

// Next returns the frame for the coming tick and advances the clock.
func (h *HeldInput) Next() core.InputFrame {
	frame := h.frame.Clone()
	for a, until := range h.until {
		if until > h.tick {
			frame.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	h.frame.Clear()
	h.tick++
	return frame
}

// Release drops every held direction and pending action.
func (h *HeldInput) Release() {
	for a := range h.until {
		delete(h.until, a)
	}
	h.frame.Clear()
}
