package barrels

import (
	"fmt"

	"github.com/vovakirdan/gravity-arcade/internal/core"
	"github.com/vovakirdan/gravity-arcade/internal/sim"
)

// Visual characters for rendering
const (
	GirderChar = '▀'
	LadderChar = '╫'
	GoalChar   = '♥'
	PlayerHead = 'o'
	PlayerBody = '█'
)

// barrelFrames cycles as a barrel rolls.
var barrelFrames = []rune{'◐', '◓', '◑', '◒'}

// sprite is the presentation resource for one entity.
type sprite struct {
	color core.Color
	frame int
}

// spriteSet owns the sprites, keyed by entity ID. It is kept in sync with
// the store through spawn and removal events.
type spriteSet map[sim.EntityID]*sprite

// apply creates and releases sprites for the drained events.
func (s spriteSet) apply(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventSpawned:
			sp := &sprite{color: core.ColorBrightBlue}
			if ev.Entity == sim.KindProjectile {
				// Alternate barrel colours by spawn order.
				sp.color = core.ColorOrange
				if ev.ID%2 == 0 {
					sp.color = core.ColorYellow
				}
			}
			s[ev.ID] = sp
		case sim.EventRemoved:
			delete(s, ev.ID)
		}
	}
}

// viewport maps the world below the HUD row.
func (g *Game) viewport(dst *core.Screen) core.Viewport {
	return core.Viewport{
		World:  core.NewBox(0, 0, g.cfg.Field.Width, g.cfg.Field.Height),
		Screen: core.NewRect(0, 1, dst.Width(), dst.Height()-1),
		YUp:    true,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := g.viewport(dst)

	// Ladders first so girders draw over their ends.
	for _, l := range g.cfg.Level.Ladders {
		if r, ok := v.RectOf(l.Box()); ok {
			dst.FillRect(r, LadderChar, core.ColorCyan)
		}
	}
	for _, p := range g.platforms {
		if r, ok := v.RectOf(p); ok {
			dst.FillRect(r, GirderChar, core.ColorRed)
		}
	}
	if r, ok := v.RectOf(g.goal); ok {
		dst.FillRect(r, GoalChar, core.ColorBrightMagenta)
	}

	g.store.Each(func(e *sim.Entity) {
		sp, ok := g.sprites[e.ID]
		if !ok {
			return
		}
		r, visible := v.RectOf(e.Box())
		if !visible {
			return
		}
		switch e.Kind {
		case sim.KindPlayer:
			dst.FillRect(r, PlayerBody, sp.color)
			dst.SetColored(r.X+r.W/2, r.Y, PlayerHead, core.ColorBrightWhite)
		case sim.KindProjectile:
			if e.Vel.X != 0 && !g.paused && g.machine.Running() {
				sp.frame++
			}
			glyph := barrelFrames[(sp.frame/4)%len(barrelFrames)]
			dst.FillRect(r, glyph, sp.color)
		}
	})

	// Draw HUD
	hud := fmt.Sprintf(" %s  Score: %d  Barrels: %d ", g.title, g.score, g.cleared)
	dst.DrawText(1, 0, hud)
	if g.difficulty.IsEnabled() {
		speed := g.difficulty.Speed(g.cfg.Barrels.Speed, g.score, g.sched.Ticks())
		levelText := fmt.Sprintf(" Spd: %.1f ", speed)
		dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)
	}

	switch g.machine.Phase() {
	case sim.PhaseLost:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	case sim.PhaseWon:
		dst.DrawMessage("YOU WIN!", fmt.Sprintf("Score: %d  |  Press R to play again", g.score))
	default:
		if g.paused {
			dst.DrawMessage("PAUSED", "Press P to resume")
		}
	}
}
