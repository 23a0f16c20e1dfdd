package accretion

import (
	"fmt"

	"github.com/vovakirdan/gravity-arcade/internal/core"
	"github.com/vovakirdan/gravity-arcade/internal/sim"
)

// Visual characters for rendering
const (
	StarChar = '☼'
	CoreChar = '●'
)

// dustGlyphs grow with particle mass.
var dustGlyphs = []struct {
	below float64
	glyph rune
}{
	{2, '·'},
	{5, '•'},
	{12, 'o'},
	{40, 'O'},
}

const bigGlyph = '@'

var upgradeLabels = [slotCount]string{"Gravity", "Auto", "Density"}

type sprite struct {
	color core.Color
}

// spriteSet owns the sprites, keyed by entity ID.
type spriteSet map[sim.EntityID]*sprite

func (s spriteSet) apply(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventSpawned:
			s[ev.ID] = &sprite{color: dustColor(ev.ID)}
		case sim.EventRemoved:
			delete(s, ev.ID)
		}
	}
}

func dustColor(id sim.EntityID) core.Color {
	palette := []core.Color{core.ColorWhite, core.ColorGray, core.ColorBrightCyan, core.ColorYellow}
	return palette[int(id)%len(palette)]
}

func glyphFor(mass float64) rune {
	for _, d := range dustGlyphs {
		if mass < d.below {
			return d.glyph
		}
	}
	return bigGlyph
}

// viewportFor maps the field between the HUD row and the upgrade panel.
func (g *Game) viewportFor(w, h int) core.Viewport {
	return core.Viewport{
		World:  core.NewBox(0, 0, g.cfg.Field.Width, g.cfg.Field.Height),
		Screen: core.NewRect(0, 1, core.Max(w, 1), core.Max(h-2, 1)),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.view = g.viewportFor(dst.Width(), dst.Height())
	v := g.view

	r := g.cfg.Attractor.Radius
	if rect, ok := v.RectOf(core.NewBox(g.attractor.X-r, g.attractor.Y-r, 2*r, 2*r)); ok {
		dst.FillRect(rect, CoreChar, core.ColorOrange)
	}
	col, row := v.Cell(g.attractor)
	dst.SetColored(col, row, StarChar, core.ColorBrightYellow)

	g.store.Each(func(e *sim.Entity) {
		sp, ok := g.sprites[e.ID]
		if !ok || !g.inField(e) {
			return
		}
		c, rw := v.Cell(e.Pos)
		dst.SetColored(c, rw, glyphFor(e.Mass), sp.color)
	})

	// Draw HUD
	hud := fmt.Sprintf(" %s  Mass: %.0f/%.0f  Planets: %d  Stardust: %.0f ",
		g.title, g.milestone.Progress, g.milestone.Every, g.milestone.Reached, g.stardust)
	dst.DrawText(1, 0, hud)
	if goal := g.cfg.Economy.PlanetsToWin; goal > 0 {
		goalText := fmt.Sprintf(" Goal: %d ", goal)
		dst.DrawText(dst.Width()-len(goalText)-1, 0, goalText)
	}
	if g.flash > 0 {
		dst.DrawTextCentered(1, fmt.Sprintf("* PLANET %d FORMED *", g.milestone.Reached))
	}

	g.renderPanel(dst)

	switch g.machine.Phase() {
	case sim.PhaseWon:
		dst.DrawMessage("SYSTEM COMPLETE!", fmt.Sprintf("Planets: %d  |  Press R to play again", g.milestone.Reached))
	default:
		if g.paused {
			dst.DrawMessage("PAUSED", "Press P to resume")
		}
	}
}

// inField reports whether a particle's center lies inside the field.
func (g *Game) inField(e *sim.Entity) bool {
	return e.Pos.X >= 0 && e.Pos.Y >= 0 && e.Pos.X < g.cfg.Field.Width && e.Pos.Y < g.cfg.Field.Height
}

// renderPanel draws the upgrade shop on the bottom row. Affordable
// upgrades are highlighted.
func (g *Game) renderPanel(dst *core.Screen) {
	y := dst.Height() - 1
	x := 1
	for slot := 0; slot < slotCount; slot++ {
		cost, ok := g.Cost(slot)
		text := fmt.Sprintf("[%d] %s Lv%d (%.0f)", slot+1, upgradeLabels[slot], g.upgrades[slot].Level, cost)
		color := core.ColorGray
		if ok {
			color = core.ColorBrightGreen
		}
		dst.DrawTextColored(x, y, text, color)
		x += len(text) + 2
	}
}
