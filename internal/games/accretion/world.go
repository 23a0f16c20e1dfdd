package accretion

import (
	"github.com/vovakirdan/gravity-arcade/internal/config"
	"github.com/vovakirdan/gravity-arcade/internal/sim"
)

// stepParticles absorbs particles that reached the star, moves the rest and
// drops those that escaped the field. A particle whose path this step
// crossed the absorb disc is absorbed on the same step, whatever its speed.
func (g *Game) stepParticles() {
	radius := g.cfg.Attractor.AbsorbRadius
	for i := 0; i < g.store.Len(); i++ {
		e := g.store.At(i)
		if e.Kind != sim.KindParticle {
			continue
		}

		if sim.Within(e.Pos, g.attractor, radius) {
			g.absorb(e)
			g.store.RemoveAt(i, sim.ReasonAbsorbed)
			i--
			continue
		}

		if g.cfg.Particles.Mode == config.ModeRest {
			sim.Attract(e, g.attractor, g.strength())
		}
		from := e.Pos
		sim.Integrate(e)

		if sim.SegmentWithin(from, e.Pos, g.attractor, radius) {
			g.absorb(e)
			g.store.RemoveAt(i, sim.ReasonAbsorbed)
			i--
			continue
		}
		if e.Pos.Dist(g.attractor) > g.cfg.Attractor.EscapeRadius {
			g.store.RemoveAt(i, sim.ReasonEscaped)
			i--
		}
	}
}

// absorb credits a particle's mass to the counters.
func (g *Game) absorb(e *sim.Entity) {
	g.totalMass += e.Mass
	g.stardust += e.Mass * g.cfg.Economy.StardustPerMass
	g.events.Emit(sim.Event{Kind: sim.EventCounter, Name: "stardust", Value: g.stardust})

	if g.milestone.Credit(e.Mass) == 0 {
		return
	}
	g.flash = flashTicks
	g.events.Emit(sim.Event{Kind: sim.EventMilestone, Name: "planets", Value: float64(g.milestone.Reached)})
	logger.Info("planet formed", "session", g.session, "planets", g.milestone.Reached, "ticks", g.sched.Ticks())
}

// merge folds gone into keep and regrows keep's radius.
func (g *Game) merge(keep, gone *sim.Entity) {
	sim.AbsorbMass(keep, gone)
	keep.Radius = g.radiusFor(keep.Mass)
}
