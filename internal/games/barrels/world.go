package barrels

import (
	"github.com/vovakirdan/gravity-arcade/internal/core"
	"github.com/vovakirdan/gravity-arcade/internal/sim"
)

// stepPlayer applies input, physics, landing and ladder attachment, in that order.
func (g *Game) stepPlayer(in core.InputFrame) {
	p := g.player
	pc := g.cfg.Player

	// Horizontal intent follows the held direction; release stops.
	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case left && !right:
		p.Vel.X = -pc.MoveSpeed
	case right && !left:
		p.Vel.X = pc.MoveSpeed
	default:
		p.Vel.X = 0
	}

	if in.Has(core.ActionJump) && !p.Airborne && !p.OnClimbable {
		p.Vel.Y = pc.JumpVelocity
		p.Airborne = true
	}

	if p.OnClimbable {
		switch {
		case in.Has(core.ActionUp):
			p.Climbing = true
			p.Vel.Y = pc.ClimbSpeed
		case in.Has(core.ActionDown):
			p.Climbing = true
			p.Vel.Y = -pc.ClimbSpeed
		case p.Climbing:
			p.Climbing = false
			p.Vel.Y = 0
		}
	}

	// Physics: gravity is suspended while attached to a ladder.
	if !p.OnClimbable {
		sim.ApplyGravity(p, g.cfg.Physics.Gravity)
	}
	sim.Integrate(p)
	sim.ClampX(p, 0, g.cfg.Field.Width)
	if p.Climbing && g.ladder >= 0 {
		span := g.cfg.Level.Ladders[g.ladder]
		p.Pos.Y = core.ClampF(p.Pos.Y, span.Y, span.Y+span.Height)
	}

	// Landing. A climbing player passes through girders.
	switch {
	case p.Climbing:
		p.Airborne = false
	default:
		if idx, ok := sim.ResolveLanding(p.Box(), p.Vel.Y, g.platforms, g.cfg.Physics.LandingTolerance); ok {
			p.Pos.Y = g.platforms[idx].Top()
			p.Vel.Y = 0
			p.Airborne = false
		} else {
			p.Airborne = !p.OnClimbable
		}
	}

	// Ladders
	idx, ok := sim.FirstOverlap(p.Box(), g.ladders)
	p.OnClimbable = ok
	g.ladder = idx
	switch {
	case !ok && p.Climbing:
		// Stepped off the end of a ladder.
		p.Climbing = false
		p.Vel.Y = 0
	case ok && !p.Climbing:
		p.Vel.Y = 0
	}
}

// spawnBarrel drops a barrel at the configured spawn point. Suppressed
// unless the session is Running.
func (g *Game) spawnBarrel() *sim.Entity {
	if !g.machine.Running() {
		return nil
	}
	bc := g.cfg.Barrels
	speed := g.difficulty.Speed(bc.Speed, g.score, g.sched.Ticks())
	return g.spawnBarrelAt(core.V(bc.SpawnX, bc.SpawnY), speed)
}

// spawnBarrelAt places a barrel rolling at dx. If it starts on a girder it
// rolls on that girder instead of landing on it.
func (g *Game) spawnBarrelAt(pos core.Vec2, dx float64) *sim.Entity {
	bc := g.cfg.Barrels
	b := g.store.Spawn(sim.Entity{
		Kind:    sim.KindProjectile,
		Pos:     pos,
		Vel:     core.V(dx, 0),
		Size:    core.V(bc.Width, bc.Height),
		Support: sim.NoSupport,
	})
	if idx, ok := sim.ResolveLanding(b.Box(), 0, g.platforms, g.cfg.Physics.LandingTolerance); ok {
		b.Support = idx
	}
	return b
}

// stepBarrels moves every barrel and removes the ones that left the field
// in the same step.
func (g *Game) stepBarrels() {
	for i := 0; i < g.store.Len(); i++ {
		b := g.store.At(i)
		if b.Kind != sim.KindProjectile {
			continue
		}
		g.rollBarrel(b)
		if g.offField(b) {
			g.store.RemoveAt(i, sim.ReasonOffField)
			i--
			g.cleared++
			g.score += g.cfg.Scoring.PerBarrel
		}
	}
}

// rollBarrel rolls b along its girder, or lets it fall and land on the
// closest girder below.
func (g *Game) rollBarrel(b *sim.Entity) {
	tol := g.cfg.Physics.LandingTolerance

	if b.Support != sim.NoSupport {
		next := b.Box()
		next.X += b.Vel.X
		surface := g.platforms[b.Support]
		if sim.Supported(next, 0, surface, tol) {
			b.Vel.Y = 0
			sim.Integrate(b)
			b.Pos.Y = surface.Top()
			return
		}
		b.Support = sim.NoSupport
	}

	sim.ApplyGravity(b, g.cfg.Physics.Gravity*g.cfg.Barrels.FallScale)
	sim.Integrate(b)
	if idx, ok := sim.ResolveLanding(b.Box(), b.Vel.Y, g.platforms, tol); ok {
		b.Pos.Y = g.platforms[idx].Top()
		b.Vel.Y = 0
		b.Support = idx
		if g.cfg.Barrels.ReverseOnLand {
			b.Vel.X = -b.Vel.X
		}
	}
}

// offField reports whether b fell below the ground baseline or left the
// field horizontally.
func (g *Game) offField(b *sim.Entity) bool {
	return b.Pos.Y < 0 || b.Pos.X+b.Size.X < 0 || b.Pos.X > g.cfg.Field.Width
}
