package barrels

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gravity-arcade/internal/config"
	"github.com/vovakirdan/gravity-arcade/internal/core"
	"github.com/vovakirdan/gravity-arcade/internal/registry"
	"github.com/vovakirdan/gravity-arcade/internal/sim"
)

const eps = 1e-9

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

// newTestGame builds a session from the classic defaults with progression off.
func newTestGame(t *testing.T, mutate func(*config.BarrelsConfig)) *Game {
	t.Helper()
	cfg := config.DefaultBarrelsConfig()
	cfg.Difficulty.Enabled = false
	if mutate != nil {
		mutate(&cfg)
	}
	require.NoError(t, cfg.Validate())

	g := New()
	g.resetWith(testRuntime, cfg)
	return g
}

func hold(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func stepN(g *Game, n int, in core.InputFrame) {
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

func TestPlayerRestsOnGround(t *testing.T) {
	g := newTestGame(t, func(c *config.BarrelsConfig) {
		c.Level.Platforms = []config.RectConfig{{X: 0, Y: 0, Width: 800, Height: 10}}
		c.Level.Ladders = nil
	})
	require.Equal(t, core.V(50, 10), g.player.Pos)

	g.Step(hold())

	assert.Equal(t, 10.0, g.player.Pos.Y)
	assert.Zero(t, g.player.Vel.Y)
	assert.False(t, g.player.Airborne)
	assert.True(t, g.State().Score == 0 && !g.State().GameOver)
}

func TestProjectileFallsAndIsRemoved(t *testing.T) {
	tests := []struct {
		name      string
		perBarrel int
	}{
		{"classic leaves score alone", 0},
		{"gauntlet scores each barrel", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, func(c *config.BarrelsConfig) {
				// Player stands on a short girder; nothing under x=110.
				c.Level.Platforms = []config.RectConfig{{X: 0, Y: 0, Width: 100, Height: 10}}
				c.Level.Ladders = nil
				c.Scoring.PerBarrel = tt.perBarrel
			})
			b := g.spawnBarrelAt(core.V(110, 80), 2)
			require.Equal(t, sim.NoSupport, b.Support)
			id := b.ID

			g.Step(hold())

			gravity := g.cfg.Physics.Gravity
			assert.InDelta(t, 112, b.Pos.X, eps)
			assert.InDelta(t, -gravity*2, b.Vel.Y, eps)
			assert.InDelta(t, 80-gravity*2, b.Pos.Y, eps)
			assert.Contains(t, g.sprites, id)

			for i := 0; i < 60 && g.store.Count(sim.KindProjectile) > 0; i++ {
				g.Step(hold())
			}

			assert.Zero(t, g.store.Count(sim.KindProjectile), "barrel should be removed once below the baseline")
			assert.Nil(t, g.store.Get(id))
			assert.NotContains(t, g.sprites, id, "removal must release the sprite")
			assert.Equal(t, tt.perBarrel, g.State().Score)
			assert.Equal(t, 1, g.cleared)
			assert.True(t, g.machine.Running())
		})
	}
}

func TestBarrelRollsThenReversesOnLanding(t *testing.T) {
	g := newTestGame(t, nil)
	top := len(g.platforms) - 1

	b := g.spawnBarrelAt(core.V(110, 510), 2)
	require.Equal(t, top, b.Support, "spawned on the top girder")

	g.Step(hold())
	assert.InDelta(t, 112, b.Pos.X, eps)
	assert.Equal(t, 510.0, b.Pos.Y, "rolling barrels stay on their girder")

	for i := 0; i < 400 && b.Support != top-1; i++ {
		g.Step(hold())
	}
	require.Equal(t, top-1, b.Support, "barrel should land on the next girder down")
	assert.Equal(t, 410.0, b.Pos.Y)
	assert.Equal(t, -2.0, b.Vel.X, "direction reverses on landing")
}

func TestHazardLoses(t *testing.T) {
	g := newTestGame(t, nil)
	g.spawnBarrelAt(g.player.Pos, 0)

	res := g.Step(hold())

	assert.True(t, res.State.GameOver)
	assert.False(t, res.State.Won)
	assert.Equal(t, sim.PhaseLost, g.Phase())
	assert.False(t, g.sched.Running(), "scheduler stops on a terminal phase")

	ticks := g.sched.Ticks()
	before := g.store.Len()
	stepN(g, 500, hold(core.ActionRight))
	assert.Equal(t, ticks, g.sched.Ticks())
	assert.Equal(t, before, g.store.Len(), "no spawns after the session ended")
	assert.Nil(t, g.spawnBarrel(), "spawn is suppressed unless Running")
}

func TestGoalWins(t *testing.T) {
	g := newTestGame(t, func(c *config.BarrelsConfig) {
		c.Player.SpawnX = 30
		c.Player.SpawnY = 510
	})

	res := g.Step(hold())

	assert.True(t, res.State.GameOver)
	assert.True(t, res.State.Won)
	assert.Equal(t, g.cfg.Scoring.WinBonus, res.State.Score)

	// A barrel reaching a finished session changes nothing.
	g.spawnBarrelAt(g.player.Pos, 0)
	g.Step(hold())
	assert.Equal(t, sim.PhaseWon, g.Phase())
}

func TestResetRestoresSpawnState(t *testing.T) {
	for _, phase := range []sim.Phase{sim.PhaseLost, sim.PhaseWon} {
		t.Run(phase.String(), func(t *testing.T) {
			g := newTestGame(t, func(c *config.BarrelsConfig) {
				c.Scoring.PerBarrel = 5
			})
			stepN(g, 130, hold(core.ActionRight)) // walk and let one barrel spawn
			g.Step(hold(core.ActionJump))
			require.NotZero(t, g.store.Count(sim.KindProjectile))

			if phase == sim.PhaseLost {
				g.spawnBarrelAt(g.player.Pos, 0)
			} else {
				g.player.Pos = core.V(30, 510)
				g.player.Vel = core.Vec2{}
			}
			g.Step(hold())
			require.Equal(t, phase, g.Phase())

			g.Step(hold(core.ActionRestart))

			p := g.player
			assert.Equal(t, core.V(50, 10), p.Pos)
			assert.Equal(t, core.Vec2{}, p.Vel)
			assert.False(t, p.Airborne)
			assert.False(t, p.OnClimbable)
			assert.False(t, p.Climbing)
			assert.Zero(t, g.store.Count(sim.KindProjectile))
			assert.Equal(t, 1, g.store.Len(), "only the player remains")
			assert.Len(t, g.sprites, 1)
			assert.Zero(t, g.State().Score)
			assert.True(t, g.machine.Running())
			assert.True(t, g.sched.Running(), "scheduler restarted")
			assert.Zero(t, g.sched.Ticks())

			// The loop really runs again: the next spawn happens on schedule.
			stepN(g, 120, hold())
			assert.Equal(t, 1, g.store.Count(sim.KindProjectile))
		})
	}
}

func TestRestartIgnoredWhileRunning(t *testing.T) {
	g := newTestGame(t, nil)
	stepN(g, 10, hold(core.ActionRight))
	x := g.player.Pos.X

	g.Step(hold(core.ActionRestart))

	assert.Greater(t, g.player.Pos.X, 50.0)
	assert.GreaterOrEqual(t, g.player.Pos.X, x)
	assert.Equal(t, uint64(11), g.sched.Ticks())
}

func TestSpawnTimer(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		ticks    int
	}{
		{"classic 2000ms", 2000, 120},
		{"gauntlet 1200ms", 1200, 72},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, func(c *config.BarrelsConfig) {
				c.Barrels.IntervalMS = tt.interval
			})
			stepN(g, tt.ticks-1, hold())
			assert.Zero(t, g.store.Count(sim.KindProjectile))
			g.Step(hold())
			assert.Equal(t, 1, g.store.Count(sim.KindProjectile))
		})
	}
}

func TestPauseSuppressesSteps(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(hold(core.ActionPause))
	require.True(t, g.State().Paused)

	stepN(g, 300, hold(core.ActionRight))
	assert.Zero(t, g.store.Count(sim.KindProjectile))
	assert.Equal(t, 50.0, g.player.Pos.X)

	g.Step(hold(core.ActionPause))
	assert.False(t, g.State().Paused)
	assert.Equal(t, uint64(1), g.sched.Ticks())
}

func TestDifficultyShortensSpawnInterval(t *testing.T) {
	g := newTestGame(t, func(c *config.BarrelsConfig) {
		c.Difficulty.Enabled = true
		c.Difficulty.Progression = config.ProgressionConfig{Type: "time", MaxAt: 100}
	})
	base := g.sched.Interval(timerSpawn)
	stepN(g, 100, hold())
	assert.Less(t, g.sched.Interval(timerSpawn), base)
	assert.GreaterOrEqual(t, g.sched.Interval(timerSpawn), 800*time.Millisecond)
}

func TestClimbLadderToNextGirder(t *testing.T) {
	g := newTestGame(t, func(c *config.BarrelsConfig) {
		c.Player.SpawnX = 595
	})

	g.Step(hold())
	require.True(t, g.player.OnClimbable, "standing at the foot of a ladder attaches")

	stepN(g, 40, hold(core.ActionUp))
	assert.Equal(t, 110.0, g.player.Pos.Y, "climb stops at the upper girder")
	assert.True(t, g.player.Climbing)

	g.Step(hold())
	assert.False(t, g.player.Climbing)
	assert.Equal(t, 110.0, g.player.Pos.Y)

	stepN(g, 12, hold(core.ActionRight))
	assert.False(t, g.player.OnClimbable)
	assert.False(t, g.player.Airborne)
	assert.Equal(t, 110.0, g.player.Pos.Y, "walked off the ladder onto the girder")
}

func TestClimbDownPassesThroughGirder(t *testing.T) {
	g := newTestGame(t, func(c *config.BarrelsConfig) {
		c.Player.SpawnX = 595
		c.Player.SpawnY = 110
	})
	g.Step(hold())
	require.Equal(t, 110.0, g.player.Pos.Y)
	require.True(t, g.player.OnClimbable)

	stepN(g, 40, hold(core.ActionDown))
	assert.Equal(t, 10.0, g.player.Pos.Y)
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(hold())

	g.Step(hold(core.ActionJump))
	require.True(t, g.player.Airborne)
	vy := g.player.Vel.Y
	assert.InDelta(t, g.cfg.Player.JumpVelocity-g.cfg.Physics.Gravity, vy, eps)

	g.Step(hold(core.ActionJump))
	assert.InDelta(t, vy-g.cfg.Physics.Gravity, g.player.Vel.Y, eps, "no double jump")

	stepN(g, 60, hold())
	assert.False(t, g.player.Airborne)
	assert.Equal(t, 10.0, g.player.Pos.Y)
}

func TestPlayerClampedToField(t *testing.T) {
	g := newTestGame(t, nil)
	stepN(g, 40, hold(core.ActionLeft))
	assert.Equal(t, 0.0, g.player.Pos.X)

	g.player.Pos.X = 790
	g.Step(hold(core.ActionRight))
	assert.Equal(t, g.cfg.Field.Width-g.cfg.Player.Width, g.player.Pos.X)
}

func TestDeterminism(t *testing.T) {
	script := make([]core.InputFrame, 600)
	for i := range script {
		switch {
		case i%90 < 40:
			script[i] = hold(core.ActionRight)
		case i%90 == 50:
			script[i] = hold(core.ActionJump)
		default:
			script[i] = hold(core.ActionLeft)
		}
	}

	run := func() (uint64, core.GameState) {
		g := NewGauntlet()
		cfg := config.DefaultBarrelsGauntletConfig()
		g.resetWith(testRuntime, cfg)
		var st core.GameState
		for _, in := range script {
			st = g.Step(in).State
		}
		return g.Checksum(), st
	}

	sum1, st1 := run()
	sum2, st2 := run()
	assert.Equal(t, sum1, sum2)
	assert.Equal(t, st1, st2)
}

func TestRenderDrawsSceneAndOverlay(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(hold())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.True(t, strings.ContainsRune(screen.String(), PlayerBody))
	assert.True(t, strings.ContainsRune(screen.Row(23), GirderChar), "ground is the bottom row")
	assert.True(t, strings.ContainsRune(screen.String(), GoalChar))

	g.spawnBarrelAt(g.player.Pos, 0)
	g.Step(hold())
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestRegisteredVariants(t *testing.T) {
	for id, title := range map[string]string{
		config.GameBarrels:         "Barrels",
		config.GameBarrelsGauntlet: "Barrels Gauntlet",
	} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
		assert.Equal(t, title, g.Title())
		_, ok := g.(registry.Checksummer)
		assert.True(t, ok)
	}
}
