// Package accretion implements the particle accretion clickers. Clicks drop
// dust that falls into a central star; absorbed mass becomes stardust to
// spend on upgrades and, every hundred units, forms a planet.
package accretion

import (
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gravity-arcade/internal/config"
	"github.com/vovakirdan/gravity-arcade/internal/core"
	"github.com/vovakirdan/gravity-arcade/internal/logging"
	"github.com/vovakirdan/gravity-arcade/internal/registry"
	"github.com/vovakirdan/gravity-arcade/internal/sim"
)

// timerAuto is the scheduler timer of the auto-clicker.
const timerAuto = "auto"

// Upgrade slots, in key order.
const (
	SlotGravity = iota
	SlotAuto
	SlotDensity
	slotCount
)

// flashTicks is how long the planet banner stays up.
const flashTicks = 90

// Game implements both accretion variants; they differ only in config.
type Game struct {
	id    string
	title string

	runtime core.RuntimeConfig
	cfg     config.AccretionConfig
	rng     *rand.Rand

	// Simulation context
	events  *sim.Events
	store   *sim.Store
	machine *sim.Machine
	sched   *sim.Scheduler

	attractor core.Vec2
	upgrades  [slotCount]sim.Upgrade

	totalMass float64       // every unit ever absorbed; the score
	stardust  float64       // currency
	milestone sim.Milestone // mass toward the next planet
	paused    bool
	flash     int
	session   string

	view    core.Viewport // last rendered mapping, used for pointer input
	sprites spriteSet
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = logging.Discard()
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by every accretion session.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	logger = l
}

// New creates the rest-spawn clicker.
func New() *Game {
	return &Game{id: config.GameAccretion, title: "Accretion"}
}

// NewComet creates the comet variant.
func NewComet() *Game {
	return &Game{id: config.GameAccretionComet, title: "Accretion: Comets"}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the config and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadAccretion(g.id, configPath)
	if err != nil {
		logger.Warn("using built-in config", "game", g.id, "error", err)
		cfg = defaultConfig(g.id)
	}
	config.ApplyAccretionPreset(&cfg, difficultyPreset)
	g.resetWith(runtime, cfg)
}

func defaultConfig(id string) config.AccretionConfig {
	if id == config.GameAccretionComet {
		return config.DefaultAccretionCometConfig()
	}
	return config.DefaultAccretionConfig()
}

// resetWith builds a session from an explicit config.
func (g *Game) resetWith(runtime core.RuntimeConfig, cfg config.AccretionConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.attractor = core.V(cfg.Field.Width/2, cfg.Field.Height/2)
	g.view = g.viewportFor(runtime.ScreenW, runtime.ScreenH)

	for i, u := range cfg.Upgrades.Slots() {
		g.upgrades[i] = sim.Upgrade{Name: u.Name, BaseCost: u.BaseCost, Growth: u.Growth}
	}

	g.events = sim.NewEvents()
	g.store = sim.NewStore(g.events)
	g.machine = sim.NewMachine(g.events)
	g.sched = sim.NewScheduler(runtime.TickRate)
	g.sprites = make(spriteSet)
	g.restart()
}

// restart clears every particle and zeroes the session counters and
// upgrade levels, then resumes the scheduler.
func (g *Game) restart() {
	g.store.Clear(sim.ReasonReset)
	for i := range g.upgrades {
		g.upgrades[i].Level = 0
	}
	g.totalMass = 0
	g.stardust = 0
	g.milestone = sim.Milestone{Every: g.cfg.Economy.PlanetMass}
	g.paused = false
	g.flash = 0
	g.rng = rand.New(rand.NewSource(g.runtime.Seed))
	g.machine.Reset()

	g.sched.Every(timerAuto, time.Duration(g.cfg.AutoClick.IntervalMS)*time.Millisecond)
	g.sched.Reset()
	g.sched.Start()
	g.sprites.apply(g.events.Drain())

	g.session = uuid.NewString()
	logger.Info("session started", "game", g.id, "session", g.session)
}

// GravityLevel is 1 plus the purchased gravity upgrades.
func (g *Game) GravityLevel() int {
	return 1 + g.upgrades[SlotGravity].Level
}

// strength is the attraction constant at the current gravity level.
func (g *Game) strength() float64 {
	return g.cfg.Attractor.Strength * float64(g.GravityLevel())
}

// cometSpeed grows by a quarter of the base speed per gravity level above 1.
func (g *Game) cometSpeed() float64 {
	return g.cfg.Particles.CometSpeed * (1 + 0.25*float64(g.GravityLevel()-1))
}

// particleMass is the mass of a newly spawned particle.
func (g *Game) particleMass() float64 {
	return g.cfg.Particles.BaseMass + float64(g.upgrades[SlotDensity].Level)
}

// radiusFor grows with the square root of mass, so area tracks mass.
func (g *Game) radiusFor(mass float64) float64 {
	return g.cfg.Particles.BaseRadius * math.Sqrt(mass)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.machine.Phase().Terminal() {
		if in.Has(core.ActionRestart) {
			g.restart()
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.sched.Stop()
		} else {
			g.sched.Start()
		}
	}

	fired, ok := g.sched.Step()
	if !ok {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionClick) {
		g.Click(in.Pointer.X, in.Pointer.Y)
	}
	for slot, action := range []core.Action{core.ActionSlot1, core.ActionSlot2, core.ActionSlot3} {
		if in.Has(action) {
			g.Purchase(slot)
		}
	}

	for _, name := range fired {
		if name == timerAuto {
			g.autoClick()
		}
	}

	g.stepParticles()
	sim.MergeScan(g.store, sim.KindParticle, g.cfg.Particles.MergeThreshold, g.merge)
	g.checkWin()

	if g.flash > 0 {
		g.flash--
	}
	g.sprites.apply(g.events.Drain())
	return core.StepResult{State: g.State()}
}

// Click spawns a particle under the screen cell (col, row). Clicks outside
// the field are ignored.
func (g *Game) Click(col, row int) *sim.Entity {
	if !g.view.Contains(col, row) {
		return nil
	}
	return g.SpawnAt(g.view.ToWorld(col, row))
}

// SpawnAt creates a particle at world point p. Suppressed unless Running
// or when the field is full.
func (g *Game) SpawnAt(p core.Vec2) *sim.Entity {
	if !g.machine.Running() {
		return nil
	}
	if limit := g.cfg.Particles.MaxParticles; limit > 0 && g.store.Count(sim.KindParticle) >= limit {
		return nil
	}

	mass := g.particleMass()
	e := sim.Entity{
		Kind:   sim.KindParticle,
		Pos:    p,
		Mass:   mass,
		Radius: g.radiusFor(mass),
	}
	if g.cfg.Particles.Mode == config.ModeComet {
		// Heading is locked at spawn; comets never re-aim.
		e.Vel = sim.Heading(p, g.attractor, g.cometSpeed())
	}
	return g.store.Spawn(e)
}

// autoClick drops one particle per auto-clicker level at random points.
func (g *Game) autoClick() {
	for i := 0; i < g.upgrades[SlotAuto].Level; i++ {
		p := core.V(g.rng.Float64()*g.cfg.Field.Width, g.rng.Float64()*g.cfg.Field.Height)
		g.SpawnAt(p)
	}
}

// Purchase buys one level of the upgrade in slot if stardust covers it.
func (g *Game) Purchase(slot int) bool {
	if slot < 0 || slot >= slotCount || !g.machine.Running() {
		return false
	}
	u := &g.upgrades[slot]
	cost := u.Cost()
	if !u.Purchase(&g.stardust) {
		return false
	}
	g.events.Emit(sim.Event{Kind: sim.EventCounter, Name: u.Name, Value: float64(u.Level)})
	logger.Debug("upgrade purchased", "session", g.session, "upgrade", u.Name, "level", u.Level, "cost", cost)
	return true
}

// Cost returns the price of the next level in slot and whether it is
// affordable right now.
func (g *Game) Cost(slot int) (float64, bool) {
	u := &g.upgrades[slot]
	return u.Cost(), u.Affordable(g.stardust)
}

// checkWin ends the session once enough planets formed.
func (g *Game) checkWin() {
	goal := g.cfg.Economy.PlanetsToWin
	if goal <= 0 || g.milestone.Reached < goal {
		return
	}
	if g.machine.Win() {
		g.sched.Stop()
		logger.Info("session ended",
			"game", g.id,
			"session", g.session,
			"planets", g.milestone.Reached,
			"ticks", g.sched.Ticks(),
		)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.totalMass),
		GameOver: g.machine.Phase().Terminal(),
		Won:      g.machine.Phase() == sim.PhaseWon,
		Paused:   g.paused,
	}
}

// Phase returns the session phase.
func (g *Game) Phase() sim.Phase {
	return g.machine.Phase()
}

// Stardust returns the spendable currency.
func (g *Game) Stardust() float64 {
	return g.stardust
}

// Planets returns the number of planets formed this session.
func (g *Game) Planets() int {
	return g.milestone.Reached
}

// Checksum hashes the entity store for determinism checks.
func (g *Game) Checksum() uint64 {
	return g.store.Checksum()
}

// Register both variants with the registry
func init() {
	registry.Register(config.GameAccretion, func() registry.Game {
		return New()
	})
	registry.Register(config.GameAccretionComet, func() registry.Game {
		return NewComet()
	})
}
