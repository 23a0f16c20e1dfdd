// Package barrels implements the climb-and-avoid-barrels platformers.
// The player climbs a tower of girders and ladders to reach the goal while
// barrels spawned at the top roll down, zig-zagging from girder to girder.
package barrels

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gravity-arcade/internal/config"
	"github.com/vovakirdan/gravity-arcade/internal/core"
	"github.com/vovakirdan/gravity-arcade/internal/logging"
	"github.com/vovakirdan/gravity-arcade/internal/registry"
	"github.com/vovakirdan/gravity-arcade/internal/sim"
)

// timerSpawn is the scheduler timer that drops a new barrel.
const timerSpawn = "spawn"

// Game implements both barrel variants; they differ only in config.
type Game struct {
	id    string
	title string

	runtime    core.RuntimeConfig
	cfg        config.BarrelsConfig
	difficulty *config.DifficultyManager

	// Simulation context. The store is the only mutable entity state.
	events  *sim.Events
	store   *sim.Store
	machine *sim.Machine
	sched   *sim.Scheduler

	// Static geometry, built once per Reset.
	platforms []core.Box
	ladders   []core.Box // grab boxes: ladder span plus reach
	goal      core.Box

	player *sim.Entity
	ladder int // ladder the player is attached to, or -1

	score   int
	cleared int // barrels that left the field
	paused  bool
	session string

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

// SetLogger sets the logger used by every barrels session.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	logger = l
}

// New creates a classic barrels game.
func New() *Game {
	return newGame(config.GameBarrels, "Barrels")
}

// NewGauntlet creates the scoring variant with faster spawns.
func NewGauntlet() *Game {
	return newGame(config.GameBarrelsGauntlet, "Barrels Gauntlet")
}

func newGame(id, title string) *Game {
	return &Game{id: id, title: title, ladder: -1}
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
	cfg, err := config.LoadBarrels(g.id, configPath)
	if err != nil {
		logger.Warn("using built-in config", "game", g.id, "error", err)
		cfg = defaultConfig(g.id)
	}
	config.ApplyBarrelsPreset(&cfg, difficultyPreset)
	g.resetWith(runtime, cfg)
}

func defaultConfig(id string) config.BarrelsConfig {
	if id == config.GameBarrelsGauntlet {
		return config.DefaultBarrelsGauntletConfig()
	}
	return config.DefaultBarrelsConfig()
}

// resetWith builds a session from an explicit config.
func (g *Game) resetWith(runtime core.RuntimeConfig, cfg config.BarrelsConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.platforms = make([]core.Box, len(cfg.Level.Platforms))
	for i, p := range cfg.Level.Platforms {
		g.platforms[i] = p.Box()
	}
	g.ladders = make([]core.Box, len(cfg.Level.Ladders))
	for i, l := range cfg.Level.Ladders {
		grab := l.Box()
		grab.H += cfg.Level.LadderReach
		g.ladders[i] = grab
	}
	g.goal = cfg.Level.Goal.Box()

	g.events = sim.NewEvents()
	g.store = sim.NewStore(g.events)
	g.machine = sim.NewMachine(g.events)
	g.sched = sim.NewScheduler(runtime.TickRate)
	g.sched.Every(timerSpawn, g.baseInterval())
	g.sprites = make(spriteSet)

	g.player = g.store.Spawn(sim.Entity{
		Kind: sim.KindPlayer,
		Size: core.V(cfg.Player.Width, cfg.Player.Height),
	})
	g.restart()
}

// restart returns a session to its starting state: barrels cleared, player
// at spawn, score zeroed, machine Running and the scheduler re-armed.
// Geometry is kept.
func (g *Game) restart() {
	g.store.ClearExcept(sim.KindPlayer, sim.ReasonReset)
	g.resetPlayer()
	g.score = 0
	g.cleared = 0
	g.paused = false
	g.machine.Reset()

	g.sched.Every(timerSpawn, g.baseInterval())
	g.sched.Reset()
	g.sched.Start()
	g.sprites.apply(g.events.Drain())

	g.session = uuid.NewString()
	logger.Info("session started", "game", g.id, "session", g.session)
}

func (g *Game) resetPlayer() {
	p := g.player
	p.Pos = core.V(g.cfg.Player.SpawnX, g.cfg.Player.SpawnY)
	p.Vel = core.Vec2{}
	p.Airborne = false
	p.OnClimbable = false
	p.Climbing = false
	g.ladder = -1
}

func (g *Game) baseInterval() time.Duration {
	return time.Duration(g.cfg.Barrels.IntervalMS) * time.Millisecond
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.machine.Phase().Terminal() {
		// Reset is only honored once the session has ended.
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

	g.stepPlayer(in)
	g.updateDifficulty()
	for _, name := range fired {
		if name == timerSpawn {
			g.spawnBarrel()
		}
	}
	g.stepBarrels()
	g.checkOutcome()

	g.sprites.apply(g.events.Drain())
	return core.StepResult{State: g.State()}
}

// updateDifficulty shortens the spawn interval as the session progresses.
func (g *Game) updateDifficulty() {
	if !g.difficulty.IsEnabled() {
		return
	}
	next := g.difficulty.Interval(g.baseInterval(), g.score, g.sched.Ticks())
	if next == g.sched.Interval(timerSpawn) {
		return
	}
	g.sched.SetInterval(timerSpawn, next)
	logger.Debug("spawn interval", "session", g.session, "interval", next, "score", g.score)
}

// checkOutcome applies the hazard and goal rules.
func (g *Game) checkOutcome() {
	body := g.player.Box()
	for i := 0; i < g.store.Len(); i++ {
		b := g.store.At(i)
		if b.Kind == sim.KindProjectile && body.Overlaps(b.Box()) {
			g.end(g.machine.Lose())
			return
		}
	}
	if body.Overlaps(g.goal) && g.machine.Win() {
		g.score += g.cfg.Scoring.WinBonus
		g.end(true)
	}
}

func (g *Game) end(changed bool) {
	if !changed {
		return
	}
	g.sched.Stop()
	logger.Info("session ended",
		"game", g.id,
		"session", g.session,
		"phase", g.machine.Phase(),
		"score", g.score,
		"ticks", g.sched.Ticks(),
	)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.machine.Phase().Terminal(),
		Won:      g.machine.Phase() == sim.PhaseWon,
		Paused:   g.paused,
	}
}

// Phase returns the session phase.
func (g *Game) Phase() sim.Phase {
	return g.machine.Phase()
}

// Checksum hashes the entity store for determinism checks.
func (g *Game) Checksum() uint64 {
	return g.store.Checksum()
}

// Register both variants with the registry
func init() {
	registry.Register(config.GameBarrels, func() registry.Game {
		return New()
	})
	registry.Register(config.GameBarrelsGauntlet, func() registry.Game {
		return NewGauntlet()
	})
}
