// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gravity-arcade/internal/core"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// FieldConfig is the world size in world units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RectConfig describes a static box in world units.
type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Box converts the rect to a collision box.
func (r RectConfig) Box() core.Box {
	return core.NewBox(r.X, r.Y, r.Width, r.Height)
}

// BarrelsConfig contains all configuration for the barrel platformers.
type BarrelsConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Physics    BarrelsPhysics   `yaml:"physics"`
	Player     BarrelsPlayer    `yaml:"player"`
	Barrels    BarrelsSpawn     `yaml:"barrels"`
	Level      BarrelsLevel     `yaml:"level"`
	Scoring    BarrelsScoring   `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BarrelsPhysics defines the shared physics parameters.
type BarrelsPhysics struct {
	Gravity          float64 `yaml:"gravity"`
	LandingTolerance float64 `yaml:"landing_tolerance"` // band above a platform top that still counts as landed
}

// BarrelsPlayer defines the player's spawn state and movement.
type BarrelsPlayer struct {
	SpawnX       float64 `yaml:"spawn_x"`
	SpawnY       float64 `yaml:"spawn_y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	ClimbSpeed   float64 `yaml:"climb_speed"`
}

// BarrelsSpawn defines barrel spawning and motion.
type BarrelsSpawn struct {
	SpawnX        float64 `yaml:"spawn_x"`
	SpawnY        float64 `yaml:"spawn_y"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	FallScale     float64 `yaml:"fall_scale"`  // gravity multiplier while falling
	IntervalMS    int     `yaml:"interval_ms"` // spawn period in logical milliseconds
	ReverseOnLand bool    `yaml:"reverse_on_land"`
}

// BarrelsLevel is the static geometry of the single level.
type BarrelsLevel struct {
	Platforms   []RectConfig `yaml:"platforms"`
	Ladders     []RectConfig `yaml:"ladders"`
	LadderReach float64      `yaml:"ladder_reach"` // grab height above a ladder's top
	Goal        RectConfig   `yaml:"goal"`
}

// BarrelsScoring defines score side effects.
type BarrelsScoring struct {
	PerBarrel int `yaml:"per_barrel"` // awarded when a barrel leaves the field
	WinBonus  int `yaml:"win_bonus"`
}

// Validate checks that the config describes a playable level.
func (c *BarrelsConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have positive size", ErrInvalid)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalid)
	case c.Physics.LandingTolerance < 0:
		return fmt.Errorf("%w: landing_tolerance must not be negative", ErrInvalid)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player must have positive size", ErrInvalid)
	case c.Player.Width > c.Field.Width:
		return fmt.Errorf("%w: player wider than field", ErrInvalid)
	case c.Barrels.Width <= 0 || c.Barrels.Height <= 0:
		return fmt.Errorf("%w: barrels must have positive size", ErrInvalid)
	case c.Barrels.IntervalMS <= 0:
		return fmt.Errorf("%w: barrels.interval_ms must be positive", ErrInvalid)
	case len(c.Level.Platforms) == 0:
		return fmt.Errorf("%w: level needs at least one platform", ErrInvalid)
	case c.Level.Goal.Width <= 0 || c.Level.Goal.Height <= 0:
		return fmt.Errorf("%w: goal must have positive size", ErrInvalid)
	}
	for i, p := range c.Level.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: platform %d must have positive size", ErrInvalid, i)
		}
	}
	for i, l := range c.Level.Ladders {
		if l.Width <= 0 || l.Height <= 0 {
			return fmt.Errorf("%w: ladder %d must have positive size", ErrInvalid, i)
		}
	}
	return nil
}

// AccretionConfig contains all configuration for the accretion clickers.
type AccretionConfig struct {
	Field     FieldConfig     `yaml:"field"`
	Attractor AttractorConfig `yaml:"attractor"`
	Particles ParticleConfig  `yaml:"particles"`
	Economy   EconomyConfig   `yaml:"economy"`
	AutoClick AutoClickConfig `yaml:"auto_click"`
	Upgrades  UpgradesConfig  `yaml:"upgrades"`
}

// AttractorConfig defines the fixed attraction point at the field center.
type AttractorConfig struct {
	Strength     float64 `yaml:"strength"`      // per gravity level
	AbsorbRadius float64 `yaml:"absorb_radius"` // particles closer than this are absorbed
	EscapeRadius float64 `yaml:"escape_radius"` // particles farther than this are lost
	Radius       float64 `yaml:"radius"`        // drawn size
}

// Particle spawn modes.
const (
	ModeRest  = "rest"  // spawned at rest, accelerated toward the attractor
	ModeComet = "comet" // spawned with a fixed heading toward the attractor
)

// ParticleConfig defines particle spawning.
type ParticleConfig struct {
	Mode           string  `yaml:"mode"`
	CometSpeed     float64 `yaml:"comet_speed"`
	BaseMass       float64 `yaml:"base_mass"`
	BaseRadius     float64 `yaml:"base_radius"`
	MergeThreshold float64 `yaml:"merge_threshold"`
	MaxParticles   int     `yaml:"max_particles"`
}

// EconomyConfig defines milestone and currency rules.
type EconomyConfig struct {
	PlanetMass      float64 `yaml:"planet_mass"`       // mass per planet milestone
	StardustPerMass float64 `yaml:"stardust_per_mass"` // currency credited per absorbed mass
	PlanetsToWin    int     `yaml:"planets_to_win"`    // 0 = endless
}

// AutoClickConfig defines the auto-clicker timer.
type AutoClickConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

// UpgradeConfig defines one purchasable upgrade.
type UpgradeConfig struct {
	BaseCost float64 `yaml:"base_cost"`
	Growth   float64 `yaml:"growth"`
}

// UpgradesConfig lists the three upgrades in slot order.
type UpgradesConfig struct {
	Gravity UpgradeConfig `yaml:"gravity"`
	Auto    UpgradeConfig `yaml:"auto"`
	Density UpgradeConfig `yaml:"density"`
}

// Validate checks that the config describes a playable field.
func (c *AccretionConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have positive size", ErrInvalid)
	case c.Attractor.Strength <= 0:
		return fmt.Errorf("%w: attractor.strength must be positive", ErrInvalid)
	case c.Attractor.AbsorbRadius <= 0:
		return fmt.Errorf("%w: attractor.absorb_radius must be positive", ErrInvalid)
	case c.Attractor.EscapeRadius <= c.Attractor.AbsorbRadius:
		return fmt.Errorf("%w: escape_radius must exceed absorb_radius", ErrInvalid)
	case c.Particles.Mode != ModeRest && c.Particles.Mode != ModeComet:
		return fmt.Errorf("%w: unknown particle mode %q", ErrInvalid, c.Particles.Mode)
	case c.Particles.Mode == ModeComet && c.Particles.CometSpeed <= 0:
		return fmt.Errorf("%w: comet_speed must be positive", ErrInvalid)
	case c.Particles.BaseMass <= 0:
		return fmt.Errorf("%w: base_mass must be positive", ErrInvalid)
	case c.Particles.MergeThreshold < 0:
		return fmt.Errorf("%w: merge_threshold must not be negative", ErrInvalid)
	case c.Economy.PlanetMass <= 0:
		return fmt.Errorf("%w: planet_mass must be positive", ErrInvalid)
	case c.AutoClick.IntervalMS <= 0:
		return fmt.Errorf("%w: auto_click.interval_ms must be positive", ErrInvalid)
	}
	for _, u := range c.Upgrades.Slots() {
		if u.BaseCost <= 0 || u.Growth <= 1 {
			return fmt.Errorf("%w: upgrade %s needs base_cost > 0 and growth > 1", ErrInvalid, u.Name)
		}
	}
	return nil
}

// NamedUpgrade pairs an upgrade config with its slot name.
type NamedUpgrade struct {
	Name string
	UpgradeConfig
}

// Slots returns the upgrades in key order (1, 2, 3).
func (u UpgradesConfig) Slots() []NamedUpgrade {
	return []NamedUpgrade{
		{Name: "gravity", UpgradeConfig: u.Gravity},
		{Name: "auto", UpgradeConfig: u.Auto},
		{Name: "density", UpgradeConfig: u.Density},
	}
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the spawn interval removed at max difficulty
	MinIntervalMS     int     `yaml:"min_interval_ms"`    // Spawn interval floor
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI flag value to a preset. Unknown values yield ""
// which means "use the config as loaded".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
