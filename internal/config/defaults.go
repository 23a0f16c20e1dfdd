package config

import (
	_ "embed"
)

// Game IDs with an embedded default config.
const (
	GameBarrels         = "barrels"
	GameBarrelsGauntlet = "barrels_gauntlet"
	GameAccretion       = "accretion"
	GameAccretionComet  = "accretion_comet"
)

//go:embed defaults/barrels.yaml
var defaultBarrelsYAML []byte

//go:embed defaults/barrels_gauntlet.yaml
var defaultBarrelsGauntletYAML []byte

//go:embed defaults/accretion.yaml
var defaultAccretionYAML []byte

//go:embed defaults/accretion_comet.yaml
var defaultAccretionCometYAML []byte

// DefaultBarrelsConfig returns the classic climb level. It mirrors
// defaults/barrels.yaml and is used when the embedded file cannot be parsed.
func DefaultBarrelsConfig() BarrelsConfig {
	return BarrelsConfig{
		Field: FieldConfig{Width: 800, Height: 600},
		Physics: BarrelsPhysics{
			Gravity:          0.5,
			LandingTolerance: 10,
		},
		Player: BarrelsPlayer{
			SpawnX:       50,
			SpawnY:       10,
			Width:        30,
			Height:       40,
			MoveSpeed:    3,
			JumpVelocity: 7,
			ClimbSpeed:   3,
		},
		Barrels: BarrelsSpawn{
			SpawnX:        110,
			SpawnY:        510,
			Width:         20,
			Height:        20,
			Speed:         2,
			FallScale:     2,
			IntervalMS:    2000,
			ReverseOnLand: true,
		},
		Level: BarrelsLevel{
			Platforms: []RectConfig{
				{X: 0, Y: 0, Width: 800, Height: 10},
				{X: 0, Y: 100, Width: 700, Height: 10},
				{X: 100, Y: 200, Width: 700, Height: 10},
				{X: 0, Y: 300, Width: 700, Height: 10},
				{X: 100, Y: 400, Width: 700, Height: 10},
				{X: 0, Y: 500, Width: 500, Height: 10},
			},
			Ladders: []RectConfig{
				{X: 600, Y: 10, Width: 20, Height: 100},
				{X: 150, Y: 110, Width: 20, Height: 100},
				{X: 600, Y: 210, Width: 20, Height: 100},
				{X: 150, Y: 310, Width: 20, Height: 100},
				{X: 400, Y: 410, Width: 20, Height: 100},
			},
			LadderReach: 20,
			Goal:        RectConfig{X: 30, Y: 510, Width: 20, Height: 30},
		},
		Scoring: BarrelsScoring{
			PerBarrel: 0,
			WinBonus:  1000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 7200, // 2 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.5,
				IntervalReduction: 0.4,
				MinIntervalMS:     800,
			},
		},
	}
}

// DefaultBarrelsGauntletConfig returns the scoring variant: faster spawns
// and points for every barrel that leaves the field.
func DefaultBarrelsGauntletConfig() BarrelsConfig {
	cfg := DefaultBarrelsConfig()
	cfg.Barrels.IntervalMS = 1200
	cfg.Barrels.Speed = 2.5
	cfg.Scoring.PerBarrel = 10
	cfg.Scoring.WinBonus = 500
	cfg.Difficulty.Progression = ProgressionConfig{Type: "score", MaxAt: 300}
	cfg.Difficulty.Scaling = ScalingConfig{
		SpeedMultiplier:   0.8,
		IntervalReduction: 0.5,
		MinIntervalMS:     500,
	}
	return cfg
}

// DefaultAccretionConfig returns the rest-spawn clicker.
func DefaultAccretionConfig() AccretionConfig {
	return AccretionConfig{
		Field: FieldConfig{Width: 800, Height: 600},
		Attractor: AttractorConfig{
			Strength:     0.1,
			AbsorbRadius: 15,
			EscapeRadius: 1000,
			Radius:       20,
		},
		Particles: ParticleConfig{
			Mode:           ModeRest,
			CometSpeed:     0,
			BaseMass:       1,
			BaseRadius:     3,
			MergeThreshold: 8,
			MaxParticles:   500,
		},
		Economy: EconomyConfig{
			PlanetMass:      100,
			StardustPerMass: 1,
			PlanetsToWin:    0,
		},
		AutoClick: AutoClickConfig{IntervalMS: 1000},
		Upgrades: UpgradesConfig{
			Gravity: UpgradeConfig{BaseCost: 10, Growth: 1.5},
			Auto:    UpgradeConfig{BaseCost: 25, Growth: 1.6},
			Density: UpgradeConfig{BaseCost: 50, Growth: 1.8},
		},
	}
}

// DefaultAccretionCometConfig returns the comet variant.
func DefaultAccretionCometConfig() AccretionConfig {
	cfg := DefaultAccretionConfig()
	cfg.Particles.Mode = ModeComet
	cfg.Particles.CometSpeed = 4
	cfg.Economy.PlanetsToWin = 10
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case GameBarrels:
		return defaultBarrelsYAML
	case GameBarrelsGauntlet:
		return defaultBarrelsGauntletYAML
	case GameAccretion:
		return defaultAccretionYAML
	case GameAccretionComet:
		return defaultAccretionCometYAML
	default:
		return nil
	}
}

// GameIDs lists every game with an embedded default, in display order.
func GameIDs() []string {
	return []string{GameBarrels, GameBarrelsGauntlet, GameAccretion, GameAccretionComet}
}
