package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	barrels := map[string]BarrelsConfig{
		GameBarrels:         DefaultBarrelsConfig(),
		GameBarrelsGauntlet: DefaultBarrelsGauntletConfig(),
	}
	for id, want := range barrels {
		var got BarrelsConfig
		if err := yaml.Unmarshal(GetDefaultYAML(id), &got); err != nil {
			t.Fatalf("%s: embedded yaml does not parse: %v", id, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: embedded yaml differs from hardcoded default\n got: %+v\nwant: %+v", id, got, want)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("%s: default invalid: %v", id, err)
		}
	}

	accretion := map[string]AccretionConfig{
		GameAccretion:      DefaultAccretionConfig(),
		GameAccretionComet: DefaultAccretionCometConfig(),
	}
	for id, want := range accretion {
		var got AccretionConfig
		if err := yaml.Unmarshal(GetDefaultYAML(id), &got); err != nil {
			t.Fatalf("%s: embedded yaml does not parse: %v", id, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: embedded yaml differs from hardcoded default\n got: %+v\nwant: %+v", id, got, want)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("%s: default invalid: %v", id, err)
		}
	}
}

func TestGetDefaultYAMLUnknown(t *testing.T) {
	if GetDefaultYAML("pong") != nil {
		t.Error("expected nil for unknown game")
	}
	for _, id := range GameIDs() {
		if len(GetDefaultYAML(id)) == 0 {
			t.Errorf("missing embedded yaml for %s", id)
		}
	}
}

func TestLoadCustomPathOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("barrels:\n  interval_ms: 500\nscoring:\n  per_barrel: 7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBarrels(GameBarrels, path)
	if err != nil {
		t.Fatalf("LoadBarrels: %v", err)
	}
	if cfg.Barrels.IntervalMS != 500 {
		t.Errorf("interval_ms = %d, want 500", cfg.Barrels.IntervalMS)
	}
	if cfg.Scoring.PerBarrel != 7 {
		t.Errorf("per_barrel = %d, want 7", cfg.Scoring.PerBarrel)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Player.JumpVelocity != 7 {
		t.Errorf("jump_velocity = %v, want default 7", cfg.Player.JumpVelocity)
	}
	if len(cfg.Level.Platforms) != 6 {
		t.Errorf("platforms = %d, want default 6", len(cfg.Level.Platforms))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadAccretion(GameAccretion, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("upgrades:\n  gravity: { base_cost: 10, growth: 1 }\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadAccretion(GameAccretion, path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadUnknownGame(t *testing.T) {
	if _, err := LoadBarrels("accretion", ""); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("LoadBarrels(accretion) err = %v, want ErrUnknownGame", err)
	}
	if _, err := LoadAccretion("snake", ""); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("LoadAccretion(snake) err = %v, want ErrUnknownGame", err)
	}
}

func TestLoadVariantsDiffer(t *testing.T) {
	classic, err := LoadBarrels(GameBarrels, "")
	if err != nil {
		t.Fatal(err)
	}
	gauntlet, err := LoadBarrels(GameBarrelsGauntlet, "")
	if err != nil {
		t.Fatal(err)
	}
	if gauntlet.Barrels.IntervalMS >= classic.Barrels.IntervalMS {
		t.Errorf("gauntlet should spawn faster: %d vs %d", gauntlet.Barrels.IntervalMS, classic.Barrels.IntervalMS)
	}

	comet, err := LoadAccretion(GameAccretionComet, "")
	if err != nil {
		t.Fatal(err)
	}
	if comet.Particles.Mode != ModeComet {
		t.Errorf("comet mode = %q", comet.Particles.Mode)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BarrelsConfig)
	}{
		{"zero field", func(c *BarrelsConfig) { c.Field.Width = 0 }},
		{"no gravity", func(c *BarrelsConfig) { c.Physics.Gravity = 0 }},
		{"no platforms", func(c *BarrelsConfig) { c.Level.Platforms = nil }},
		{"flat platform", func(c *BarrelsConfig) { c.Level.Platforms[2].Height = 0 }},
		{"no interval", func(c *BarrelsConfig) { c.Barrels.IntervalMS = 0 }},
		{"wide player", func(c *BarrelsConfig) { c.Player.Width = 900 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBarrelsConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	acc := DefaultAccretionConfig()
	acc.Particles.Mode = "orbit"
	if err := acc.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown mode: Validate() = %v, want ErrInvalid", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":   DifficultyEasy,
		"normal": DifficultyNormal,
		"hard":   DifficultyHard,
		"fixed":  DifficultyFixed,
		"":       "",
		"insane": "",
	}
	for in, want := range tests {
		if got := ParsePreset(in); got != want {
			t.Errorf("ParsePreset(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestApplyBarrelsPreset(t *testing.T) {
	cfg := DefaultBarrelsConfig()
	ApplyBarrelsPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultBarrelsConfig()
	ApplyBarrelsPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}
	if cfg.Barrels.IntervalMS != 1500 {
		t.Errorf("hard preset interval = %d, want 1500", cfg.Barrels.IntervalMS)
	}

	cfg = DefaultBarrelsConfig()
	before := cfg
	ApplyBarrelsPreset(&cfg, "")
	if !reflect.DeepEqual(cfg, before) {
		t.Error("empty preset must not change the config")
	}
}

func TestDifficultyLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	})

	tests := []struct {
		ticks uint64
		want  float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{1000, 1.0},
	}
	for _, tt := range tests {
		if got := dm.Level(0, tt.ticks); abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(ticks=%d) = %v, want %v", tt.ticks, got, tt.want)
		}
	}

	dm.SetEnabled(false)
	if got := dm.Level(0, 100); got != 0.2 {
		t.Errorf("disabled Level = %v, want initial 0.2", got)
	}
}

func TestDifficultyIntervalAndSpeed(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling: ScalingConfig{
			SpeedMultiplier:   1.0,
			IntervalReduction: 0.5,
			MinIntervalMS:     800,
		},
	})

	base := 2000 * time.Millisecond
	if got := dm.Interval(base, 0, 0); got != base {
		t.Errorf("Interval at level 0 = %v, want %v", got, base)
	}
	if got := dm.Interval(base, 50, 0); got != 1500*time.Millisecond {
		t.Errorf("Interval at level 0.5 = %v, want 1.5s", got)
	}
	if got := dm.Interval(base, 100, 0); got != 1000*time.Millisecond {
		t.Errorf("Interval at level 1 = %v, want 1s", got)
	}
	if got := dm.Interval(1200*time.Millisecond, 100, 0); got != 800*time.Millisecond {
		t.Errorf("Interval below floor = %v, want 800ms", got)
	}

	if got := dm.Speed(2, 100, 0); got != 4 {
		t.Errorf("Speed at max = %v, want 4", got)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
