package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrUnknownGame is returned when a game ID has no embedded default.
var ErrUnknownGame = errors.New("unknown game")

// validator is implemented by every game config.
type validator interface {
	Validate() error
}

// load fills cfg from the first source that parses.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
// cfg must already hold the hardcoded defaults; files override the fields they set.
func load[T any, PT interface {
	*T
	validator
}](gameID, customPath string, cfg PT) error {
	// Custom path errors are reported: the user asked for that file explicitly.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return validate(customPath, cfg)
	}

	filename := gameID + ".yaml"
	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var probe T = *cfg
		if err := yaml.Unmarshal(data, &probe); err != nil {
			continue
		}
		if PT(&probe).Validate() != nil {
			continue
		}
		*cfg = probe
		return nil
	}

	// Use embedded default YAML; the hardcoded value stays on parse failure.
	embedded := GetDefaultYAML(gameID)
	if embedded == nil {
		return fmt.Errorf("config %q: %w", gameID, ErrUnknownGame)
	}
	var probe T = *cfg
	if err := yaml.Unmarshal(embedded, &probe); err == nil {
		*cfg = probe
	}
	return validate("embedded "+gameID, cfg)
}

func validate(source string, v validator) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", source, err)
	}
	return nil
}

// LoadBarrels loads configuration for one of the barrel platformers.
func LoadBarrels(gameID, customPath string) (BarrelsConfig, error) {
	var cfg BarrelsConfig
	switch gameID {
	case GameBarrels:
		cfg = DefaultBarrelsConfig()
	case GameBarrelsGauntlet:
		cfg = DefaultBarrelsGauntletConfig()
	default:
		return cfg, fmt.Errorf("barrels config %q: %w", gameID, ErrUnknownGame)
	}
	if err := load(gameID, customPath, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadAccretion loads configuration for one of the accretion clickers.
func LoadAccretion(gameID, customPath string) (AccretionConfig, error) {
	var cfg AccretionConfig
	switch gameID {
	case GameAccretion:
		cfg = DefaultAccretionConfig()
	case GameAccretionComet:
		cfg = DefaultAccretionCometConfig()
	default:
		return cfg, fmt.Errorf("accretion config %q: %w", gameID, ErrUnknownGame)
	}
	if err := load(gameID, customPath, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBarrelsPreset modifies the config based on a difficulty preset.
func ApplyBarrelsPreset(cfg *BarrelsConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the level itself based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Barrels.IntervalMS = cfg.Barrels.IntervalMS * 3 / 2
		cfg.Player.MoveSpeed *= 1.2
	case DifficultyHard:
		cfg.Barrels.IntervalMS = cfg.Barrels.IntervalMS * 3 / 4
	}
}

// ApplyAccretionPreset modifies the config based on a difficulty preset.
// The clickers have no progression curve; presets scale the economy instead.
func ApplyAccretionPreset(cfg *AccretionConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Attractor.Strength *= 1.5
		cfg.Attractor.AbsorbRadius *= 1.5
	case DifficultyHard:
		cfg.Attractor.Strength *= 0.75
		cfg.Upgrades.Gravity.BaseCost *= 1.5
		cfg.Upgrades.Auto.BaseCost *= 1.5
		cfg.Upgrades.Density.BaseCost *= 1.5
	}
}
