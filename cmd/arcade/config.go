package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gravity-arcade/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print a game's default config YAML",
	Long: `Print the built-in config of a game, ready to copy to
~/.arcade/configs/<game>.yaml and edit.

With --resolved the config actually used is printed instead: the file
found on the search path (or --config) merged over the defaults, with the
--difficulty preset applied.

Examples:
  arcade config barrels > ~/.arcade/configs/barrels.yaml
  arcade config accretion --resolved --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the loaded config with presets applied")
}

func runConfig(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !flagResolved {
		data := config.GetDefaultYAML(gameID)
		if data == nil {
			return fmt.Errorf("%w: %q", config.ErrUnknownGame, gameID)
		}
		_, err := os.Stdout.Write(data)
		return err
	}

	preset := config.ParsePreset(flagDifficulty)
	var resolved any
	switch gameID {
	case config.GameBarrels, config.GameBarrelsGauntlet:
		cfg, err := config.LoadBarrels(gameID, expandHome(flagConfig))
		if err != nil {
			return err
		}
		config.ApplyBarrelsPreset(&cfg, preset)
		resolved = cfg
	case config.GameAccretion, config.GameAccretionComet:
		cfg, err := config.LoadAccretion(gameID, expandHome(flagConfig))
		if err != nil {
			return err
		}
		config.ApplyAccretionPreset(&cfg, preset)
		resolved = cfg
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownGame, gameID)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(resolved); err != nil {
		return err
	}
	return enc.Close()
}
