package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/gravity-arcade/internal/config"
	"github.com/vovakirdan/gravity-arcade/internal/core"
	"github.com/vovakirdan/gravity-arcade/internal/games/accretion"
	"github.com/vovakirdan/gravity-arcade/internal/games/barrels"
	"github.com/vovakirdan/gravity-arcade/internal/logging"
)

// newLogger builds the logger from the global flags. Without --log-file
// output goes to fallback, which is nil for the interactive commands.
func newLogger(fallback io.Writer) (*log.Logger, func() error, error) {
	return logging.New(logging.Options{
		Path:   expandHome(flagLogFile),
		Writer: fallback,
		Level:  flagLogLevel,
		Prefix: "arcade",
	})
}

// configureGames hands the global flags to the game packages. The custom
// config path only applies to the family of gameID.
func configureGames(gameID string, logger *log.Logger) {
	barrelsPath, accretionPath := "", ""
	switch gameID {
	case config.GameBarrels, config.GameBarrelsGauntlet:
		barrelsPath = flagConfig
	case config.GameAccretion, config.GameAccretionComet:
		accretionPath = flagConfig
	}

	barrels.SetConfigPath(expandHome(barrelsPath))
	barrels.SetDifficultyPreset(flagDifficulty)
	barrels.SetLogger(logger)

	accretion.SetConfigPath(expandHome(accretionPath))
	accretion.SetDifficultyPreset(flagDifficulty)
	accretion.SetLogger(logger)
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
