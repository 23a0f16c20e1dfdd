package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-arcade/internal/platform/tui"
	"github.com/vovakirdan/gravity-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right, A/D  - Walk (barrels)
  Up/Down, W/S     - Climb ladders (barrels)
  Space            - Jump (barrels)
  Mouse click      - Drop dust or launch a comet (accretion)
  1 / 2 / 3        - Buy gravity / auto-clicker / density (accretion)
  P                - Pause
  R                - Restart (after the session ends)
  Esc              - Leave the game
  Q/Ctrl+C         - Quit

Difficulty options (barrels):
  easy   - Start at lowest difficulty, slower spawns
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, faster spawns
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play barrels
  arcade play barrels_gauntlet --difficulty hard
  arcade play accretion
  arcade play accretion_comet --config ./my-comets.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog() //nolint:errcheck // Best-effort close on exit

	configureGames(gameID, logger)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if _, err := tui.Run(game, runtimeConfig(), logger); err != nil {
		logger.Error("game failed", "game", gameID, "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
