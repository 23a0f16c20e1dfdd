package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gravity-arcade/internal/config"
	"github.com/vovakirdan/gravity-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// families describes each game for the listing.
var families = map[string]string{
	config.GameBarrels:         "platformer",
	config.GameBarrelsGauntlet: "platformer, scored dodges",
	config.GameAccretion:       "clicker",
	config.GameAccretionComet:  "clicker, comets, win at 10 planets",
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Calculate column widths
	idWidth, titleWidth := len("ID"), len("Title")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
		titleWidth = max(titleWidth, len(g.Title))
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("  %-*s  %-*s  %s", idWidth, "ID", titleWidth, "Title", "Kind")))
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", idWidth, g.ID, titleWidth, g.Title, families[g.ID])
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
