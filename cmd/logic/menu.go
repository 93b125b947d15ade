package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logic-arcade/internal/platform/tui"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level select",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level.
Leaving a level returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  Tab/P        - Next pack
  T/*          - Stars board
  Q            - Quit

Examples:
  logic menu
  logic menu --difficulty easy
  logic menu --db ./progress.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	env := mustSetup(true)
	defer env.Close()

	cfg := env.Runtime
	pack := cfg.Pack

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(pack, env.Services, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config
		if menuResult.Pack != "" {
			pack = menuResult.Pack
		}

		if menuResult.Quit {
			break
		}

		if menuResult.WantsStars {
			goBack, err := tui.RunStars(env.Services.Store, pack, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			break
		}

		p, err := registry.Get(pack)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if err := tui.Run(p, menuResult.LevelID, env.Services, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		}

		// Loop back to menu
	}
}
