package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logic-arcade/internal/levels"
	"github.com/vovakirdan/logic-arcade/internal/platform/tui"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

var (
	flagPlayPack   string
	flagPlayLevels string
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Play a level",
	Long: `Start playing the given level of a pack.

Controls:
  1-9, a-g     - Toggle switch
  Left/Right   - Move cursor, Space toggles it
  Enter        - Next level after a win, retry after a loss
  R            - Reset the level
  H/?          - Show hint
  Esc          - Leave the level
  Q/Ctrl+C     - Quit

Difficulty options scale move and time budgets:
  easy   - 1.5x budgets
  normal - Budgets as designed
  hard   - 0.75x budgets (never below the minimum solution)
  fixed  - Budgets as designed

Examples:
  logic play 1
  logic play 12 --difficulty hard
  logic play 4 --pack components
  logic play 1 --levels ./my-pack.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayPack, "pack", "", "Pack to play (default: campaign)")
	playCmd.Flags().StringVar(&flagPlayLevels, "levels", "", "Load an extra level pack file")
}

func runPlay(_ *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		fmt.Fprintf(os.Stderr, "Error: level must be a positive number, got %q\n", args[0])
		os.Exit(1)
	}

	env := mustSetup(true)
	defer env.Close()

	packName := flagPlayPack
	if flagPlayLevels != "" {
		p, err := levels.LoadFile(flagPlayLevels)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			env.Close()
			os.Exit(1)
		}
		registerPacks(env.Services.Logger, []*levels.Pack{p})
		if packName == "" {
			packName = p.Name()
		}
	}
	if packName == "" {
		packName = env.Runtime.Pack
	}

	// Check if pack exists
	pack, err := registry.Get(packName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", packName)
		fmt.Fprintln(os.Stderr, "Run 'logic list' to see available levels.")
		env.Close()
		os.Exit(1)
	}
	env.Runtime.Pack = packName

	if err := tui.Run(pack, id, env.Services, env.Runtime); err != nil {
		fmt.Fprintf(os.Stderr, "Error running level: %v\n", err)
		env.Close()
		os.Exit(1)
	}
}
