// logic is a terminal puzzle game about switches, gates, and one light bulb.
//
// Usage:
//
//	logic                    - Open the level select (same as menu)
//	logic list               - List levels and stars
//	logic play <level>       - Play one level
//	logic menu               - Pick levels interactively
//	logic stars              - Show stars and attempt statistics
//	logic serve              - Serve over SSH and/or WebSocket
//	logic validate <file>    - Check a level pack file
//	logic journal <file>     - Print a session journal
//	logic settings           - Print effective settings
//
// Global flags:
//
//	--config <path>      - Settings file (default: search order)
//	--db <path>          - Progress database (default: ~/.logic-arcade/progress.db)
//	--tps <rate>         - Frames per second of the terminal UI
//	--difficulty <name>  - Budget preset: easy, normal, hard, fixed
//	--journal <dir>      - Write session journals to dir
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logic-arcade/internal/config"
	"github.com/vovakirdan/logic-arcade/internal/platform/tui"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagTPS        int
	flagDifficulty string
	flagJournal    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logic",
	Short: "Logic Arcade - Light the bulb with Boolean gates",
	Long: `Logic Arcade is a puzzle game played in the terminal. Each level wires
a few switches through logic gates into a bulb; flip switches until the bulb
matches the goal, within the level's move and time budgets.

Available commands:
  list      - Show levels, budgets and stars
  play      - Play a specific level directly
  menu      - Interactive level select
  stars     - View stars and attempt statistics
  serve     - Serve over SSH and/or WebSocket
  validate  - Check a level pack file
  journal   - Print a recorded session journal
  settings  - Print effective settings

Examples:
  logic
  logic play 7
  logic play 3 --pack components
  logic serve --ssh :2222 --ws :8080`,
	Run: runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database")
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Frames per second of the terminal UI")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "", "Directory for session journals")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(starsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runApp(_ *cobra.Command, _ []string) {
	env := mustSetup(true)
	defer env.Close()

	var onIntroSeen func() error
	if !env.Settings.SeenIntro {
		onIntroSeen = func() error {
			return config.MarkIntroSeen(flagConfig)
		}
	}
	if err := tui.RunApp(env.Runtime.Pack, env.Services, env.Runtime, onIntroSeen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		env.Close()
		os.Exit(1)
	}
}
