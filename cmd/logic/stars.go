package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/message"

	"github.com/vovakirdan/logic-arcade/internal/core"
	"github.com/vovakirdan/logic-arcade/internal/levels"
	"github.com/vovakirdan/logic-arcade/internal/platform/tui"
	"github.com/vovakirdan/logic-arcade/internal/registry"
	"github.com/vovakirdan/logic-arcade/internal/storage"
)

var (
	flagStarsPack  string
	flagStarsReset bool
	flagStarsBoard bool
)

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Show stars and attempt statistics",
	Long: `Display which levels you have solved, when, and your best attempts.

Examples:
  logic stars
  logic stars --pack components
  logic stars --board
  logic stars --reset`,
	Run: runStars,
}

func init() {
	starsCmd.Flags().StringVar(&flagStarsPack, "pack", "", "Only show this pack")
	starsCmd.Flags().BoolVar(&flagStarsReset, "reset", false, "Delete every star")
	starsCmd.Flags().BoolVar(&flagStarsBoard, "board", false, "Open the interactive stars board")
}

func runStars(_ *cobra.Command, _ []string) {
	cfg, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Paths.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStarsReset {
		if err := store.ResetAllStars(); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting stars: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("All stars cleared.")
		return
	}

	if flagStarsBoard {
		pack := flagStarsPack
		if pack == "" {
			pack = levels.CampaignPack
		}
		rt := core.DefaultConfig()
		rt.Language = cfg.Language
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			rt.ScreenW, rt.ScreenH = w, h
		}
		if _, err := tui.RunStars(store, pack, rt); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	printer := tui.NewPrinter(cfg.Language)
	packs := registry.List()
	if flagStarsPack != "" {
		packs = []registry.PackInfo{{Name: flagStarsPack}}
	}

	for _, info := range packs {
		pack, err := registry.Get(info.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}

		rows, err := tui.LoadStarRows(store, pack)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stars: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		printStarRows(pack, rows, printer)
	}
}

func printStarRows(pack registry.Pack, rows []tui.StarRow, printer *message.Printer) {
	stars := 0
	for _, r := range rows {
		if r.Star != nil {
			stars++
		}
	}
	fmt.Printf("Stars - %s  %d/%d\n\n", pack.Title(), stars, len(rows))

	if stars == 0 {
		fmt.Println("No stars yet.")
		fmt.Println()
		fmt.Printf("Play 'logic play 1 --pack %s' to earn the first one!\n\n", pack.Name())
		return
	}

	// Print header
	fmt.Printf("  %3s  %-22s  %-2s  %-16s  %-12s  %s\n", "#", "Level", "★", "Completed", "Attempts", "Best")
	fmt.Printf("  %3s  %-22s  %-2s  %-16s  %-12s  %s\n", "--", "-----", "-", "---------", "--------", "----")

	for _, r := range rows {
		c := r.Cells(printer)
		fmt.Printf("  %3s  %-22s  %-2s  %-16s  %-12s  %s\n", c[0], c[1], c[2], c[3], c[4], c[5])
	}
	fmt.Println()
}
