package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logic-arcade/internal/circuit"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

var (
	flagListPack  string
	flagListTruth bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels",
	Long: `Shows every level of a pack with its budgets and your stars.

Examples:
  logic list
  logic list --pack components
  logic list --truth`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagListPack, "pack", "", "Only list this pack")
	listCmd.Flags().BoolVar(&flagListTruth, "truth", false, "Print each level's truth table")
}

func runList(_ *cobra.Command, _ []string) {
	env := mustSetup(false)
	defer env.Close()

	packs := registry.List()
	if flagListPack != "" {
		if !registry.Exists(flagListPack) {
			fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", flagListPack)
			os.Exit(1)
		}
		packs = []registry.PackInfo{{Name: flagListPack}}
	}

	for _, info := range packs {
		pack, err := registry.Get(info.Name)
		if err != nil {
			continue
		}

		entries := pack.Entries()
		stars := 0
		for _, e := range entries {
			if env.Services.HasStar(pack.Name(), e.ID) {
				stars++
			}
		}
		fmt.Printf("%s (%s)  ★ %d/%d\n\n", pack.Title(), pack.Name(), stars, len(entries))

		maxName := 5 // "Level" header
		for _, e := range entries {
			maxName = max(maxName, len(e.Name))
		}

		fmt.Printf("  %3s  %-*s  %-2s  %-8s  %s\n", "#", maxName, "Level", "★", "Switches", "Budget")
		fmt.Printf("  %3s  %-*s  %-2s  %-8s  %s\n", "--", maxName, "-----", "-", "--------", "------")
		for _, e := range entries {
			star := ""
			if env.Services.HasStar(pack.Name(), e.ID) {
				star = "★"
			}
			fmt.Printf("  %3d  %-*s  %-2s  %-8d  %s\n", e.ID, maxName, e.Name, star, e.Switches, budget(e))

			if flagListTruth {
				printTruthTable(e)
			}
		}
		fmt.Println()
	}

	fmt.Println("Run 'logic play <level>' to play a level.")
}

func budget(e registry.Entry) string {
	var parts []string
	if e.Limits.HasStepBudget() {
		parts = append(parts, fmt.Sprintf("%d moves", e.Limits.MaxToggles))
	}
	if e.Limits.HasTimeBudget() {
		parts = append(parts, fmt.Sprintf("%gs", e.Limits.TimeLimit.Seconds()))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func printTruthTable(e registry.Entry) {
	expr, err := circuit.Parse(e.Formula)
	if err != nil {
		fmt.Printf("       %v\n", err)
		return
	}

	fmt.Printf("       %s\n", expr)
	for _, row := range circuit.TruthTable(expr, e.Switches) {
		var b strings.Builder
		for _, v := range row.Inputs {
			b.WriteString(bit(v))
			b.WriteByte(' ')
		}
		fmt.Printf("       %s-> %s\n", b.String(), bit(row.Output))
	}
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
