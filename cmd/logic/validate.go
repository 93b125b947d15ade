package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logic-arcade/internal/circuit"
	"github.com/vovakirdan/logic-arcade/internal/levels"
)

var flagPrintSchema bool

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a level pack file",
	Long: `Validate a YAML level pack against the pack schema, then check every
level: the formula parses, uses only existing switches, does not start
solved, and can be solved within its move budget.

Examples:
  logic validate ./my-pack.yaml
  logic validate --schema > levels.schema.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&flagPrintSchema, "schema", false, "Print the pack JSON schema and exit")
}

func runValidate(_ *cobra.Command, args []string) {
	if flagPrintSchema {
		fmt.Println(levels.SchemaJSON())
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing level pack file")
		os.Exit(1)
	}

	pack, err := levels.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: pack %q (%s), %d levels\n", args[0], pack.Name(), pack.Title(), pack.Len())
	for _, d := range pack.Definitions() {
		goal := "sandbox"
		if moves := d.MinMoves(); moves >= 0 {
			goal = fmt.Sprintf("solvable in %d", moves)
		}
		fmt.Printf("  %3d  %-22s  %d switches, %d gates, %s\n",
			d.ID, d.Name, d.SwitchCount, circuit.Gates(d.Expression), goal)
	}
	fmt.Println("OK")
}
