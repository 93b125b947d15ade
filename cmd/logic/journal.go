package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/logic-arcade/internal/journal"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

var flagJournalJSON bool

var journalCmd = &cobra.Command{
	Use:   "journal <file>",
	Short: "Print a session journal",
	Long: `Decode a .jsonl.zst session journal written with --journal and print
one line per event.

Examples:
  logic journal ./journal/session_2026-10-15T14.jsonl.zst
  logic journal --json ./journal/session_2026-10-15T14.jsonl.zst | jq .`,
	Args: cobra.ExactArgs(1),
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().BoolVar(&flagJournalJSON, "json", false, "Print raw JSON lines")
}

func runJournal(_ *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(os.Stdout)
	n := 0
	err = journal.Decode(f, func(e journal.Entry) error {
		n++
		if flagJournalJSON {
			return enc.Encode(e)
		}
		fmt.Println(formatEntry(e))
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Close()
		os.Exit(1)
	}
	if !flagJournalJSON {
		fmt.Printf("%d events\n", n)
	}
}

func formatEntry(e journal.Entry) string {
	line := fmt.Sprintf("%s  %-10s %3d  #%-3d %-18s %-11s",
		e.Time.Format("15:04:05.000"), e.Pack, e.LevelID, e.Epoch, e.Kind, e.Phase)

	switch e.Kind {
	case puzzle.EventToggled:
		line += fmt.Sprintf(" switch %d -> %s, bulb %s", e.Index, onOff(e.Snapshot.Switches, e.Index), bit(e.Snapshot.Bulb))
	case puzzle.EventCompletionError:
		line += " " + e.Error
	}
	return line
}

func onOff(switches []bool, i int) string {
	if i < 0 || i >= len(switches) {
		return "?"
	}
	if switches[i] {
		return "on"
	}
	return "off"
}
