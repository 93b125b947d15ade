package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/logic-arcade/internal/config"
)

var flagSettingsSave bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print effective settings",
	Long: `Print the settings after the config file, LOGIC_* environment variables
and command line flags have been applied.

Search order for the settings file:
  --config <path>
  ~/.logic-arcade/settings.yaml
  ./configs/settings.yaml
  built-in defaults

Examples:
  logic settings
  LOGIC_DIFFICULTY=hard logic settings
  logic settings --difficulty easy --save`,
	Run: runSettings,
}

func init() {
	settingsCmd.Flags().BoolVar(&flagSettingsSave, "save", false, "Write the effective settings to ~/.logic-arcade/settings.yaml")
}

func runSettings(_ *cobra.Command, _ []string) {
	cfg, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagSettingsSave {
		path := config.UserSettingsPath()
		if err := config.Save(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved to %s\n", path)
		return
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))
	fmt.Printf("# budgets x%g\n", config.LimitFactor(cfg.Difficulty))
}
