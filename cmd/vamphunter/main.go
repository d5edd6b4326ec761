package main

import (
	"log"

	"github.com/spf13/cobra"

	"vamphunter/internal/config"
	"vamphunter/internal/facts"
	"vamphunter/internal/tui"
	"vamphunter/internal/ui"
)

var (
	tuiMode    bool
	configPath string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "vamphunter",
	Short: "vamphunter: find and kill memory-draining server processes",
	Long: `vamphunter scans for processes listening on TCP ports, shows the memory
each one holds, and lets you terminate them selectively or in bulk, with
confirmation prompts and a graceful-then-forceful signal escalation.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			ui.DisableColor()
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := facts.Preflight(); err != nil {
			return err
		}

		h := newHunter(cfg)
		if tuiMode {
			return tui.Run(h)
		}
		return h.runInteractive()
	},
}

func init() {
	rootCmd.Flags().BoolVar(&tuiMode, "tui", false, "Launch the full-screen terminal UI")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to an optional YAML policy file")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
