package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"gridmdp/internal/config"
	"gridmdp/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridmdp",
		Short: "Stochastic grid-world MDP and recursive Bellman evaluation",
		Long: `gridmdp simulates an agent in a probabilistic grid world and evaluates
state values of a small symbolic decision process by unrolling the
Bellman equation.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (overrides config)")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlayCmd(),
		newValueCmd(),
		newTransitionsCmd(),
		newStatesCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gridmdp version %s\n", version)
		},
	}
}

// loadConfig resolves --config and --log-level for a subcommand
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

func colors(cmd *cobra.Command) aurora.Aurora {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return aurora.NewAurora(!noColor)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
