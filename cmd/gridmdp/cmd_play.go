package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gridmdp/internal/env"
	"gridmdp/internal/eval"
	"gridmdp/internal/logging"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run random-policy episodes in the grid world",
		Long: `Runs episodes of an agent choosing uniformly random directions. Each
episode starts in the bottom-left corner and ends on a +1 or -1 cell.
The total reward of every episode is printed, logged and optionally charted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("episodes") {
				cfg.Episodes.Count, _ = cmd.Flags().GetInt("episodes")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed, _ = cmd.Flags().GetInt64("seed")
			}
			if cmd.Flags().Changed("workers") {
				cfg.Episodes.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if v, _ := cmd.Flags().GetString("csv"); v != "" {
				cfg.Logging.CSVPath = v
			}
			if v, _ := cmd.Flags().GetString("jsonl"); v != "" {
				cfg.Logging.JSONPath = v
			}
			if v, _ := cmd.Flags().GetString("chart"); v != "" {
				cfg.Logging.ChartPath = v
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cmd, cfg)
			runner, err := eval.NewRunner(cfg, logger)
			if err != nil {
				return err
			}

			results, err := runner.Run(cmd.Context(), cfg.Episodes.Count)
			if err != nil {
				return err
			}

			episodeLog, err := logging.OpenEpisodeLog(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
			if err != nil {
				return fmt.Errorf("opening episode log: %w", err)
			}
			for _, ep := range results {
				if err := episodeLog.Log(ep); err != nil {
					episodeLog.Close()
					return fmt.Errorf("writing episode log: %w", err)
				}
			}
			if err := episodeLog.Close(); err != nil {
				return err
			}

			if cfg.Logging.ChartPath != "" {
				if err := logging.WriteRewardChart(cfg.Logging.ChartPath, "Random policy rewards", results); err != nil {
					return fmt.Errorf("writing chart: %w", err)
				}
				logger.Info("chart written", "path", cfg.Logging.ChartPath)
			}

			agg := env.Aggregate(results)
			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return json.NewEncoder(out).Encode(map[string]any{
					"episodes":     results,
					"reward_mean":  agg.RewardMean,
					"reward_std":   agg.RewardStd,
					"steps_mean":   agg.StepsMean,
					"success_rate": agg.SuccessRate(),
				})
			}

			au := colors(cmd)
			for _, ep := range results {
				outcome := au.Yellow(ep.Outcome.String())
				switch ep.Outcome {
				case env.OutcomeHappy:
					outcome = au.Green(ep.Outcome.String())
				case env.OutcomeBad:
					outcome = au.Red(ep.Outcome.String())
				}
				fmt.Fprintf(out, "Episode %d: agent gets %.2f reward in %d steps (%s)\n",
					ep.Episode, ep.TotalReward, ep.Steps, outcome)
			}
			fmt.Fprintf(out, "Mean reward %.3f ± %.3f, mean steps %.1f, success rate %.0f%%\n",
				agg.RewardMean, agg.RewardStd, agg.StepsMean, 100*agg.SuccessRate())
			return nil
		},
	}

	cmd.Flags().Int("episodes", 10, "Number of episodes to run")
	cmd.Flags().Int64("seed", 0, "Base seed (episode i uses seed+i)")
	cmd.Flags().Int("workers", 0, "Concurrent episodes (0 = number of CPUs)")
	cmd.Flags().String("csv", "", "Write per-episode CSV to this path")
	cmd.Flags().String("jsonl", "", "Write per-episode JSON lines to this path")
	cmd.Flags().String("chart", "", "Write an HTML reward chart to this path")
	return cmd
}
