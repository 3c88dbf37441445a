package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gridmdp/internal/bellman"
)

func newValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value [state]",
		Short: "Evaluate a symbolic state with the recursive Bellman equation",
		Long: `Computes V(state) = R(state) + discount * max_a E[V(next)] for a path such
as state_up_up. Without --memo every subtree is recomputed, so the cost
grows by a factor of four per remaining move.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			raw := "state_up_up_up_up"
			if len(args) == 1 {
				raw = args[0]
			}
			state, err := bellman.ParseState(raw)
			if err != nil {
				return err
			}

			evaluator, err := bellman.New(
				bellman.WithDiscount(*cfg.Bellman.Discount),
				bellman.WithHorizon(cfg.Bellman.Horizon),
				bellman.WithHappyThreshold(cfg.Bellman.HappyThreshold),
				bellman.WithMoveProb(*cfg.Bellman.MoveProb),
				bellman.WithLogger(newLogger(cmd, cfg)),
			)
			if err != nil {
				return err
			}

			memo, _ := cmd.Flags().GetBool("memo")
			start := time.Now()
			var res bellman.Result
			if memo {
				res = bellman.NewMemo(evaluator).Evaluate(state)
			} else {
				res = evaluator.Evaluate(state)
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return json.NewEncoder(out).Encode(map[string]any{
					"state":   res.State,
					"value":   res.Value,
					"calls":   res.Calls,
					"memo":    memo,
					"elapsed": elapsed.String(),
				})
			}
			au := colors(cmd)
			fmt.Fprintf(out, "V(%s) = %s\n", res.State, au.Bold(fmt.Sprintf("%.6f", res.Value)))
			fmt.Fprintf(out, "evaluated %d states in %v\n", res.Calls, elapsed)
			return nil
		},
	}
	cmd.Flags().Bool("memo", false, "Cache values per state instead of recomputing subtrees")
	return cmd
}
