package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gridmdp/internal/config"
	"gridmdp/internal/env"
)

func newEnvironment(cmd *cobra.Command, cfg *config.Config) (*env.Environment, error) {
	grid, err := env.NewGrid(cfg.Env.Grid)
	if err != nil {
		return nil, err
	}
	return env.New(grid,
		env.WithMoveProb(*cfg.Env.MoveProb),
		env.WithDefaultReward(*cfg.Env.DefaultReward),
		env.WithLogger(newLogger(cmd, cfg)),
	)
}

func newTransitionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Print the next-state distribution for a cell and intended action",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			e, err := newEnvironment(cmd, cfg)
			if err != nil {
				return err
			}

			state := e.Grid().Start()
			if cmd.Flags().Changed("row") {
				state.Row, _ = cmd.Flags().GetInt("row")
			}
			if cmd.Flags().Changed("col") {
				state.Column, _ = cmd.Flags().GetInt("col")
			}
			name, _ := cmd.Flags().GetString("action")
			action, err := env.ParseAction(name)
			if err != nil {
				return err
			}

			probs := e.Transitions(state, action)
			out := cmd.OutOrStdout()

			if jsonOutput(cmd) {
				type entry struct {
					Position    env.Position `json:"position"`
					Probability float64      `json:"probability"`
				}
				entries := make([]entry, 0, len(probs))
				for _, p := range probs.Positions() {
					entries = append(entries, entry{Position: p, Probability: probs[p]})
				}
				return json.NewEncoder(out).Encode(map[string]any{
					"state":       state,
					"action":      action,
					"transitions": entries,
				})
			}

			if len(probs) == 0 {
				fmt.Fprintf(out, "%v is not actionable: no transitions\n", state)
				return nil
			}
			fmt.Fprintf(out, "from %v intending %v:\n", state, action)
			for _, p := range probs.Positions() {
				fmt.Fprintf(out, "  %v  %.3f\n", p, probs[p])
			}
			fmt.Fprintf(out, "  total %.3f\n", probs.Total())
			return nil
		},
	}
	cmd.Flags().Int("row", 0, "Row of the source cell (default: start cell)")
	cmd.Flags().Int("col", 0, "Column of the source cell (default: start cell)")
	cmd.Flags().String("action", "up", "Intended action: up, down, left or right")
	return cmd
}

func newStatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List every non-blocked cell with its reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			e, err := newEnvironment(cmd, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return json.NewEncoder(out).Encode(map[string]any{
					"states":  e.States(),
					"actions": e.Actions(),
				})
			}
			for _, s := range e.States() {
				reward, done := e.Reward(s)
				marker := ""
				if done {
					marker = " terminal"
				}
				fmt.Fprintf(out, "%v reward %+.2f%s\n", s, reward, marker)
			}
			return nil
		},
	}
}
