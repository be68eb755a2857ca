package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-toolkit/internal/types"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Mark framework steps complete or incomplete",
}

var stepCompleteCmd = &cobra.Command{
	Use:   "complete <step>",
	Short: "Mark a step (1-9) complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStep(cmd, args[0], true)
	},
}

var stepUncompleteCmd = &cobra.Command{
	Use:   "uncomplete <step>",
	Short: "Mark a step (1-9) incomplete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStep(cmd, args[0], false)
	},
}

func init() {
	stepCmd.AddCommand(stepCompleteCmd, stepUncompleteCmd)
	rootCmd.AddCommand(stepCmd)
}

func runSetStep(cmd *cobra.Command, arg string, done bool) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("step must be a number from 1 to %d, got %q", types.StepCount, arg)
	}

	return withApp(cmd, func(a *app) error {
		if err := a.unsaved(a.tk.SetStepCompleted(types.StepID(n), done)); err != nil {
			return err
		}

		state := "incomplete"
		if done {
			state = "complete"
		}
		m := a.tk.Metrics()
		fmt.Fprintf(cmd.OutOrStdout(), "Step %d marked %s. %d of %d steps complete (%d%%).\n",
			n, state, m.CompletedStepCount, m.TotalSteps, m.ProgressPercentage)
		return nil
	})
}
