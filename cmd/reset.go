package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all learner data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		if !yes && !newPrompter(cmd.InOrStdin(), out).confirm("Delete streak, tasks, results, and tutor history?") {
			fmt.Fprintln(out, "Nothing deleted.")
			return nil
		}
		if err := e.store.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		e.log.Info("learner data reset")
		fmt.Fprintln(out, "All learner data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
