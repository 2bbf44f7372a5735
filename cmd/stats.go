package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/record"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak, today's tasks, and recent results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		return printStats(cmd.Context(), cmd.OutOrStdout(), e.recorder, limit)
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent results to show")
}

func printStats(ctx context.Context, out io.Writer, rec *record.Recorder, limit int) error {
	if t := rec.Tracker(); t != nil {
		st := t.State()
		fmt.Fprintf(out, "Streak:        %s\n", progress.StreakLabel(st.Streak))
		fmt.Fprintf(out, "Best survival: %d\n", st.BestSurvival)
		fmt.Fprintf(out, "\nToday (%d/%d):\n", st.CompletedCount(), len(st.Tasks))
		for _, task := range st.Tasks {
			mark := " "
			if task.Done {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %s\n", mark, task.Label)
		}
	}

	repo := rec.Results()
	if repo == nil {
		return nil
	}
	total, err := repo.Stats(ctx, "")
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}
	fmt.Fprintf(out, "\nResults: %d", total.Count)
	if total.Total > 0 {
		fmt.Fprintf(out, "  Accuracy: %d%%", total.Correct*100/total.Total)
	}
	fmt.Fprintln(out)

	recent, err := repo.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	if len(recent) == 0 {
		fmt.Fprintln(out, "No results yet. Try `lashon quiz`.")
		return nil
	}
	fmt.Fprintln(out)
	for _, r := range recent {
		fmt.Fprintf(out, "  %s  %-10s %3d/%-3d %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Kind, r.Correct, r.Total, r.Level)
	}
	return nil
}
