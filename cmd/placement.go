package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pl "github.com/lashon-study/lashon/internal/placement"
	"github.com/lashon-study/lashon/internal/record"
)

var placementCmd = &cobra.Command{
	Use:   "placement",
	Short: "Take the placement test in line mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		t := pl.New(e.pool.All(), pl.Options{VocabCount: e.cfg.Quiz.PlacementVocabCount})
		return runLinePlacement(cmd.Context(), newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), t, e.recorder)
	},
}

func runLinePlacement(ctx context.Context, p *prompter, t *pl.Test, rec *record.Recorder) error {
	if err := t.Start(); err != nil {
		return fmt.Errorf("start placement test: %w", err)
	}

	answered, lastSection := 0, -1
	for {
		sec, q, ok := t.Current()
		if !ok {
			break
		}
		if t.SectionIndex() != lastSection {
			lastSection = t.SectionIndex()
			fmt.Fprintf(p.out, "\n== %s ==\n%s\n", sec.Title, sec.Description)
		}

		oi, err := p.ask(fmt.Sprintf("Question %d of %d", answered+1, t.Total()), q)
		if err != nil {
			if errors.Is(err, errQuit) {
				fmt.Fprintln(p.out, "\nTest abandoned; nothing was saved.")
				return nil
			}
			return err
		}
		ans, err := t.Submit(q.Options[oi])
		if err != nil {
			return err
		}
		p.feedback(q, ans)
		answered++
	}

	res := t.Result()
	printScore(p.out, res.Score)
	printLevel(p.out, res.Level)
	fmt.Fprintln(p.out, "\nSections:")
	for _, b := range res.Breakdown {
		fmt.Fprintf(p.out, "  %-22s %d/%d correct\n", b.Title, b.Score.Correct, b.Score.Total)
	}

	if err := rec.Placement(ctx, t); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}
