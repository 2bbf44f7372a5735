package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a daily quiz in line mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		reverse, _ := cmd.Flags().GetBool("reverse")
		category, _ := cmd.Flags().GetString("category")

		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		if count <= 0 {
			count = e.cfg.Quiz.DailyCount
		}
		entries := e.pool.All()
		if category != "" {
			entries = e.pool.ByCategory(category)
			if len(entries) == 0 {
				return fmt.Errorf("unknown category %q", category)
			}
		}

		qcfg := quiz.Config{}
		kind := store.KindDaily
		if reverse {
			qcfg.Direction = quiz.GlossToHeadword
			kind = store.KindReverse
		}
		s := quiz.NewSession(quiz.NewEngine(qcfg), entries, count)
		return runLineQuiz(cmd.Context(), newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), s, kind, e.recorder)
	},
}

func init() {
	quizCmd.Flags().Int("count", 0, "Number of questions (default quiz.daily_count)")
	quizCmd.Flags().Bool("reverse", false, "Show the meaning and ask for the Hebrew word")
	quizCmd.Flags().String("category", "", "Only draw words from this category")
}

// runLineQuiz plays s to the end and records it under kind. Quitting
// early records nothing.
func runLineQuiz(ctx context.Context, p *prompter, s *quiz.Session, kind string, rec *record.Recorder) error {
	if err := s.Start(); err != nil {
		if errors.Is(err, quiz.ErrInsufficientData) {
			return fmt.Errorf("need at least %d words to build a quiz: %w", quiz.MinPoolSize, err)
		}
		return err
	}

	for {
		q, ok := s.Current()
		if !ok {
			break
		}
		oi, err := p.ask(fmt.Sprintf("Question %d of %d", s.Index()+1, s.Len()), q)
		if err != nil {
			if errors.Is(err, errQuit) {
				fmt.Fprintln(p.out, "\nQuiz abandoned; nothing was saved.")
				return nil
			}
			return err
		}
		ans, err := s.SubmitIndex(oi)
		if err != nil {
			return err
		}
		p.feedback(q, ans)
	}

	printScore(p.out, s.Score())
	if err := rec.Quiz(ctx, kind, s); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}
