package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pl "github.com/lashon-study/lashon/internal/placement"
	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/vocab"
)

func testRecorder(t *testing.T) (*record.Recorder, *store.Store) {
	t.Helper()
	st, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tracker, err := progress.NewTracker(context.Background(), st.StateRepo(), nil)
	require.NoError(t, err)
	return record.New(st.ResultRepo(), tracker, nil), st
}

var twoQuestions = []quiz.Question{
	{ID: "q1", Prompt: quiz.DailyPrompt, PromptTerm: "שלום", CorrectAnswer: "hello / peace", Options: []string{"water", "hello / peace", "house", "book"}},
	{ID: "q2", Prompt: quiz.DailyPrompt, PromptTerm: "מים", CorrectAnswer: "water", Options: []string{"water", "bread", "house", "book"}},
}

func TestRunLineQuiz(t *testing.T) {
	ctx := context.Background()
	rec, st := testRecorder(t)

	// "x" and "9" are rejected and re-asked.
	in := strings.NewReader("x\n9\n2\n2\n")
	var out bytes.Buffer
	s := quiz.NewFixedSession(twoQuestions)

	require.NoError(t, runLineQuiz(ctx, newPrompter(in, &out), s, store.KindDaily, rec))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Please enter one of the option numbers."))
	assert.Contains(t, text, "✓ Correct!")
	assert.Contains(t, text, "✗ The answer is: water")
	assert.Contains(t, text, "Score: 1 / 2  (50%)")
	assert.NotContains(t, text, "Level:")

	results, err := st.ResultRepo().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, store.KindDaily, results[0].Kind)
	assert.Empty(t, results[0].Level)
	assert.Equal(t, 1, rec.Tracker().State().Streak)
}

func TestRunLineQuiz_Quit(t *testing.T) {
	ctx := context.Background()
	for _, input := range []string{"q\n", "1\n", ""} {
		rec, st := testRecorder(t)
		var out bytes.Buffer
		err := runLineQuiz(ctx, newPrompter(strings.NewReader(input), &out), quiz.NewFixedSession(twoQuestions), store.KindDaily, rec)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "nothing was saved")

		results, err := st.ResultRepo().Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, results, "input %q", input)
	}
}

func TestRunLineQuiz_SmallPool(t *testing.T) {
	pool := []vocab.Entry{{ID: 1, Headword: "א", Gloss: "a"}}
	s := quiz.NewSession(quiz.NewEngine(quiz.Config{}), pool, 5)
	err := runLineQuiz(context.Background(), newPrompter(strings.NewReader(""), &bytes.Buffer{}), s, store.KindDaily, nil)
	assert.ErrorIs(t, err, quiz.ErrInsufficientData)
}

func TestRunLinePlacement(t *testing.T) {
	ctx := context.Background()
	rec, st := testRecorder(t)
	pool, err := vocab.Default()
	require.NoError(t, err)

	test := pl.New(pool.All(), pl.Options{VocabCount: 3})
	var out bytes.Buffer
	in := strings.NewReader(strings.Repeat("1\n", 100))
	require.NoError(t, runLinePlacement(ctx, newPrompter(in, &out), test, rec))

	text := out.String()
	for _, want := range []string{"== Vocabulary ==", "== Sentences ==", "== Reading ==", "Sections:", "Level:"} {
		assert.Contains(t, text, want)
	}
	assert.Equal(t, quiz.Finished, test.State())

	results, err := st.ResultRepo().Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, store.KindPlacement, results[0].Kind)
	assert.Len(t, results[0].Sections, 3)
}

func TestPrintStats(t *testing.T) {
	ctx := context.Background()
	rec, _ := testRecorder(t)

	var out bytes.Buffer
	require.NoError(t, printStats(ctx, &out, rec, 5))
	assert.Contains(t, out.String(), "No results yet")
	assert.Contains(t, out.String(), "[ ] Review today's new words (Dictionary)")

	require.NoError(t, rec.Game(ctx, store.KindSurvival, 4, 5))
	out.Reset()
	require.NoError(t, printStats(ctx, &out, rec, 5))
	text := out.String()
	assert.Contains(t, text, "Streak:        1 day")
	assert.Contains(t, text, "Best survival: 4")
	assert.Contains(t, text, "Accuracy: 80%")
	assert.Contains(t, text, "survival")
}

func TestFindEntry(t *testing.T) {
	pool, err := vocab.Default()
	require.NoError(t, err)

	tests := []struct {
		word string
		id   int
		ok   bool
	}{
		{"שלום", 1, true},
		{"shalom", 1, true},
		{"SHALOM", 1, true},
		{"zzzz-not-a-word", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			en, ok := findEntry(pool, tt.word)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.id, en.ID)
			}
		})
	}
}

func TestPrintWords(t *testing.T) {
	var out bytes.Buffer
	printWords(&out, []vocab.Entry{{ID: 1, Headword: "שלום", Translit: "shalom", Gloss: "hello / peace", Category: "greetings"}})
	assert.Contains(t, out.String(), "shalom")
	assert.Contains(t, out.String(), "1 words")

	out.Reset()
	printWords(&out, nil)
	assert.Equal(t, "No words found.\n", out.String())
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false}
	for input, want := range tests {
		p := newPrompter(strings.NewReader(input), &bytes.Buffer{})
		assert.Equal(t, want, p.confirm("sure?"), "input %q", input)
	}
}

func TestResolveDSN(t *testing.T) {
	dir := t.TempDir()
	newCmd := func() *cobra.Command {
		c := &cobra.Command{}
		c.Flags().String("db", "", "")
		return c
	}

	c := newCmd()
	require.NoError(t, c.Flags().Set("db", filepath.Join(dir, "flag", "a.db")))
	got, err := resolveDSN(c, store.DriverSQLite, filepath.Join(dir, "cfg.db"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flag", "a.db"), got)
	assert.DirExists(t, filepath.Join(dir, "flag"))

	got, err = resolveDSN(newCmd(), store.DriverSQLite, filepath.Join(dir, "cfg", "b.db"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cfg", "b.db"), got)

	pg := "postgres://lashon@localhost/lashon"
	got, err = resolveDSN(newCmd(), store.DriverPostgres, pg)
	require.NoError(t, err)
	assert.Equal(t, pg, got)

	t.Setenv("LASHON_DB", filepath.Join(dir, "env", "c.db"))
	got, err = resolveDSN(newCmd(), store.DriverSQLite, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env", "c.db"), got)
}
