package placement

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/vocab"
)

func makePool(n int) []vocab.Entry {
	pool := make([]vocab.Entry, n)
	for i := range pool {
		pool[i] = vocab.Entry{ID: i + 1, Headword: fmt.Sprintf("w%d", i), Gloss: fmt.Sprintf("g%d", i)}
	}
	return pool
}

func newTest(t *testing.T, poolSize int) *Test {
	t.Helper()
	pt := New(makePool(poolSize), Options{Rand: rand.New(rand.NewPCG(1, 2))})
	require.NoError(t, pt.Start())
	return pt
}

func answerAll(t *testing.T, pt *Test, correct func(sec SectionID) bool) {
	t.Helper()
	for {
		sec, q, ok := pt.Current()
		if !ok {
			return
		}
		choice := q.CorrectAnswer
		if !correct(sec.ID) {
			for _, o := range q.Options {
				if o != q.CorrectAnswer {
					choice = o
					break
				}
			}
		}
		_, err := pt.Submit(choice)
		require.NoError(t, err)
	}
}

func TestTest_Sections(t *testing.T) {
	pt := newTest(t, 20)

	secs := pt.Sections()
	require.Len(t, secs, 3)
	assert.Equal(t, SectionVocab, secs[0].ID)
	assert.Equal(t, DefaultVocabCount, secs[0].Len())
	assert.Equal(t, SectionSentences, secs[1].ID)
	assert.Equal(t, 3, secs[1].Len())
	assert.Equal(t, SectionReading, secs[2].ID)
	assert.Equal(t, 1, secs[2].Len())
	assert.Equal(t, 12, pt.Total())

	_, q, ok := pt.Current()
	require.True(t, ok)
	assert.Equal(t, "vocab-0", q.ID)
	assert.Equal(t, quiz.PlacementPrompt, q.Prompt)
}

func TestTest_SmallPoolDropsVocab(t *testing.T) {
	pt := newTest(t, 3)
	secs := pt.Sections()
	require.Len(t, secs, 2)
	assert.Equal(t, SectionSentences, secs[0].ID)
	assert.Equal(t, 4, pt.Total())
}

func TestTest_CrossesSections(t *testing.T) {
	pt := newTest(t, 20)
	answerAll(t, pt, func(SectionID) bool { return true })

	assert.Equal(t, quiz.Finished, pt.State())
	answers := pt.Answers()
	require.Len(t, answers, 12)
	assert.Equal(t, SectionVocab, answers[0].Section)
	assert.Equal(t, "sent-1", answers[8].QuestionID)
	assert.Equal(t, SectionReading, answers[11].Section)

	_, err := pt.Submit("anything")
	assert.ErrorIs(t, err, quiz.ErrSessionFinished)
}

func TestTest_Result(t *testing.T) {
	tests := []struct {
		name      string
		correct   func(SectionID) bool
		wantScore quiz.Score
		wantLevel quiz.Level
	}{
		{"all right", func(SectionID) bool { return true }, quiz.Score{Correct: 12, Total: 12}, quiz.Advanced},
		{"all wrong", func(SectionID) bool { return false }, quiz.Score{Correct: 0, Total: 12}, quiz.Beginner},
		// 4/12 = 33%
		{"static only", func(s SectionID) bool { return s != SectionVocab }, quiz.Score{Correct: 4, Total: 12}, quiz.Beginner},
		// 8/12 = 66%
		{"vocab only", func(s SectionID) bool { return s == SectionVocab }, quiz.Score{Correct: 8, Total: 12}, quiz.Intermediate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := newTest(t, 20)
			answerAll(t, pt, tt.correct)

			r := pt.Result()
			assert.Equal(t, tt.wantScore, r.Score)
			assert.Equal(t, tt.wantLevel, r.Level)
			require.Len(t, r.Breakdown, 3)
			sum := 0
			for _, b := range r.Breakdown {
				sum += b.Score.Correct
			}
			assert.Equal(t, tt.wantScore.Correct, sum)
		})
	}
}

func TestTest_Restart(t *testing.T) {
	pt := newTest(t, 20)
	_, q, _ := pt.Current()
	_, err := pt.Submit(q.CorrectAnswer)
	require.NoError(t, err)

	require.NoError(t, pt.Restart())
	assert.Empty(t, pt.Answers())
	assert.Equal(t, 0, pt.SectionIndex())
	assert.Equal(t, quiz.InProgress, pt.State())
}

func TestTest_NotStarted(t *testing.T) {
	pt := New(makePool(10), Options{})
	_, err := pt.Submit("x")
	assert.ErrorIs(t, err, quiz.ErrNotStarted)
}
