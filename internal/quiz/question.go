package quiz

import "slices"

// OptionCount is the number of answer options on every question.
const OptionCount = 4

// MinPoolSize is the smallest pool that can produce a question.
const MinPoolSize = OptionCount

// Question is one multiple-choice round.
type Question struct {
	ID            string
	Prompt        string
	PromptTerm    string
	CorrectAnswer string
	Options       []string

	// Passage is optional context shown above the prompt (reading questions).
	Passage string

	// EntryID is the vocabulary entry the question was built from, or 0
	// for hand-written questions.
	EntryID int
}

// HasOption reports whether s is one of the question's options.
func (q Question) HasOption(s string) bool {
	return slices.Contains(q.Options, s)
}

// CorrectIndex returns the index of the correct answer within Options, or -1.
func (q Question) CorrectIndex() int {
	return slices.Index(q.Options, q.CorrectAnswer)
}

// AnswerRecord is the outcome of one submitted answer.
type AnswerRecord struct {
	QuestionID   string
	ChosenAnswer string
	IsCorrect    bool
}

// Direction selects which side of an entry is shown and which is asked for.
type Direction int

const (
	// HeadwordToGloss shows the headword and asks for its meaning.
	HeadwordToGloss Direction = iota
	// GlossToHeadword shows the meaning and asks for the headword.
	GlossToHeadword
)

func (d Direction) String() string {
	if d == GlossToHeadword {
		return "reverse"
	}
	return "forward"
}
