package quiz

import "github.com/lashon-study/lashon/internal/tutor"

// feedbackDoneMsg ends the short pause after a correct answer. seq guards
// against a stale tick advancing a later question.
type feedbackDoneMsg struct {
	seq int
}

// explainedMsg carries a tutor response.
type explainedMsg struct {
	Explanation *tutor.Explanation
	Err         error
}

// savedMsg reports whether the finished quiz was stored.
type savedMsg struct {
	Err error
}
