package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lashon-study/lashon/internal/quiz"
)

// errQuit is returned when the learner types q or input ends.
var errQuit = errors.New("quiz abandoned")

// prompter asks multiple-choice questions over a line-based terminal.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints q and reads an option number until it gets a valid one.
func (p *prompter) ask(header string, q quiz.Question) (int, error) {
	fmt.Fprintln(p.out)
	if header != "" {
		fmt.Fprintln(p.out, header)
	}
	if q.Passage != "" {
		fmt.Fprintf(p.out, "\n  %s\n\n", q.Passage)
	}
	fmt.Fprintf(p.out, "%s  %s\n", q.Prompt, q.PromptTerm)
	for i, opt := range q.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(p.out, "Answer [1-%d, q to quit]: ", len(q.Options))
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, fmt.Errorf("read answer: %w", err)
			}
			return 0, errQuit
		}
		line := strings.TrimSpace(p.in.Text())
		if strings.EqualFold(line, "q") {
			return 0, errQuit
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(q.Options) {
			return n - 1, nil
		}
		fmt.Fprintln(p.out, "Please enter one of the option numbers.")
	}
}

// feedback prints the verdict for an answered question.
func (p *prompter) feedback(q quiz.Question, rec quiz.AnswerRecord) {
	if rec.IsCorrect {
		fmt.Fprintln(p.out, "✓ Correct!")
		return
	}
	fmt.Fprintf(p.out, "✗ The answer is: %s\n", q.CorrectAnswer)
}

// confirm asks a yes/no question; anything but y or yes is no.
func (p *prompter) confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	if !p.in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(p.in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

func printScore(out io.Writer, sc quiz.Score) {
	fmt.Fprintf(out, "\nScore: %d / %d  (%d%%)\n", sc.Correct, sc.Total, sc.Percent())
}

// printLevel shows the suggested level. Only placement results carry one.
func printLevel(out io.Writer, level quiz.Level) {
	fmt.Fprintf(out, "Level: %s\n%s\n", level.Name(), level.Advice())
}
