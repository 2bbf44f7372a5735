package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/store"
)

const (
	msgWelcome = "<b>Shalom!</b> שלום\n\n" +
		"I quiz you on Hebrew vocabulary, one word at a time.\n\n" + msgHelp

	msgHelp = "/quiz - start a daily quiz\n" +
		"/stats - your streak and results\n" +
		"/help - show this list"

	msgUnknownCommand = "I don't know that command. Try /help."
	msgNoQuiz         = "No quiz in progress. Send /quiz to start one."
	msgStale          = "That question was already answered."
	msgQuizFailed     = "Could not start a quiz right now. Please try again later."
	msgStatsFailed    = "Could not load your stats right now."
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, messageID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

// questionText renders question qi of n.
func questionText(q quiz.Question, qi, n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<i>Question %d of %d</i>\n\n", qi+1, n)
	sb.WriteString(html.EscapeString(q.Prompt))
	sb.WriteString("\n\n<b>")
	sb.WriteString(html.EscapeString(q.PromptTerm))
	sb.WriteString("</b>")
	return sb.String()
}

// buildAnswerKeyboard puts every option on its own row.
func buildAnswerKeyboard(token string, q quiz.Question, qi int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for oi, opt := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, answerCallback(token, qi, oi)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func buildAgainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Play again", callbackData{Action: actionAgain}.encode()),
	))
}

// verdictText replaces the question once it has been answered.
func verdictText(q quiz.Question, qi, n int, rec quiz.AnswerRecord) string {
	var sb strings.Builder
	sb.WriteString(questionText(q, qi, n))
	sb.WriteString("\n\n")
	if rec.IsCorrect {
		sb.WriteString("✅ Correct: ")
	} else {
		fmt.Fprintf(&sb, "❌ You chose %s. Answer: ", html.EscapeString(rec.ChosenAnswer))
	}
	sb.WriteString("<b>" + html.EscapeString(q.CorrectAnswer) + "</b>")
	return sb.String()
}

func summaryText(sc quiz.Score, saveErr error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Quiz complete</b>\n\nScore: %d / %d (%d%%)", sc.Correct, sc.Total, sc.Percent())
	if saveErr != nil {
		sb.WriteString("\n\n<i>The result could not be saved.</i>")
	}
	return sb.String()
}

func statsText(st *progress.State, rs *store.ResultStats) string {
	var sb strings.Builder
	sb.WriteString("<b>Your progress</b>\n\n")
	if st != nil {
		fmt.Fprintf(&sb, "Streak: %s\n", progress.StreakLabel(st.Streak))
		fmt.Fprintf(&sb, "Today's tasks: %d/%d\n", st.CompletedCount(), len(st.Tasks))
		fmt.Fprintf(&sb, "Best survival: %d\n", st.BestSurvival)
	}
	if rs != nil {
		fmt.Fprintf(&sb, "Results: %d\n", rs.Count)
		if rs.Total > 0 {
			fmt.Fprintf(&sb, "Accuracy: %d%%\n", rs.Correct*100/rs.Total)
		}
	}
	if st == nil && rs == nil {
		sb.WriteString("Nothing recorded yet.")
	}
	return strings.TrimRight(sb.String(), "\n")
}
