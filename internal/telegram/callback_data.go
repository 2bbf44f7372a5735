package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionAnswer = "ans"
	actionAgain  = "again"
)

var errBadCallback = errors.New("telegram: malformed callback data")

// callbackData is the parsed form of an inline button payload.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// tokenLen is how much of a session ID goes into a button payload.
// Telegram caps callback data at 64 bytes.
const tokenLen = 8

// sessionToken shortens a session ID for use in callback data.
func sessionToken(id string) string {
	if len(id) > tokenLen {
		return id[:tokenLen]
	}
	return id
}

// answer is a decoded press on an option button.
type answer struct {
	Token string // sessionToken of the quiz the button was sent for
	Q     int
	O     int
}

// answerCallback encodes the choice of option oi on question qi of the
// quiz identified by token.
func answerCallback(token string, qi, oi int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{token, strconv.Itoa(qi), strconv.Itoa(oi)},
	}.encode()
}

// parseAnswer reads the quiz token and the question and option indexes
// of an answer callback.
func parseAnswer(cd callbackData) (answer, error) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 || cd.Params[0] == "" {
		return answer{}, errBadCallback
	}
	qi, err := strconv.Atoi(cd.Params[1])
	if err != nil || qi < 0 {
		return answer{}, errBadCallback
	}
	oi, err := strconv.Atoi(cd.Params[2])
	if err != nil || oi < 0 {
		return answer{}, errBadCallback
	}
	return answer{Token: cd.Params[0], Q: qi, O: oi}, nil
}
