package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionCourse = "course" // course:<courseID>
	actionAnswer = "answer" // answer:<lessonID>:<challengeID>:<optionID>
	actionLesson = "lesson" // lesson
	actionRefill = "refill" // refill
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// int64Params parses exactly n positive ids from the params.
func (cd callbackData) int64Params(n int) ([]int64, error) {
	if len(cd.Params) != n {
		return nil, errMalformedCallback
	}
	out := make([]int64, 0, n)
	for _, p := range cd.Params {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil || v <= 0 {
			return nil, errMalformedCallback
		}
		out = append(out, v)
	}
	return out, nil
}

func buildCourseCallback(courseID int64) string {
	return callbackData{
		Action: actionCourse,
		Params: []string{strconv.FormatInt(courseID, 10)},
	}.encode()
}

func buildAnswerCallback(lessonID, challengeID, optionID int64) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			strconv.FormatInt(lessonID, 10),
			strconv.FormatInt(challengeID, 10),
			strconv.FormatInt(optionID, 10),
		},
	}.encode()
}

func buildLessonCallback() string {
	return actionLesson
}

func buildRefillCallback() string {
	return actionRefill
}
