package entities

import (
	"encoding/json"
	"math"
)

// Lesson is an ordered set of challenges inside a unit.
type Lesson struct {
	ID         int64       `json:"id"`
	UnitID     int64       `json:"unitId"`
	Title      string      `json:"title"`
	Order      int         `json:"order"`
	Challenges []Challenge `json:"challenges,omitempty"`
}

// Completed reports whether every challenge of the lesson is completed.
// A lesson without challenges is never completed.
func (l *Lesson) Completed() bool {
	if len(l.Challenges) == 0 {
		return false
	}
	for i := range l.Challenges {
		if !l.Challenges[i].Completed() {
			return false
		}
	}
	return true
}

// MarshalJSON adds the derived completed flag.
func (l Lesson) MarshalJSON() ([]byte, error) {
	type plain Lesson
	return json.Marshal(struct {
		plain
		Completed bool `json:"completed"`
	}{plain(l), l.Completed()})
}

// HasUncompletedChallenge reports whether some challenge still has no
// progress or has a progress row that is not completed.
func (l *Lesson) HasUncompletedChallenge() bool {
	for i := range l.Challenges {
		if !l.Challenges[i].Completed() {
			return true
		}
	}
	return false
}

// Percentage returns the rounded share of completed challenges.
func (l *Lesson) Percentage() int {
	if len(l.Challenges) == 0 {
		return 0
	}

	completed := 0
	for i := range l.Challenges {
		if l.Challenges[i].Completed() {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(l.Challenges)) * 100))
}

// FirstUncompletedLesson walks lessons in unit order, then lesson order,
// and returns the first one with an uncompleted challenge.
// Returns nil when every lesson is done or empty.
func FirstUncompletedLesson(units []Unit) *Lesson {
	for i := range units {
		for j := range units[i].Lessons {
			lesson := &units[i].Lessons[j]
			if lesson.HasUncompletedChallenge() {
				return lesson
			}
		}
	}
	return nil
}
