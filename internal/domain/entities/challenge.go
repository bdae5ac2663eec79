package entities

import (
	"encoding/json"
	"fmt"
)

// ChallengeType describes how a challenge is presented.
type ChallengeType string

const (
	ChallengeSelect ChallengeType = "SELECT" // pick the picture matching the word
	ChallengeAssist ChallengeType = "ASSIST" // pick or type the translation
)

// ParseChallengeType validates a raw challenge type.
func ParseChallengeType(s string) (ChallengeType, error) {
	switch t := ChallengeType(s); t {
	case ChallengeSelect, ChallengeAssist:
		return t, nil
	default:
		return "", fmt.Errorf("unknown challenge type %q", s)
	}
}

// Challenge is a single question inside a lesson.
type Challenge struct {
	ID       int64               `json:"id"`
	LessonID int64               `json:"lessonId"`
	Type     ChallengeType       `json:"type"`
	Question string              `json:"question"`
	Order    int                 `json:"order"`
	Options  []ChallengeOption   `json:"challengeOptions,omitempty"`
	Progress []ChallengeProgress `json:"challengeProgress,omitempty"`
}

// Completed reports whether the user has at least one progress row for the
// challenge and all of them are completed.
func (c *Challenge) Completed() bool {
	if len(c.Progress) == 0 {
		return false
	}
	for _, p := range c.Progress {
		if !p.Completed {
			return false
		}
	}
	return true
}

// MarshalJSON adds the derived completed flag.
func (c Challenge) MarshalJSON() ([]byte, error) {
	type plain Challenge
	return json.Marshal(struct {
		plain
		Completed bool `json:"completed"`
	}{plain(c), c.Completed()})
}

// CorrectOption returns the first option marked correct, or nil.
func (c *Challenge) CorrectOption() *ChallengeOption {
	for i := range c.Options {
		if c.Options[i].Correct {
			return &c.Options[i]
		}
	}
	return nil
}

// Option returns the option with the given id, or nil.
func (c *Challenge) Option(id int64) *ChallengeOption {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i]
		}
	}
	return nil
}

// ChallengeOption is one answer to a challenge.
type ChallengeOption struct {
	ID          int64  `json:"id"`
	ChallengeID int64  `json:"challengeId"`
	Text        string `json:"text"`
	Correct     bool   `json:"correct"`
	ImageSrc    string `json:"imageSrc,omitempty"`
	AudioSrc    string `json:"audioSrc,omitempty"`
}

// ChallengeProgress records that a user has answered a challenge.
type ChallengeProgress struct {
	ID          int64  `json:"id"`
	UserID      string `json:"userId"`
	ChallengeID int64  `json:"challengeId"`
	Completed   bool   `json:"completed"`
}
