package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func done() []ChallengeProgress    { return []ChallengeProgress{{Completed: true}} }
func pending() []ChallengeProgress { return []ChallengeProgress{{Completed: false}} }

func TestChallengeCompleted(t *testing.T) {
	tests := []struct {
		name     string
		progress []ChallengeProgress
		want     bool
	}{
		{"no progress", nil, false},
		{"completed row", done(), true},
		{"incomplete row", pending(), false},
		{"mixed rows", []ChallengeProgress{{Completed: true}, {Completed: false}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Challenge{Progress: tt.progress}
			assert.Equal(t, tt.want, c.Completed())
		})
	}
}

func TestLessonCompleted(t *testing.T) {
	assert.False(t, (&Lesson{}).Completed(), "lesson without challenges is not completed")

	l := Lesson{Challenges: []Challenge{{Progress: done()}, {Progress: done()}}}
	assert.True(t, l.Completed())

	l.Challenges = append(l.Challenges, Challenge{})
	assert.False(t, l.Completed())
}

func TestLessonPercentage(t *testing.T) {
	assert.Equal(t, 0, (&Lesson{}).Percentage())

	l := Lesson{Challenges: []Challenge{{Progress: done()}, {}, {}}}
	assert.Equal(t, 33, l.Percentage())

	l.Challenges[1].Progress = done()
	assert.Equal(t, 67, l.Percentage())

	l.Challenges[2].Progress = done()
	assert.Equal(t, 100, l.Percentage())
}

func TestFirstUncompletedLesson(t *testing.T) {
	units := []Unit{
		{ID: 1, Lessons: []Lesson{
			{ID: 10, Challenges: []Challenge{{Progress: done()}}},
			{ID: 11}, // empty lessons are skipped
		}},
		{ID: 2, Lessons: []Lesson{
			{ID: 20, Challenges: []Challenge{{Progress: done()}, {Progress: pending()}}},
			{ID: 21, Challenges: []Challenge{{}}},
		}},
	}

	got := FirstUncompletedLesson(units)
	require.NotNil(t, got)
	assert.Equal(t, int64(20), got.ID)

	units[1].Lessons[0].Challenges[1].Progress = done()
	got = FirstUncompletedLesson(units)
	require.NotNil(t, got)
	assert.Equal(t, int64(21), got.ID)

	units[1].Lessons[1].Challenges[0].Progress = done()
	assert.Nil(t, FirstUncompletedLesson(units))
}

func TestCourseIsEmpty(t *testing.T) {
	assert.True(t, (&Course{}).IsEmpty())
	assert.True(t, (&Course{Units: []Unit{{}}}).IsEmpty())
	assert.False(t, (&Course{Units: []Unit{{Lessons: []Lesson{{}}}}}).IsEmpty())
}

func TestSubscriptionIsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	yesterdayNoon := now.Add(-23 * time.Hour)
	twoDaysAgo := now.Add(-48 * time.Hour)

	var nilSub *UserSubscription
	assert.False(t, nilSub.IsActive(now))

	assert.False(t, (&UserSubscription{StripeCurrentPeriodEnd: &yesterdayNoon}).IsActive(now), "price id required")
	assert.True(t, (&UserSubscription{StripePriceID: "price_1", StripeCurrentPeriodEnd: &yesterdayNoon}).IsActive(now), "grace day")
	assert.False(t, (&UserSubscription{StripePriceID: "price_1", StripeCurrentPeriodEnd: &twoDaysAgo}).IsActive(now))
	assert.False(t, (&UserSubscription{StripePriceID: "price_1"}).IsActive(now))
}

func TestUserProgressHearts(t *testing.T) {
	p := NewUserProgress("u1", "", "", 3)
	assert.Equal(t, MaxHearts, p.Hearts)
	assert.Equal(t, DefaultUserName, p.UserName)
	assert.Equal(t, DefaultUserImageSrc, p.UserImageSrc)
	assert.True(t, p.HasActiveCourse())
	assert.True(t, p.HeartsFull())

	p.GainHeart()
	assert.Equal(t, MaxHearts, p.Hearts)

	for range MaxHearts + 2 {
		p.LoseHeart()
	}
	assert.Equal(t, 0, p.Hearts)

	p.Points = 25
	p.Refill()
	assert.Equal(t, MaxHearts, p.Hearts)
	assert.Equal(t, 15, p.Points)
}

func TestEvaluateQuests(t *testing.T) {
	got := EvaluateQuests(60)
	require.Len(t, got, len(Quests))

	assert.True(t, got[0].Completed)
	assert.Equal(t, 100, got[0].Percentage)
	assert.True(t, got[1].Completed)
	assert.False(t, got[2].Completed)
	assert.Equal(t, 60, got[2].Percentage)
	assert.Equal(t, 6, got[4].Percentage)

	for _, q := range EvaluateQuests(0) {
		assert.Zero(t, q.Percentage)
		assert.False(t, q.Completed)
	}
}

func TestParseChallengeType(t *testing.T) {
	ct, err := ParseChallengeType("ASSIST")
	require.NoError(t, err)
	assert.Equal(t, ChallengeAssist, ct)

	_, err = ParseChallengeType("TYPE")
	require.Error(t, err)
}

func TestChallengeOptions(t *testing.T) {
	c := Challenge{Options: []ChallengeOption{{ID: 1}, {ID: 2, Correct: true}}}
	require.NotNil(t, c.CorrectOption())
	assert.Equal(t, int64(2), c.CorrectOption().ID)
	assert.Nil(t, c.Option(9))
	assert.Equal(t, int64(1), c.Option(1).ID)
}

func TestLessonJSONCarriesCompleted(t *testing.T) {
	l := Lesson{ID: 3, Title: "Basics", Challenges: []Challenge{{ID: 7, Progress: done()}}}

	raw, err := json.Marshal(l)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, true, got["completed"])
	assert.Equal(t, "Basics", got["title"])

	challenges, ok := got["challenges"].([]any)
	require.True(t, ok)
	first, ok := challenges[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, first["completed"])
	assert.Contains(t, first, "challengeProgress")
}
