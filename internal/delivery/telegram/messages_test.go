package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/service"
)

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		name                   string
		current, total, length int
		want                   string
	}{
		{"empty total", 3, 0, 4, "[░░░░]"},
		{"half", 50, 100, 4, "[██░░]"},
		{"full", 100, 100, 4, "[████]"},
		{"over", 150, 100, 4, "[████]"},
		{"negative", -5, 100, 4, "[░░░░]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildProgressBar(tt.current, tt.total, tt.length))
		})
	}
}

func TestFormatHearts(t *testing.T) {
	assert.Equal(t, "❤️❤️❤️🤍🤍", formatHearts(3, false))
	assert.Equal(t, "🤍🤍🤍🤍🤍", formatHearts(0, false))
	assert.Equal(t, "❤️ ∞", formatHearts(0, true))
}

func TestFormatEscapesUserText(t *testing.T) {
	assert.Contains(t, formatWrong("<b>x</b>"), "&lt;b&gt;x&lt;/b&gt;")

	out := formatLeaderboard([]entities.LeaderboardEntry{
		{UserID: "tg:1", UserName: "A&B", Points: 30},
		{UserID: "tg:2", UserName: "Cid", Points: 20},
	})
	assert.Contains(t, out, "1. A&amp;B: 30 XP")
	assert.Contains(t, out, "2. Cid: 20 XP")

	assert.Equal(t, msgEmptyLeaderboard, formatLeaderboard(nil))
}

func TestFormatStatus(t *testing.T) {
	p := &entities.UserProgress{Hearts: 2, Points: 40, ActiveCourse: &entities.Course{Title: "Spanish"}}

	out := formatStatus(p, nil)
	assert.Contains(t, out, "40 XP")
	assert.Contains(t, out, "Spanish")
	assert.NotContains(t, out, "Pro")

	out = formatStatus(p, &entities.SubscriptionStatus{IsActive: true})
	assert.Contains(t, out, "∞")
	assert.Contains(t, out, "Pro")
}

func TestFormatOutcome(t *testing.T) {
	assert.Equal(t, msgCorrect, formatOutcome(service.OutcomeCompleted))
	assert.Equal(t, msgPractice, formatOutcome(service.OutcomePractice))
	assert.Equal(t, msgOutOfHearts, formatOutcome(service.OutcomeHearts))
}
