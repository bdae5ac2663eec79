// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/aliskhannn/lingua/internal/domain/entities"
	"github.com/aliskhannn/lingua/internal/service"
)

const (
	msgWelcome = "<b>Welcome to Lingua!</b> 🦉\n\n" +
		"Pick a course to start learning. Answer challenges to earn XP, " +
		"and keep an eye on your hearts.\n\nSend /help for the list of commands."
	msgHelp = "<b>Commands</b>\n\n" +
		"/courses: pick or switch a course\n" +
		"/learn: your units and lessons\n" +
		"/lesson: continue the active lesson\n" +
		"/hearts: hearts, XP and subscription\n" +
		"/refill: refill hearts for 10 XP\n" +
		"/leaderboard: top ten learners\n" +
		"/quests: XP milestones"
	msgUnknownCommand    = "Unknown command. Send /help for the list of commands."
	msgInternalError     = "Something went wrong. Please try again later."
	msgNoCourses         = "There are no courses yet."
	msgPickCourse        = "Choose a course:"
	msgNoActiveCourse    = "You have not picked a course yet. Send /courses to start."
	msgCourseEmpty       = "This course has no lessons yet. Please pick another one."
	msgAllDone           = "🎉 You have completed every lesson in this course!"
	msgOutOfHearts       = "💔 You ran out of hearts. Send /refill to get them back for 10 XP, or practice a finished lesson."
	msgHeartsFull        = "❤️ Your hearts are already full."
	msgNotEnoughPoints   = "You need at least 10 XP to refill hearts."
	msgRefilled          = "❤️ Hearts refilled!"
	msgNoPendingQuestion = "Send /lesson to get a question."
	msgCorrect           = "✅ Correct!"
	msgPractice          = "✅ Correct! Practice restores a heart."
	msgEmptyLeaderboard  = "Nobody is on the leaderboard yet."
	msgLessonComplete    = "🎉 Lesson complete!"
)

func formatWrong(correct string) string {
	return fmt.Sprintf("❌ Not quite. The correct answer is <b>%s</b>.", html.EscapeString(correct))
}

func formatCourseSelected(c entities.Course) string {
	return fmt.Sprintf("📚 Active course: <b>%s</b>\n\nSend /lesson to begin.", html.EscapeString(c.Title))
}

// formatUnits lists units and lessons with a check mark per completed lesson.
func formatUnits(course string, units []entities.Unit, percentage int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>\n", html.EscapeString(course))

	for _, u := range units {
		fmt.Fprintf(&sb, "\n<b>%s</b>: %s\n", html.EscapeString(u.Title), html.EscapeString(u.Description))
		for i := range u.Lessons {
			mark := "▫️"
			if u.Lessons[i].Completed() {
				mark = "✅"
			}
			fmt.Fprintf(&sb, "%s %s\n", mark, html.EscapeString(u.Lessons[i].Title))
		}
	}

	fmt.Fprintf(&sb, "\nActive lesson: %s %d%%", buildProgressBar(percentage, 100, 10), percentage)
	return sb.String()
}

// formatChallenge renders a question with the lesson progress header.
func formatChallenge(lesson *entities.Lesson, c *entities.Challenge, hearts int, subscribed bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>  %s %d%%\n", html.EscapeString(lesson.Title), buildProgressBar(lesson.Percentage(), 100, 10), lesson.Percentage())
	sb.WriteString(formatHearts(hearts, subscribed))
	sb.WriteString("\n\n")

	switch c.Type {
	case entities.ChallengeAssist:
		fmt.Fprintf(&sb, "Select the correct meaning:\n<b>%s</b>\n\n<i>You can also type the answer.</i>", html.EscapeString(c.Question))
	default:
		fmt.Fprintf(&sb, "<b>%s</b>", html.EscapeString(c.Question))
	}
	return sb.String()
}

func formatHearts(hearts int, subscribed bool) string {
	if subscribed {
		return "❤️ ∞"
	}
	return strings.Repeat("❤️", hearts) + strings.Repeat("🤍", max(entities.MaxHearts-hearts, 0))
}

func formatStatus(p *entities.UserProgress, sub *entities.SubscriptionStatus) string {
	subscribed := sub != nil && sub.IsActive
	text := fmt.Sprintf("%s\n⚡ <b>%d XP</b>", formatHearts(p.Hearts, subscribed), p.Points)
	if p.ActiveCourse != nil {
		text += fmt.Sprintf("\n📚 %s", html.EscapeString(p.ActiveCourse.Title))
	}
	if subscribed {
		text += "\n⭐ Pro: unlimited hearts"
	}
	return text
}

func formatLeaderboard(entries []entities.LeaderboardEntry) string {
	if len(entries) == 0 {
		return msgEmptyLeaderboard
	}

	var sb strings.Builder
	sb.WriteString("<b>🏆 Leaderboard</b>\n")
	for i, e := range entries {
		fmt.Fprintf(&sb, "\n%d. %s: %d XP", i+1, html.EscapeString(e.UserName), e.Points)
	}
	return sb.String()
}

func formatQuests(quests []entities.QuestProgress) string {
	var sb strings.Builder
	sb.WriteString("<b>🎯 Quests</b>\n")
	for _, q := range quests {
		mark := "▫️"
		if q.Completed {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "\n%s %s\n%s %d%%\n", mark, html.EscapeString(q.Title), buildProgressBar(q.Percentage, 100, 10), q.Percentage)
	}
	return sb.String()
}

func formatOutcome(outcome service.HeartOutcome) string {
	switch outcome {
	case service.OutcomePractice:
		return msgPractice
	case service.OutcomeHearts:
		return msgOutOfHearts
	default:
		return msgCorrect
	}
}
