package storage

import "github.com/aliskhannn/lingua/internal/domain/entities"

// AssembleUnits nests lessons, challenges and progress rows under units.
// Every input slice must already be in display order; the order is kept.
// Children whose parent is absent are dropped.
func AssembleUnits(
	units []entities.Unit,
	lessons []entities.Lesson,
	challenges []entities.Challenge,
	progress []entities.ChallengeProgress,
) []entities.Unit {
	challenges = AttachProgress(challenges, progress)

	byLesson := make(map[int64][]entities.Challenge, len(lessons))
	for _, c := range challenges {
		byLesson[c.LessonID] = append(byLesson[c.LessonID], c)
	}

	byUnit := make(map[int64][]entities.Lesson, len(units))
	for _, l := range lessons {
		l.Challenges = byLesson[l.ID]
		byUnit[l.UnitID] = append(byUnit[l.UnitID], l)
	}

	out := make([]entities.Unit, 0, len(units))
	for _, u := range units {
		u.Lessons = byUnit[u.ID]
		out = append(out, u)
	}
	return out
}

// AttachOptions sets each challenge's options, keeping option order.
func AttachOptions(challenges []entities.Challenge, options []entities.ChallengeOption) []entities.Challenge {
	byChallenge := make(map[int64][]entities.ChallengeOption, len(challenges))
	for _, o := range options {
		byChallenge[o.ChallengeID] = append(byChallenge[o.ChallengeID], o)
	}
	for i := range challenges {
		challenges[i].Options = byChallenge[challenges[i].ID]
	}
	return challenges
}

// AttachProgress sets each challenge's progress rows.
func AttachProgress(challenges []entities.Challenge, progress []entities.ChallengeProgress) []entities.Challenge {
	byChallenge := make(map[int64][]entities.ChallengeProgress, len(challenges))
	for _, p := range progress {
		byChallenge[p.ChallengeID] = append(byChallenge[p.ChallengeID], p)
	}
	for i := range challenges {
		challenges[i].Progress = byChallenge[challenges[i].ID]
	}
	return challenges
}
