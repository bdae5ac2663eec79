package entities

// Quest is a points milestone.
type Quest struct {
	Title string `json:"title"`
	Value int    `json:"value"`
}

// Quests lists milestones in ascending order.
var Quests = []Quest{
	{Title: "Earn 20 XP", Value: 20},
	{Title: "Earn 50 XP", Value: 50},
	{Title: "Earn 100 XP", Value: 100},
	{Title: "Earn 500 XP", Value: 500},
	{Title: "Earn 1000 XP", Value: 1000},
}

// QuestProgress is a quest evaluated against a user's points.
type QuestProgress struct {
	Quest
	Percentage int  `json:"percentage"`
	Completed  bool `json:"completed"`
}

// EvaluateQuests computes progress for every quest.
func EvaluateQuests(points int) []QuestProgress {
	out := make([]QuestProgress, 0, len(Quests))
	for _, q := range Quests {
		pct := 0
		if q.Value > 0 && points > 0 {
			pct = min(points*100/q.Value, 100)
		}
		out = append(out, QuestProgress{
			Quest:      q,
			Percentage: pct,
			Completed:  points >= q.Value,
		})
	}
	return out
}
