package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/lingua/internal/domain/entities"
)

func assistChallenge() *entities.Challenge {
	return &entities.Challenge{
		ID:       2,
		LessonID: 1,
		Type:     entities.ChallengeAssist,
		Question: "the man",
		Options: []entities.ChallengeOption{
			{ID: 10, ChallengeID: 2, Text: "la mujer"},
			{ID: 11, ChallengeID: 2, Text: "el hombre", Correct: true},
		},
	}
}

func TestPendingStorePutGetDelete(t *testing.T) {
	s := NewPendingStore()

	s.Put(42, assistChallenge())
	p, ok := s.Get(42)
	require.True(t, ok)
	assert.Equal(t, PendingChallenge{LessonID: 1, ChallengeID: 2, Answer: "el hombre"}, p)

	_, ok = s.Get(43)
	assert.False(t, ok)

	s.Delete(42)
	_, ok = s.Get(42)
	assert.False(t, ok)
}

func TestPendingStoreSkipsUntypeableChallenges(t *testing.T) {
	s := NewPendingStore()
	s.Put(42, assistChallenge())

	sel := assistChallenge()
	sel.Type = entities.ChallengeSelect
	s.Put(42, sel)
	_, ok := s.Get(42)
	assert.False(t, ok, "select challenges replace the previous pending one")

	noAnswer := assistChallenge()
	noAnswer.Options = noAnswer.Options[:1]
	s.Put(42, noAnswer)
	_, ok = s.Get(42)
	assert.False(t, ok)
}
