package telegram

import (
	"sync"

	"github.com/aliskhannn/lingua/internal/domain/entities"
)

// PendingChallenge is a challenge waiting for a typed answer.
type PendingChallenge struct {
	LessonID    int64
	ChallengeID int64
	Answer      string
}

// PendingStore keeps the challenge each chat is answering, in memory.
type PendingStore struct {
	mu      sync.RWMutex
	pending map[int64]PendingChallenge
}

// NewPendingStore creates a new PendingStore.
func NewPendingStore() *PendingStore {
	return &PendingStore{
		pending: make(map[int64]PendingChallenge),
	}
}

// Put records the challenge shown in chatID. Only challenges with a
// correct option can be answered by typing.
func (s *PendingStore) Put(chatID int64, c *entities.Challenge) {
	correct := c.CorrectOption()
	if c.Type != entities.ChallengeAssist || correct == nil {
		s.Delete(chatID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = PendingChallenge{
		LessonID:    c.LessonID,
		ChallengeID: c.ID,
		Answer:      correct.Text,
	}
}

// Get returns the pending challenge for chatID.
func (s *PendingStore) Get(chatID int64) (PendingChallenge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pending[chatID]
	return p, ok
}

// Delete forgets the pending challenge for chatID.
func (s *PendingStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
}
