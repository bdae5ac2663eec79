package entities

// Economy constants.
const (
	MaxHearts          = 5  // hearts a user starts with and refills to
	PointsToRefill     = 10 // points spent on a full refill
	PointsPerChallenge = 10 // points earned per completed challenge
)

// Profile defaults applied when the identity provider has no value.
const (
	DefaultUserName     = "User"
	DefaultUserImageSrc = "/mascot.svg"
)

// UserProgress is the per-user gamification state.
type UserProgress struct {
	UserID         string  `json:"userId"`
	UserName       string  `json:"userName"`
	UserImageSrc   string  `json:"userImageSrc"`
	ActiveCourseID *int64  `json:"activeCourseId"`
	ActiveCourse   *Course `json:"activeCourse,omitempty"`
	Hearts         int     `json:"hearts"`
	Points         int     `json:"points"`
}

// NewUserProgress creates progress for a user starting the given course.
func NewUserProgress(userID, userName, imageSrc string, courseID int64) *UserProgress {
	p := &UserProgress{
		UserID:         userID,
		ActiveCourseID: &courseID,
		Hearts:         MaxHearts,
	}
	p.SetProfile(userName, imageSrc)
	return p
}

// SetProfile updates display fields, falling back to defaults.
func (p *UserProgress) SetProfile(userName, imageSrc string) {
	if userName == "" {
		userName = DefaultUserName
	}
	if imageSrc == "" {
		imageSrc = DefaultUserImageSrc
	}
	p.UserName = userName
	p.UserImageSrc = imageSrc
}

// HasActiveCourse reports whether a course has been selected.
func (p *UserProgress) HasActiveCourse() bool {
	return p != nil && p.ActiveCourseID != nil
}

// HeartsFull reports whether no refill is needed.
func (p *UserProgress) HeartsFull() bool {
	return p.Hearts >= MaxHearts
}

// LoseHeart decrements hearts without going below zero.
func (p *UserProgress) LoseHeart() {
	p.Hearts = max(p.Hearts-1, 0)
}

// GainHeart increments hearts without exceeding MaxHearts.
func (p *UserProgress) GainHeart() {
	p.Hearts = min(p.Hearts+1, MaxHearts)
}

// Refill restores hearts and charges PointsToRefill.
func (p *UserProgress) Refill() {
	p.Hearts = MaxHearts
	p.Points -= PointsToRefill
}

// LeaderboardEntry is the public projection of UserProgress.
type LeaderboardEntry struct {
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserImageSrc string `json:"userImageSrc"`
	Points       int    `json:"points"`
}
