package entities

// Course is a language a user can learn.
type Course struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageSrc string `json:"imageSrc"`
	Units    []Unit `json:"units,omitempty"`
}

// IsEmpty reports whether the course has nothing to start with:
// no units, or a first unit without lessons.
func (c *Course) IsEmpty() bool {
	return len(c.Units) == 0 || len(c.Units[0].Lessons) == 0
}

// Unit groups ordered lessons inside a course.
type Unit struct {
	ID          int64    `json:"id"`
	CourseID    int64    `json:"courseId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Order       int      `json:"order"`
	Lessons     []Lesson `json:"lessons,omitempty"`
}
