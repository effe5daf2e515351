package models

// DefaultLessonXP is the XP value assigned when the author supplies none
const DefaultLessonXP = 100

// Lesson represents a lesson within a unit; owns ordered games
type Lesson struct {
	ID      int    `json:"id"`
	UnitID  int    `json:"unitId"`
	Title   string `json:"title"`
	ValueXP int    `json:"valueXp"`
	Order   int    `json:"order"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	UnitID  int    `json:"unitId"`
	Title   string `json:"title"`
	ValueXP int    `json:"valueXp,omitempty"`
	Order   int    `json:"order,omitempty"` // 0 appends at the end
}

// UpdateLessonRequest represents a request to update a lesson (partial update)
type UpdateLessonRequest struct {
	Title   string `json:"title,omitempty"`
	ValueXP *int   `json:"valueXp,omitempty"`
}
