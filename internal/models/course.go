package models

// DifficultyLevel represents a CEFR difficulty level
type DifficultyLevel string

const (
	DifficultyA1 DifficultyLevel = "A1"
	DifficultyA2 DifficultyLevel = "A2"
	DifficultyB1 DifficultyLevel = "B1"
	DifficultyB2 DifficultyLevel = "B2"
	DifficultyC1 DifficultyLevel = "C1"
	DifficultyC2 DifficultyLevel = "C2"
)

// ValidDifficultyLevels lists every accepted CEFR level
var ValidDifficultyLevels = map[DifficultyLevel]bool{
	DifficultyA1: true,
	DifficultyA2: true,
	DifficultyB1: true,
	DifficultyB2: true,
	DifficultyC1: true,
	DifficultyC2: true,
}

// Course pairs a base language with a target language and owns ordered sections
type Course struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Image            string `json:"image,omitempty"`
	BaseLanguageID   int    `json:"baseLanguageId"`
	TargetLanguageID int    `json:"targetLanguageId"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Title            string `json:"title"`
	Image            string `json:"image,omitempty"`
	BaseLanguageID   int    `json:"baseLanguageId"`
	TargetLanguageID int    `json:"targetLanguageId"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
type UpdateCourseRequest struct {
	Title string `json:"title,omitempty"`
	Image string `json:"image,omitempty"`
}

// Section represents an ordered section within a course
type Section struct {
	ID              int             `json:"id"`
	CourseID        int             `json:"courseId"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	DifficultyLevel DifficultyLevel `json:"difficultyLevel,omitempty"`
	Order           int             `json:"order"`
	UnlockThreshold *int            `json:"unlockThreshold,omitempty"`
}

// CreateSectionRequest represents a request to create a section
type CreateSectionRequest struct {
	CourseID        int             `json:"courseId"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	DifficultyLevel DifficultyLevel `json:"difficultyLevel,omitempty"`
	Order           int             `json:"order,omitempty"` // 0 appends at the end
	UnlockThreshold *int            `json:"unlockThreshold,omitempty"`
}

// Unit represents an ordered unit within a section
type Unit struct {
	ID          int    `json:"id"`
	SectionID   int    `json:"sectionId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// CreateUnitRequest represents a request to create a unit
type CreateUnitRequest struct {
	SectionID   int    `json:"sectionId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order,omitempty"` // 0 appends at the end
}
