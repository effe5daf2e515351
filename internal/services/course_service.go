package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

// CourseRepository is the interface that wraps methods for course, section and
// unit data access
type CourseRepository interface {
	GetAll(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id int) (*models.Course, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id int, course *models.Course) error
	Delete(ctx context.Context, id int) error
	GetSectionsByCourseID(ctx context.Context, courseID int) ([]models.Section, error)
	ExistsSectionByID(ctx context.Context, id int) (bool, error)
	// Method CreateSection inserts a section at the requested position,
	// shifting trailing sections so orders stay dense. Order 0 appends.
	CreateSection(ctx context.Context, section *models.Section) error
	DeleteSection(ctx context.Context, id int) error
	GetUnitsBySectionID(ctx context.Context, sectionID int) ([]models.Unit, error)
	ExistsUnitByID(ctx context.Context, id int) (bool, error)
	CreateUnit(ctx context.Context, unit *models.Unit) error
	DeleteUnit(ctx context.Context, id int) error
}

// LessonRepository is the interface that wraps methods for lesson data access
type LessonRepository interface {
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	GetByUnitID(ctx context.Context, unitID int) ([]models.Lesson, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error
	Delete(ctx context.Context, id int) error
	// Method GetCourseLanguages resolves the base and target language of the
	// course a lesson belongs to.
	GetCourseLanguages(ctx context.Context, lessonID int) (baseLanguageID, targetLanguageID int, err error)
}

type courseService struct {
	repo      CourseRepository
	lessons   LessonRepository
	languages LanguageChecker
	logger    *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(repo CourseRepository, lessons LessonRepository, languages LanguageChecker, logger *zap.Logger) *courseService {
	return &courseService{
		repo:      repo,
		lessons:   lessons,
		languages: languages,
		logger:    logger,
	}
}

// ListCourses retrieves all courses
func (s *courseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return nil, apperrors.NewPersistence("list courses", err)
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// GetCourse retrieves a course by its ID
func (s *courseService) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id", "course id is required")
	}

	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to get course", zap.Error(err), zap.Int("id", id))
		return nil, apperrors.NewPersistence("get course", err)
	}
	return course, nil
}

// CreateCourse creates a course pairing a base language with a target language
func (s *courseService) CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidation("title", "course title is required")
	}
	if req.BaseLanguageID == req.TargetLanguageID {
		return nil, apperrors.NewValidation("targetLanguageId", "base and target languages must differ")
	}

	for field, id := range map[string]int{
		"baseLanguageId":   req.BaseLanguageID,
		"targetLanguageId": req.TargetLanguageID,
	} {
		if id <= 0 {
			return nil, apperrors.NewValidation(field, "language id is required")
		}
		exists, err := s.languages.ExistsByID(ctx, id)
		if err != nil {
			s.logger.Error("failed to check language", zap.Error(err), zap.Int("languageId", id))
			return nil, apperrors.NewPersistence("check language", err)
		}
		if !exists {
			return nil, apperrors.NewNotFound("language", id)
		}
	}

	course := &models.Course{
		Title:            strings.TrimSpace(req.Title),
		Image:            req.Image,
		BaseLanguageID:   req.BaseLanguageID,
		TargetLanguageID: req.TargetLanguageID,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		s.logger.Error("failed to create course", zap.Error(err))
		return nil, apperrors.NewPersistence("create course", err)
	}

	return course, nil
}

// UpdateCourse changes the title or image of a course. Languages are fixed at
// creation.
func (s *courseService) UpdateCourse(ctx context.Context, id int, req *models.UpdateCourseRequest) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "course id is required")
	}

	course := &models.Course{
		Title: strings.TrimSpace(req.Title),
		Image: req.Image,
	}
	if err := s.repo.Update(ctx, id, course); err != nil {
		if apperrors.IsNotFound(err) || apperrors.IsValidation(err) {
			return err
		}
		s.logger.Error("failed to update course", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("update course", err)
	}
	return nil
}

// DeleteCourse removes a course and everything beneath it
func (s *courseService) DeleteCourse(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "course id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete course", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("delete course", err)
	}
	return nil
}

// ListSections retrieves the ordered sections of a course
func (s *courseService) ListSections(ctx context.Context, courseID int) ([]models.Section, error) {
	if courseID <= 0 {
		return nil, apperrors.NewValidation("courseId", "course id is required")
	}

	exists, err := s.repo.ExistsByID(ctx, courseID)
	if err != nil {
		s.logger.Error("failed to check course", zap.Error(err), zap.Int("courseId", courseID))
		return nil, apperrors.NewPersistence("check course", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("course", courseID)
	}

	sections, err := s.repo.GetSectionsByCourseID(ctx, courseID)
	if err != nil {
		s.logger.Error("failed to list sections", zap.Error(err), zap.Int("courseId", courseID))
		return nil, apperrors.NewPersistence("list sections", err)
	}
	if sections == nil {
		sections = []models.Section{}
	}
	return sections, nil
}

// CreateSection creates a section inside a course. Order 0 appends at the end;
// any other order inserts at that position and shifts trailing sections.
func (s *courseService) CreateSection(ctx context.Context, req *models.CreateSectionRequest) (*models.Section, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidation("title", "section title is required")
	}
	if req.Order < 0 {
		return nil, apperrors.NewValidation("order", "order must not be negative")
	}
	if req.DifficultyLevel != "" && !models.ValidDifficultyLevels[req.DifficultyLevel] {
		return nil, apperrors.NewValidation("difficultyLevel", "unknown difficulty level")
	}
	if req.UnlockThreshold != nil && (*req.UnlockThreshold < 0 || *req.UnlockThreshold > 100) {
		return nil, apperrors.NewValidation("unlockThreshold", "unlock threshold must be between 0 and 100")
	}

	exists, err := s.repo.ExistsByID(ctx, req.CourseID)
	if err != nil {
		s.logger.Error("failed to check course", zap.Error(err), zap.Int("courseId", req.CourseID))
		return nil, apperrors.NewPersistence("check course", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("course", req.CourseID)
	}

	section := &models.Section{
		CourseID:        req.CourseID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DifficultyLevel: req.DifficultyLevel,
		Order:           req.Order,
		UnlockThreshold: req.UnlockThreshold,
	}
	if err := s.repo.CreateSection(ctx, section); err != nil {
		s.logger.Error("failed to create section", zap.Error(err))
		return nil, apperrors.NewPersistence("create section", err)
	}

	return section, nil
}

// DeleteSection removes a section; the remaining sections of the course keep
// dense orders
func (s *courseService) DeleteSection(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "section id is required")
	}

	if err := s.repo.DeleteSection(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete section", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("delete section", err)
	}
	return nil
}

// ListUnits retrieves the ordered units of a section
func (s *courseService) ListUnits(ctx context.Context, sectionID int) ([]models.Unit, error) {
	if sectionID <= 0 {
		return nil, apperrors.NewValidation("sectionId", "section id is required")
	}

	exists, err := s.repo.ExistsSectionByID(ctx, sectionID)
	if err != nil {
		s.logger.Error("failed to check section", zap.Error(err), zap.Int("sectionId", sectionID))
		return nil, apperrors.NewPersistence("check section", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("section", sectionID)
	}

	units, err := s.repo.GetUnitsBySectionID(ctx, sectionID)
	if err != nil {
		s.logger.Error("failed to list units", zap.Error(err), zap.Int("sectionId", sectionID))
		return nil, apperrors.NewPersistence("list units", err)
	}
	if units == nil {
		units = []models.Unit{}
	}
	return units, nil
}

// CreateUnit creates a unit inside a section. Order 0 appends at the end.
func (s *courseService) CreateUnit(ctx context.Context, req *models.CreateUnitRequest) (*models.Unit, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidation("title", "unit title is required")
	}
	if req.Order < 0 {
		return nil, apperrors.NewValidation("order", "order must not be negative")
	}

	exists, err := s.repo.ExistsSectionByID(ctx, req.SectionID)
	if err != nil {
		s.logger.Error("failed to check section", zap.Error(err), zap.Int("sectionId", req.SectionID))
		return nil, apperrors.NewPersistence("check section", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("section", req.SectionID)
	}

	unit := &models.Unit{
		SectionID:   req.SectionID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.repo.CreateUnit(ctx, unit); err != nil {
		s.logger.Error("failed to create unit", zap.Error(err))
		return nil, apperrors.NewPersistence("create unit", err)
	}

	return unit, nil
}

// DeleteUnit removes a unit; the remaining units of the section keep dense
// orders
func (s *courseService) DeleteUnit(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "unit id is required")
	}

	if err := s.repo.DeleteUnit(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete unit", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("delete unit", err)
	}
	return nil
}

// ListLessons retrieves the ordered lessons of a unit
func (s *courseService) ListLessons(ctx context.Context, unitID int) ([]models.Lesson, error) {
	if unitID <= 0 {
		return nil, apperrors.NewValidation("unitId", "unit id is required")
	}

	exists, err := s.repo.ExistsUnitByID(ctx, unitID)
	if err != nil {
		s.logger.Error("failed to check unit", zap.Error(err), zap.Int("unitId", unitID))
		return nil, apperrors.NewPersistence("check unit", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("unit", unitID)
	}

	lessons, err := s.lessons.GetByUnitID(ctx, unitID)
	if err != nil {
		s.logger.Error("failed to list lessons", zap.Error(err), zap.Int("unitId", unitID))
		return nil, apperrors.NewPersistence("list lessons", err)
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return lessons, nil
}

// CreateLesson creates a lesson inside a unit. When no XP value is supplied
// the default applies. Order 0 appends at the end.
func (s *courseService) CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (*models.Lesson, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidation("title", "lesson title is required")
	}
	if req.ValueXP < 0 {
		return nil, apperrors.NewValidation("valueXp", "xp value must not be negative")
	}
	if req.Order < 0 {
		return nil, apperrors.NewValidation("order", "order must not be negative")
	}

	exists, err := s.repo.ExistsUnitByID(ctx, req.UnitID)
	if err != nil {
		s.logger.Error("failed to check unit", zap.Error(err), zap.Int("unitId", req.UnitID))
		return nil, apperrors.NewPersistence("check unit", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("unit", req.UnitID)
	}

	valueXP := req.ValueXP
	if valueXP == 0 {
		valueXP = models.DefaultLessonXP
	}

	lesson := &models.Lesson{
		UnitID:  req.UnitID,
		Title:   strings.TrimSpace(req.Title),
		ValueXP: valueXP,
		Order:   req.Order,
	}
	if err := s.lessons.Create(ctx, lesson); err != nil {
		s.logger.Error("failed to create lesson", zap.Error(err))
		return nil, apperrors.NewPersistence("create lesson", err)
	}

	return lesson, nil
}

// UpdateLesson changes the title or XP value of a lesson
func (s *courseService) UpdateLesson(ctx context.Context, id int, req *models.UpdateLessonRequest) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "lesson id is required")
	}
	if req.ValueXP != nil && *req.ValueXP <= 0 {
		return apperrors.NewValidation("valueXp", "xp value must be positive")
	}

	if err := s.lessons.Update(ctx, id, req); err != nil {
		if apperrors.IsNotFound(err) || apperrors.IsValidation(err) {
			return err
		}
		s.logger.Error("failed to update lesson", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("update lesson", err)
	}
	return nil
}

// DeleteLesson removes a lesson; the remaining lessons of the unit keep dense
// orders
func (s *courseService) DeleteLesson(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "lesson id is required")
	}

	if err := s.lessons.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete lesson", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("delete lesson", err)
	}
	return nil
}
