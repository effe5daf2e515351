package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/models"
)

// CoursesService is the interface that wraps methods for course structure business logic.
//
// Sections, units and lessons are ordered dense 1..N within their parent:
// creates shift trailing rows, deletes compact them.
type CoursesService interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int, req *models.UpdateCourseRequest) error
	DeleteCourse(ctx context.Context, id int) error
	ListSections(ctx context.Context, courseID int) ([]models.Section, error)
	CreateSection(ctx context.Context, req *models.CreateSectionRequest) (*models.Section, error)
	DeleteSection(ctx context.Context, id int) error
	ListUnits(ctx context.Context, sectionID int) ([]models.Unit, error)
	CreateUnit(ctx context.Context, req *models.CreateUnitRequest) (*models.Unit, error)
	DeleteUnit(ctx context.Context, id int) error
	ListLessons(ctx context.Context, unitID int) ([]models.Lesson, error)
	CreateLesson(ctx context.Context, req *models.CreateLessonRequest) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, id int, req *models.UpdateLessonRequest) error
	DeleteLesson(ctx context.Context, id int) error
}

// CoursesHandler handles HTTP requests for the course structure
type CoursesHandler struct {
	BaseHandler
	service CoursesService
}

// NewCoursesHandler creates a new courses handler
func NewCoursesHandler(svc CoursesService, logger *zap.Logger) *CoursesHandler {
	return &CoursesHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all course structure routes
func (h *CoursesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Post("/", h.CreateCourse)
			r.Get("/{id}", h.GetCourse)
			r.Patch("/{id}", h.UpdateCourse)
			r.Delete("/{id}", h.DeleteCourse)
			r.Get("/{id}/sections", h.ListSections)
		})
		r.Route("/sections", func(r chi.Router) {
			r.Post("/", h.CreateSection)
			r.Delete("/{id}", h.DeleteSection)
			r.Get("/{id}/units", h.ListUnits)
		})
		r.Route("/units", func(r chi.Router) {
			r.Post("/", h.CreateUnit)
			r.Delete("/{id}", h.DeleteUnit)
			r.Get("/{id}/lessons", h.ListLessons)
		})
		r.Route("/lessons", func(r chi.Router) {
			r.Post("/", h.CreateLesson)
			r.Patch("/{id}", h.UpdateLesson)
			r.Delete("/{id}", h.DeleteLesson)
		})
	})
}

// ListCourses handles GET /api/v1/admin/courses
// @Summary List courses
// @Tags admin
// @Produce json
// @Success 200 {array} models.Course
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/courses [get]
func (h *CoursesHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /api/v1/admin/courses/{id}
// @Summary Get course by ID
// @Tags admin
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/courses/{id} [get]
func (h *CoursesHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, course)
}

// CreateCourse handles POST /api/v1/admin/courses
// @Summary Create a course
// @Description Create a course pairing a base language with a target language
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/courses [post]
func (h *CoursesHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	course, err := h.service.CreateCourse(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PATCH /api/v1/admin/courses/{id}
// @Summary Update a course
// @Tags admin
// @Accept json
// @Param id path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/courses/{id} [patch]
func (h *CoursesHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateCourseRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateCourse(r.Context(), id, &req); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /api/v1/admin/courses/{id}
// @Summary Delete a course
// @Description Delete a course and everything beneath it
// @Tags admin
// @Param id path int true "Course ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/courses/{id} [delete]
func (h *CoursesHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCourse(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSections handles GET /api/v1/admin/courses/{id}/sections
// @Summary List sections of a course
// @Tags admin
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.Section
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/courses/{id}/sections [get]
func (h *CoursesHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	sections, err := h.service.ListSections(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, sections)
}

// CreateSection handles POST /api/v1/admin/sections
// @Summary Create a section
// @Description Create a section; order 0 appends, otherwise inserts at that position
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateSectionRequest true "Section"
// @Success 201 {object} models.Section
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/sections [post]
func (h *CoursesHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSectionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	section, err := h.service.CreateSection(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, section)
}

// DeleteSection handles DELETE /api/v1/admin/sections/{id}
// @Summary Delete a section
// @Tags admin
// @Param id path int true "Section ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/sections/{id} [delete]
func (h *CoursesHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSection(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUnits handles GET /api/v1/admin/sections/{id}/units
// @Summary List units of a section
// @Tags admin
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {array} models.Unit
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/sections/{id}/units [get]
func (h *CoursesHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	units, err := h.service.ListUnits(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, units)
}

// CreateUnit handles POST /api/v1/admin/units
// @Summary Create a unit
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateUnitRequest true "Unit"
// @Success 201 {object} models.Unit
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/units [post]
func (h *CoursesHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUnitRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	unit, err := h.service.CreateUnit(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, unit)
}

// DeleteUnit handles DELETE /api/v1/admin/units/{id}
// @Summary Delete a unit
// @Tags admin
// @Param id path int true "Unit ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/units/{id} [delete]
func (h *CoursesHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUnit(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLessons handles GET /api/v1/admin/units/{id}/lessons
// @Summary List lessons of a unit
// @Tags admin
// @Produce json
// @Param id path int true "Unit ID"
// @Success 200 {array} models.Lesson
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/units/{id}/lessons [get]
func (h *CoursesHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	lessons, err := h.service.ListLessons(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, lessons)
}

// CreateLesson handles POST /api/v1/admin/lessons
// @Summary Create a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateLessonRequest true "Lesson"
// @Success 201 {object} models.Lesson
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/lessons [post]
func (h *CoursesHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	lesson, err := h.service.CreateLesson(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, lesson)
}

// UpdateLesson handles PATCH /api/v1/admin/lessons/{id}
// @Summary Update a lesson
// @Tags admin
// @Accept json
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/lessons/{id} [patch]
func (h *CoursesHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateLessonRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateLesson(r.Context(), id, &req); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteLesson handles DELETE /api/v1/admin/lessons/{id}
// @Summary Delete a lesson
// @Tags admin
// @Param id path int true "Lesson ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/lessons/{id} [delete]
func (h *CoursesHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteLesson(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
