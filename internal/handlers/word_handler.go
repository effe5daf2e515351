package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/models"
)

// WordsService is the interface that wraps methods for course word business logic.
type WordsService interface {
	// Method CreatePair composes a word translation pair with its audio
	// variants as one atomic unit. Both words persist or neither does.
	CreatePair(ctx context.Context, req *models.CreateCourseWordsRequest) (*models.CreateCourseWordsResponse, error)
	ListPairs(ctx context.Context) ([]models.WordPairResponse, error)
	// Method ResolvePair resolves a target-language word id to its paired
	// base-language counterpart with the audio variants of both sides.
	ResolvePair(ctx context.Context, targetID int) (*models.WordPairResponse, error)
}

// WordsHandler handles HTTP requests for course words
type WordsHandler struct {
	BaseHandler
	service WordsService
}

// NewWordsHandler creates a new words handler
func NewWordsHandler(svc WordsService, logger *zap.Logger) *WordsHandler {
	return &WordsHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all words handler routes
func (h *WordsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/course-words", func(r chi.Router) {
		r.Post("/", h.CreatePair)
		r.Get("/", h.ListPairs)
		r.Get("/{id}/pair", h.ResolvePair)
	})
}

// CreatePair handles POST /api/v1/course-words
// @Summary Create a word translation pair
// @Description Create a base/target word pair with audio variants as one atomic unit
// @Tags words
// @Accept json
// @Produce json
// @Param request body models.CreateCourseWordsRequest true "Course words submission"
// @Success 200 {object} models.CreateCourseWordsResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/course-words [post]
func (h *WordsHandler) CreatePair(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseWordsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.CreatePair(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ListPairs handles GET /api/v1/course-words
// @Summary List word translation pairs
// @Tags words
// @Produce json
// @Success 200 {array} models.WordPairResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/course-words [get]
func (h *WordsHandler) ListPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.service.ListPairs(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, pairs)
}

// ResolvePair handles GET /api/v1/course-words/{id}/pair
// @Summary Resolve a word pairing
// @Description Resolve a target-language word to its base-language counterpart
// @Tags words
// @Produce json
// @Param id path int true "Target word ID"
// @Success 200 {object} models.WordPairResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/course-words/{id}/pair [get]
func (h *WordsHandler) ResolvePair(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	pair, err := h.service.ResolvePair(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, pair)
}
