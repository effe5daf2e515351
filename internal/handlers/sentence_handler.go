package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/models"
)

// SentencesService is the interface that wraps methods for sentence pair business logic.
type SentencesService interface {
	// Method CreatePair composes a sentence translation pair with its audio
	// variants as one atomic unit and returns the ids of both created rows.
	CreatePair(ctx context.Context, req *models.CreateSentencePairRequest) (*models.CreateSentencePairResponse, error)
	// Method ListPairs retrieves every translation pair with both texts and
	// the audio variants of each side.
	ListPairs(ctx context.Context) ([]models.SentencePairResponse, error)
	// Method ResolvePair resolves a target-language sentence id to its paired
	// base-language counterpart with the audio variants of both sides.
	ResolvePair(ctx context.Context, targetID int) (*models.SentencePairResponse, error)
	CreateAudio(ctx context.Context, req *models.CreateSentenceAudioRequest) (*models.SentenceAudio, error)
	ListAudio(ctx context.Context) ([]models.SentenceAudio, error)
}

// SentencesHandler handles HTTP requests for sentence pairs and sentence audio
type SentencesHandler struct {
	BaseHandler
	service SentencesService
}

// NewSentencesHandler creates a new sentence handler
func NewSentencesHandler(svc SentencesService, logger *zap.Logger) *SentencesHandler {
	return &SentencesHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all sentence handler routes
func (h *SentencesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sentences", func(r chi.Router) {
			r.Post("/", h.CreatePair)
			r.Get("/", h.ListPairs)
			r.Get("/{id}/pair", h.ResolvePair)
		})
		r.Route("/sentence-audio", func(r chi.Router) {
			r.Post("/", h.CreateAudio)
			r.Get("/", h.ListAudio)
		})
	})
}

// CreatePair handles POST /api/v1/sentences
// @Summary Create a sentence translation pair
// @Description Create a base/target sentence pair with audio variants as one atomic unit
// @Tags sentences
// @Accept json
// @Produce json
// @Param request body models.CreateSentencePairRequest true "Sentence pair submission"
// @Success 201 {object} models.CreateSentencePairResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/sentences [post]
func (h *SentencesHandler) CreatePair(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSentencePairRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.CreatePair(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, result)
}

// ListPairs handles GET /api/v1/sentences
// @Summary List sentence translation pairs
// @Description Get every sentence pair with both texts and audio variants
// @Tags sentences
// @Produce json
// @Success 200 {array} models.SentencePairResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/sentences [get]
func (h *SentencesHandler) ListPairs(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.service.ListPairs(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, pairs)
}

// ResolvePair handles GET /api/v1/sentences/{id}/pair
// @Summary Resolve a sentence pairing
// @Description Resolve a target-language sentence to its base-language counterpart
// @Tags sentences
// @Produce json
// @Param id path int true "Target sentence ID"
// @Success 200 {object} models.SentencePairResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/sentences/{id}/pair [get]
func (h *SentencesHandler) ResolvePair(w http.ResponseWriter, r *http.Request) {
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

// CreateAudio handles POST /api/v1/sentence-audio
// @Summary Attach an audio variant to a sentence
// @Tags sentences
// @Accept json
// @Produce json
// @Param request body models.CreateSentenceAudioRequest true "Audio variant"
// @Success 201 {object} models.SentenceAudio
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/sentence-audio [post]
func (h *SentencesHandler) CreateAudio(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSentenceAudioRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	audio, err := h.service.CreateAudio(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, audio)
}

// ListAudio handles GET /api/v1/sentence-audio
// @Summary List sentence audio rows
// @Tags sentences
// @Produce json
// @Success 200 {array} models.SentenceAudio
// @Failure 500 {object} map[string]string
// @Router /api/v1/sentence-audio [get]
func (h *SentencesHandler) ListAudio(w http.ResponseWriter, r *http.Request) {
	audios, err := h.service.ListAudio(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, audios)
}
