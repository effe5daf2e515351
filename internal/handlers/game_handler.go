package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/models"
)

// GamesService is the interface that wraps methods for exercise business logic.
type GamesService interface {
	// Method CreateGame validates and persists an exercise submission with its
	// typed payload, appending it at the end of its lesson.
	CreateGame(ctx context.Context, req *models.CreateGameRequest) (*models.GameResponse, error)
	GetGame(ctx context.Context, id int) (*models.GameResponse, error)
	ListGames(ctx context.Context, lessonID int) ([]models.GameResponse, error)
	DeleteGame(ctx context.Context, id int) error
	// Method ReorderParts moves one ordered child of an exercise between
	// 1-based positions, keeping the collection dense.
	ReorderParts(ctx context.Context, gameID int, req *models.ReorderRequest) error
}

// GamesHandler handles HTTP requests for exercises
type GamesHandler struct {
	BaseHandler
	service GamesService
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(svc GamesService, logger *zap.Logger) *GamesHandler {
	return &GamesHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all games handler routes
func (h *GamesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Route("/lessons/{id}/games", func(r chi.Router) {
			r.Get("/", h.ListGames)
			r.Post("/", h.CreateGame)
		})
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", h.GetGame)
			r.Delete("/", h.DeleteGame)
			r.Patch("/parts/order", h.ReorderParts)
		})
	})
}

// ListGames handles GET /api/v1/admin/lessons/{id}/games
// @Summary List exercises of a lesson
// @Tags games
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {array} models.GameResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/lessons/{id}/games [get]
func (h *GamesHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	games, err := h.service.ListGames(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, games)
}

// CreateGame handles POST /api/v1/admin/lessons/{id}/games
// @Summary Create an exercise
// @Description Create an exercise of one of the seven kinds with its typed payload
// @Tags games
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body models.CreateGameRequest true "Exercise submission"
// @Success 201 {object} models.GameResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/lessons/{id}/games [post]
func (h *GamesHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var req models.CreateGameRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	req.LessonID = id

	game, err := h.service.CreateGame(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, game)
}

// GetGame handles GET /api/v1/admin/games/{id}
// @Summary Get exercise by ID
// @Description Get the full exercise with its typed payload and ordered children
// @Tags games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} models.GameResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/games/{id} [get]
func (h *GamesHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	game, err := h.service.GetGame(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, game)
}

// DeleteGame handles DELETE /api/v1/admin/games/{id}
// @Summary Delete an exercise
// @Description Delete an exercise; remaining exercises of the lesson keep dense orders
// @Tags games
// @Param id path int true "Game ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/games/{id} [delete]
func (h *GamesHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteGame(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderParts handles PATCH /api/v1/admin/games/{id}/parts/order
// @Summary Reorder exercise parts
// @Description Move one ordered child of an exercise between 1-based positions
// @Tags games
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param request body models.ReorderRequest true "Positions"
// @Success 200 {object} models.GameResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/games/{id}/parts/order [patch]
func (h *GamesHandler) ReorderParts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var req models.ReorderRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ReorderParts(r.Context(), id, &req); err != nil {
		h.respondServiceError(w, err)
		return
	}

	game, err := h.service.GetGame(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, game)
}
