package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/models"
)

// LanguagesService is the interface that wraps methods for language business logic.
type LanguagesService interface {
	List(ctx context.Context) ([]models.Language, error)
	Get(ctx context.Context, id int) (*models.Language, error)
	Create(ctx context.Context, req *models.CreateLanguageRequest) (*models.Language, error)
}

// CharactersService is the interface that wraps methods for voice character business logic.
type CharactersService interface {
	List(ctx context.Context) ([]models.Character, error)
	Get(ctx context.Context, id int) (*models.Character, error)
	Create(ctx context.Context, req *models.CreateCharacterRequest) (*models.Character, error)
	Update(ctx context.Context, id int, req *models.UpdateCharacterRequest) error
	Delete(ctx context.Context, id int) error
}

// CatalogHandler handles HTTP requests for the language and voice character catalog
type CatalogHandler struct {
	BaseHandler
	languages  LanguagesService
	characters CharactersService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(languages LanguagesService, characters CharactersService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		languages:   languages,
		characters:  characters,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all catalog handler routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Route("/languages", func(r chi.Router) {
			r.Get("/", h.ListLanguages)
			r.Post("/", h.CreateLanguage)
			r.Get("/{id}", h.GetLanguage)
		})
		r.Route("/characters", func(r chi.Router) {
			r.Get("/", h.ListCharacters)
			r.Post("/", h.CreateCharacter)
			r.Get("/{id}", h.GetCharacter)
			r.Patch("/{id}", h.UpdateCharacter)
			r.Delete("/{id}", h.DeleteCharacter)
		})
	})
}

// ListLanguages handles GET /api/v1/admin/languages
// @Summary List languages
// @Tags admin
// @Produce json
// @Success 200 {array} models.Language
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/languages [get]
func (h *CatalogHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.languages.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, languages)
}

// GetLanguage handles GET /api/v1/admin/languages/{id}
// @Summary Get language by ID
// @Tags admin
// @Produce json
// @Param id path int true "Language ID"
// @Success 200 {object} models.Language
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/languages/{id} [get]
func (h *CatalogHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	language, err := h.languages.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, language)
}

// CreateLanguage handles POST /api/v1/admin/languages
// @Summary Register a language
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateLanguageRequest true "Language"
// @Success 201 {object} models.Language
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/languages [post]
func (h *CatalogHandler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLanguageRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	language, err := h.languages.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, language)
}

// ListCharacters handles GET /api/v1/admin/characters
// @Summary List voice characters
// @Tags admin
// @Produce json
// @Success 200 {array} models.Character
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/characters [get]
func (h *CatalogHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := h.characters.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, characters)
}

// GetCharacter handles GET /api/v1/admin/characters/{id}
// @Summary Get voice character by ID
// @Tags admin
// @Produce json
// @Param id path int true "Character ID"
// @Success 200 {object} models.Character
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/characters/{id} [get]
func (h *CatalogHandler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	character, err := h.characters.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, character)
}

// CreateCharacter handles POST /api/v1/admin/characters
// @Summary Register a voice character
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.CreateCharacterRequest true "Character"
// @Success 201 {object} models.Character
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/characters [post]
func (h *CatalogHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCharacterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	character, err := h.characters.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, character)
}

// UpdateCharacter handles PATCH /api/v1/admin/characters/{id}
// @Summary Update a voice character
// @Tags admin
// @Accept json
// @Param id path int true "Character ID"
// @Param request body models.UpdateCharacterRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/characters/{id} [patch]
func (h *CatalogHandler) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateCharacterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.characters.Update(r.Context(), id, &req); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCharacter handles DELETE /api/v1/admin/characters/{id}
// @Summary Delete a voice character
// @Tags admin
// @Param id path int true "Character ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/characters/{id} [delete]
func (h *CatalogHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.characters.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
