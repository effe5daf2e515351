package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

// LanguageRepository is the interface that wraps methods for language data access
type LanguageRepository interface {
	GetAll(ctx context.Context) ([]models.Language, error)
	GetByID(ctx context.Context, id int) (*models.Language, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, lang *models.Language) error
}

// CharacterRepository is the interface that wraps methods for voice character data access
type CharacterRepository interface {
	GetAll(ctx context.Context) ([]models.Character, error)
	GetByID(ctx context.Context, id int) (*models.Character, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, character *models.Character) error
	Update(ctx context.Context, id int, character *models.Character) error
	Delete(ctx context.Context, id int) error
}

type languageService struct {
	repo   LanguageRepository
	logger *zap.Logger
}

// NewLanguageService creates a new language service
func NewLanguageService(repo LanguageRepository, logger *zap.Logger) *languageService {
	return &languageService{
		repo:   repo,
		logger: logger,
	}
}

// List retrieves all languages
func (s *languageService) List(ctx context.Context) ([]models.Language, error) {
	languages, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list languages", zap.Error(err))
		return nil, apperrors.NewPersistence("list languages", err)
	}
	if languages == nil {
		languages = []models.Language{}
	}
	return languages, nil
}

// Get retrieves a language by its ID
func (s *languageService) Get(ctx context.Context, id int) (*models.Language, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id", "language id is required")
	}

	language, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to get language", zap.Error(err), zap.Int("id", id))
		return nil, apperrors.NewPersistence("get language", err)
	}
	return language, nil
}

// Create registers a new language. Codes are unique.
func (s *languageService) Create(ctx context.Context, req *models.CreateLanguageRequest) (*models.Language, error) {
	code := strings.ToLower(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, apperrors.NewValidation("code", "language code is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidation("name", "language name is required")
	}

	exists, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		s.logger.Error("failed to check language code", zap.Error(err), zap.String("code", code))
		return nil, apperrors.NewPersistence("check language code", err)
	}
	if exists {
		return nil, apperrors.NewValidation("code", "language code already exists")
	}

	language := &models.Language{
		Code:      code,
		Name:      strings.TrimSpace(req.Name),
		FlagImage: req.FlagImage,
	}
	if err := s.repo.Create(ctx, language); err != nil {
		s.logger.Error("failed to create language", zap.Error(err))
		return nil, apperrors.NewPersistence("create language", err)
	}

	return language, nil
}

type characterService struct {
	repo   CharacterRepository
	logger *zap.Logger
}

// NewCharacterService creates a new character service
func NewCharacterService(repo CharacterRepository, logger *zap.Logger) *characterService {
	return &characterService{
		repo:   repo,
		logger: logger,
	}
}

// List retrieves all voice characters
func (s *characterService) List(ctx context.Context) ([]models.Character, error) {
	characters, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list characters", zap.Error(err))
		return nil, apperrors.NewPersistence("list characters", err)
	}
	if characters == nil {
		characters = []models.Character{}
	}
	return characters, nil
}

// Get retrieves a voice character by its ID
func (s *characterService) Get(ctx context.Context, id int) (*models.Character, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id", "character id is required")
	}

	character, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to get character", zap.Error(err), zap.Int("id", id))
		return nil, apperrors.NewPersistence("get character", err)
	}
	return character, nil
}

// Create registers a new voice character. Names are unique.
func (s *characterService) Create(ctx context.Context, req *models.CreateCharacterRequest) (*models.Character, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidation("name", "character name is required")
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		s.logger.Error("failed to check character name", zap.Error(err), zap.String("name", name))
		return nil, apperrors.NewPersistence("check character name", err)
	}
	if exists {
		return nil, apperrors.NewValidation("name", "character name already exists")
	}

	character := &models.Character{
		Name:     name,
		RiveFile: req.RiveFile,
	}
	if err := s.repo.Create(ctx, character); err != nil {
		s.logger.Error("failed to create character", zap.Error(err))
		return nil, apperrors.NewPersistence("create character", err)
	}

	return character, nil
}

// Update changes the name or animation file of a voice character
func (s *characterService) Update(ctx context.Context, id int, req *models.UpdateCharacterRequest) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "character id is required")
	}

	character := &models.Character{
		Name:     strings.TrimSpace(req.Name),
		RiveFile: req.RiveFile,
	}
	if err := s.repo.Update(ctx, id, character); err != nil {
		if apperrors.IsNotFound(err) || apperrors.IsValidation(err) {
			return err
		}
		s.logger.Error("failed to update character", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("update character", err)
	}
	return nil
}

// Delete removes a voice character
func (s *characterService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "character id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete character", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("delete character", err)
	}
	return nil
}
