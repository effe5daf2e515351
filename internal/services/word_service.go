package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

// WordRepository is the interface that wraps methods for word, word
// translation and word audio data access
type WordRepository interface {
	// Method CreatePair persists both words, their translation association and
	// all audio variants atomically. The IDs of the created word rows are set
	// on the passed models.
	CreatePair(ctx context.Context, base, target *models.Word, baseAudio, targetAudio []models.VoiceType) error
	GetByID(ctx context.Context, id int) (*models.Word, error)
	GetTranslationForTarget(ctx context.Context, targetID int) (*models.WordTranslation, error)
	GetAllPairs(ctx context.Context) ([]models.WordPairResponse, error)
	GetAudioByWordID(ctx context.Context, wordID int) ([]models.VoiceType, error)
}

type wordService struct {
	repo      WordRepository
	languages LanguageChecker
	logger    *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(repo WordRepository, languages LanguageChecker, logger *zap.Logger) *wordService {
	return &wordService{
		repo:      repo,
		languages: languages,
		logger:    logger,
	}
}

// CreatePair validates and persists a word translation pair with its audio
// variants. The whole submission lands atomically.
func (s *wordService) CreatePair(ctx context.Context, req *models.CreateCourseWordsRequest) (*models.CreateCourseWordsResponse, error) {
	if err := s.validateSide(ctx, "source", &req.Source); err != nil {
		return nil, err
	}
	if err := s.validateSide(ctx, "target", &req.Target); err != nil {
		return nil, err
	}
	if req.Source.LanguageID == req.Target.LanguageID {
		return nil, apperrors.NewValidation("target.languageId", "source and target languages must differ")
	}

	base := &models.Word{
		LanguageID:   req.Source.LanguageID,
		Text:         strings.TrimSpace(req.Source.Word),
		PartOfSpeech: req.Source.PartOfSpeech,
	}
	target := &models.Word{
		LanguageID:   req.Target.LanguageID,
		Text:         strings.TrimSpace(req.Target.Word),
		PartOfSpeech: req.Target.PartOfSpeech,
	}

	baseAudio := dedupeVoiceTypes(req.Source.VoiceTypes)
	targetAudio := dedupeVoiceTypes(req.Target.VoiceTypes)

	if err := s.repo.CreatePair(ctx, base, target, baseAudio, targetAudio); err != nil {
		s.logger.Error("failed to create word pair", zap.Error(err))
		return nil, apperrors.NewPersistence("create word pair", err)
	}

	return &models.CreateCourseWordsResponse{
		SourceWordID: base.ID,
		TargetWordID: target.ID,
		Message:      "course words created",
	}, nil
}

// validateSide checks one side of a course-words submission
func (s *wordService) validateSide(ctx context.Context, field string, side *models.WordSide) error {
	if strings.TrimSpace(side.Word) == "" {
		return apperrors.NewValidation(field+".word", "word text is required")
	}
	if side.LanguageID <= 0 {
		return apperrors.NewValidation(field+".languageId", "language id is required")
	}

	exists, err := s.languages.ExistsByID(ctx, side.LanguageID)
	if err != nil {
		s.logger.Error("failed to check language", zap.Error(err), zap.Int("languageId", side.LanguageID))
		return apperrors.NewPersistence("check language", err)
	}
	if !exists {
		return apperrors.NewValidation(field+".languageId", "language does not exist")
	}

	for _, voice := range side.VoiceTypes {
		if strings.TrimSpace(voice.AudioURL) == "" {
			return apperrors.NewValidation(field+".voiceTypes", "audio url is required")
		}
	}

	return nil
}

// ListPairs retrieves every word translation pair with both texts and audio
// variants
func (s *wordService) ListPairs(ctx context.Context) ([]models.WordPairResponse, error) {
	pairs, err := s.repo.GetAllPairs(ctx)
	if err != nil {
		s.logger.Error("failed to list word pairs", zap.Error(err))
		return nil, apperrors.NewPersistence("list word pairs", err)
	}
	if pairs == nil {
		pairs = []models.WordPairResponse{}
	}
	return pairs, nil
}

// ResolvePair resolves a target-language word to its base-language counterpart
// with the audio variants of both sides
func (s *wordService) ResolvePair(ctx context.Context, targetID int) (*models.WordPairResponse, error) {
	if targetID <= 0 {
		return nil, apperrors.NewValidation("wordId", "word id is required")
	}

	translation, err := s.repo.GetTranslationForTarget(ctx, targetID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to resolve word pair", zap.Error(err), zap.Int("wordId", targetID))
		return nil, apperrors.NewPersistence("resolve word pair", err)
	}

	base, err := s.getWordView(ctx, translation.BaseWordID)
	if err != nil {
		return nil, err
	}
	target, err := s.getWordView(ctx, translation.TargetWordID)
	if err != nil {
		return nil, err
	}

	return &models.WordPairResponse{Source: *base, Target: *target}, nil
}

func (s *wordService) getWordView(ctx context.Context, id int) (*models.WordView, error) {
	word, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to get word", zap.Error(err), zap.Int("wordId", id))
		return nil, apperrors.NewPersistence("get word", err)
	}

	voices, err := s.repo.GetAudioByWordID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get word audio", zap.Error(err), zap.Int("wordId", id))
		return nil, apperrors.NewPersistence("get word audio", err)
	}

	return &models.WordView{
		ID:           word.ID,
		Word:         word.Text,
		PartOfSpeech: word.PartOfSpeech,
		VoiceTypes:   voices,
	}, nil
}
