package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

// SentenceRepository is the interface that wraps methods for sentence,
// sentence translation and sentence audio data access
type SentenceRepository interface {
	// Method CreatePair persists both sentences, their translation association
	// and all audio variants atomically. The IDs of the created sentence rows
	// are set on the passed models.
	CreatePair(ctx context.Context, base, target *models.Sentence, baseAudio, targetAudio []models.VoiceType) error
	GetByID(ctx context.Context, id int) (*models.Sentence, error)
	// Method GetTranslationForTarget resolves the canonical translation
	// association of a target-language sentence. Highest confidence wins,
	// ties break on the oldest association.
	GetTranslationForTarget(ctx context.Context, targetID int) (*models.SentenceTranslation, error)
	GetAllPairs(ctx context.Context) ([]models.SentencePairResponse, error)
	GetAudioBySentenceID(ctx context.Context, sentenceID int) ([]models.VoiceType, error)
	CreateAudio(ctx context.Context, audio *models.SentenceAudio) error
	GetAllAudio(ctx context.Context) ([]models.SentenceAudio, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
}

// LanguageChecker is the interface for validating language references
type LanguageChecker interface {
	ExistsByID(ctx context.Context, id int) (bool, error)
}

type sentenceService struct {
	repo      SentenceRepository
	languages LanguageChecker
	logger    *zap.Logger
}

// NewSentenceService creates a new sentence service
func NewSentenceService(repo SentenceRepository, languages LanguageChecker, logger *zap.Logger) *sentenceService {
	return &sentenceService{
		repo:      repo,
		languages: languages,
		logger:    logger,
	}
}

// CreatePair validates and persists a sentence translation pair with its audio
// variants. The whole submission lands atomically; the returned IDs identify
// the two created sentence rows.
func (s *sentenceService) CreatePair(ctx context.Context, req *models.CreateSentencePairRequest) (*models.CreateSentencePairResponse, error) {
	if err := s.validateSide(ctx, "source", &req.Source); err != nil {
		return nil, err
	}
	if err := s.validateSide(ctx, "target", &req.Target); err != nil {
		return nil, err
	}
	if req.Source.LanguageID == req.Target.LanguageID {
		return nil, apperrors.NewValidation("target.languageId", "source and target languages must differ")
	}

	base := &models.Sentence{
		Text:       strings.TrimSpace(req.Source.Sentence),
		LanguageID: req.Source.LanguageID,
	}
	target := &models.Sentence{
		Text:       strings.TrimSpace(req.Target.Sentence),
		LanguageID: req.Target.LanguageID,
	}

	baseAudio := dedupeVoiceTypes(req.Source.VoiceTypes)
	targetAudio := dedupeVoiceTypes(req.Target.VoiceTypes)

	if err := s.repo.CreatePair(ctx, base, target, baseAudio, targetAudio); err != nil {
		s.logger.Error("failed to create sentence pair", zap.Error(err))
		return nil, apperrors.NewPersistence("create sentence pair", err)
	}

	return &models.CreateSentencePairResponse{
		SourceSentenceID: base.ID,
		TargetSentenceID: target.ID,
	}, nil
}

// validateSide checks one side of a pair submission
func (s *sentenceService) validateSide(ctx context.Context, field string, side *models.SentenceSide) error {
	if strings.TrimSpace(side.Sentence) == "" {
		return apperrors.NewValidation(field+".sentence", "sentence text is required")
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

// dedupeVoiceTypes drops repeated voice variants for the same character,
// keeping the first occurrence. Variants without a character are kept as
// submitted.
func dedupeVoiceTypes(voices []models.VoiceType) []models.VoiceType {
	seen := make(map[int]bool, len(voices))
	deduped := make([]models.VoiceType, 0, len(voices))
	for _, voice := range voices {
		if voice.CharacterID != 0 {
			if seen[voice.CharacterID] {
				continue
			}
			seen[voice.CharacterID] = true
		}
		deduped = append(deduped, voice)
	}
	return deduped
}

// ListPairs retrieves every sentence translation pair with both texts and
// audio variants
func (s *sentenceService) ListPairs(ctx context.Context) ([]models.SentencePairResponse, error) {
	pairs, err := s.repo.GetAllPairs(ctx)
	if err != nil {
		s.logger.Error("failed to list sentence pairs", zap.Error(err))
		return nil, apperrors.NewPersistence("list sentence pairs", err)
	}
	if pairs == nil {
		pairs = []models.SentencePairResponse{}
	}
	return pairs, nil
}

// ResolvePair resolves a target-language sentence to its base-language
// counterpart with the audio variants of both sides
func (s *sentenceService) ResolvePair(ctx context.Context, targetID int) (*models.SentencePairResponse, error) {
	if targetID <= 0 {
		return nil, apperrors.NewValidation("sentenceId", "sentence id is required")
	}

	translation, err := s.repo.GetTranslationForTarget(ctx, targetID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to resolve sentence pair", zap.Error(err), zap.Int("sentenceId", targetID))
		return nil, apperrors.NewPersistence("resolve sentence pair", err)
	}

	base, err := s.getSentenceView(ctx, translation.BaseSentenceID)
	if err != nil {
		return nil, err
	}
	target, err := s.getSentenceView(ctx, translation.TargetSentenceID)
	if err != nil {
		return nil, err
	}

	return &models.SentencePairResponse{Source: *base, Target: *target}, nil
}

func (s *sentenceService) getSentenceView(ctx context.Context, id int) (*models.SentenceView, error) {
	sentence, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to get sentence", zap.Error(err), zap.Int("sentenceId", id))
		return nil, apperrors.NewPersistence("get sentence", err)
	}

	voices, err := s.repo.GetAudioBySentenceID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get sentence audio", zap.Error(err), zap.Int("sentenceId", id))
		return nil, apperrors.NewPersistence("get sentence audio", err)
	}

	return &models.SentenceView{
		ID:         sentence.ID,
		Sentence:   sentence.Text,
		VoiceTypes: voices,
	}, nil
}

// CreateAudio attaches an additional audio variant to an existing sentence
func (s *sentenceService) CreateAudio(ctx context.Context, req *models.CreateSentenceAudioRequest) (*models.SentenceAudio, error) {
	if req.SentenceID <= 0 {
		return nil, apperrors.NewValidation("sentenceId", "sentence id is required")
	}
	if strings.TrimSpace(req.AudioURL) == "" {
		return nil, apperrors.NewValidation("audioUrl", "audio url is required")
	}
	if req.DurationMs == nil {
		return nil, apperrors.NewValidation("durationMs", "duration is required")
	}
	if *req.DurationMs <= 0 {
		return nil, apperrors.NewValidation("durationMs", "duration must be positive")
	}

	exists, err := s.repo.ExistsByID(ctx, req.SentenceID)
	if err != nil {
		s.logger.Error("failed to check sentence", zap.Error(err), zap.Int("sentenceId", req.SentenceID))
		return nil, apperrors.NewPersistence("check sentence", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("sentence", req.SentenceID)
	}

	audio := &models.SentenceAudio{
		SentenceID:  req.SentenceID,
		CharacterID: req.CharacterID,
		AudioURL:    strings.TrimSpace(req.AudioURL),
		DurationMs:  req.DurationMs,
	}
	if err := s.repo.CreateAudio(ctx, audio); err != nil {
		s.logger.Error("failed to create sentence audio", zap.Error(err))
		return nil, apperrors.NewPersistence("create sentence audio", err)
	}

	return audio, nil
}

// ListAudio retrieves every sentence audio row
func (s *sentenceService) ListAudio(ctx context.Context) ([]models.SentenceAudio, error) {
	audios, err := s.repo.GetAllAudio(ctx)
	if err != nil {
		s.logger.Error("failed to list sentence audio", zap.Error(err))
		return nil, apperrors.NewPersistence("list sentence audio", err)
	}
	if audios == nil {
		audios = []models.SentenceAudio{}
	}
	return audios, nil
}
