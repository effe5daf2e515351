package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

// mockWordRepository is a mock implementation of WordRepository
type mockWordRepository struct {
	word        *models.Word
	translation *models.WordTranslation
	pairs       []models.WordPairResponse
	voices      []models.VoiceType
	err         error

	createdBase        *models.Word
	createdTarget      *models.Word
	createdBaseAudio   []models.VoiceType
	createdTargetAudio []models.VoiceType
}

func (m *mockWordRepository) CreatePair(ctx context.Context, base, target *models.Word, baseAudio, targetAudio []models.VoiceType) error {
	if m.err != nil {
		return m.err
	}
	base.ID = 20
	target.ID = 21
	m.createdBase = base
	m.createdTarget = target
	m.createdBaseAudio = baseAudio
	m.createdTargetAudio = targetAudio
	return nil
}

func (m *mockWordRepository) GetByID(ctx context.Context, id int) (*models.Word, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.word == nil {
		return nil, apperrors.NewNotFound("word", id)
	}
	w := *m.word
	w.ID = id
	return &w, nil
}

func (m *mockWordRepository) GetTranslationForTarget(ctx context.Context, targetID int) (*models.WordTranslation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.translation == nil {
		return nil, apperrors.NewNotFound("word translation", targetID)
	}
	return m.translation, nil
}

func (m *mockWordRepository) GetAllPairs(ctx context.Context) ([]models.WordPairResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pairs, nil
}

func (m *mockWordRepository) GetAudioByWordID(ctx context.Context, wordID int) ([]models.VoiceType, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.voices, nil
}

func validWordsRequest() *models.CreateCourseWordsRequest {
	return &models.CreateCourseWordsRequest{
		Source: models.WordSide{
			Word:         "book",
			PartOfSpeech: "noun",
			LanguageID:   1,
			VoiceTypes:   []models.VoiceType{{CharacterID: 1, AudioURL: "https://cdn.example.com/en/book.mp3"}},
		},
		Target: models.WordSide{
			Word:         "کتاب",
			PartOfSpeech: "noun",
			LanguageID:   2,
			VoiceTypes:   []models.VoiceType{{CharacterID: 2, AudioURL: "https://cdn.example.com/fa/ketab.mp3"}},
		},
	}
}

func TestWordService_CreatePair(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name               string
		mutate             func(*models.CreateCourseWordsRequest)
		repo               *mockWordRepository
		languages          *mockLanguageChecker
		expectedError      bool
		expectedValidation bool
		expectedNotFound   bool
	}{
		{
			name:      "success",
			mutate:    func(r *models.CreateCourseWordsRequest) {},
			repo:      &mockWordRepository{},
			languages: &mockLanguageChecker{known: map[int]bool{1: true, 2: true}},
		},
		{
			name:               "empty source word",
			mutate:             func(r *models.CreateCourseWordsRequest) { r.Source.Word = "  " },
			repo:               &mockWordRepository{},
			languages:          &mockLanguageChecker{known: map[int]bool{1: true, 2: true}},
			expectedError:      true,
			expectedValidation: true,
		},
		{
			name:               "same language on both sides",
			mutate:             func(r *models.CreateCourseWordsRequest) { r.Target.LanguageID = 1 },
			repo:               &mockWordRepository{},
			languages:          &mockLanguageChecker{known: map[int]bool{1: true, 2: true}},
			expectedError:      true,
			expectedValidation: true,
		},
		{
			name:               "unknown target language",
			mutate:             func(r *models.CreateCourseWordsRequest) { r.Target.LanguageID = 99 },
			repo:               &mockWordRepository{},
			languages:          &mockLanguageChecker{known: map[int]bool{1: true}},
			expectedError:      true,
			expectedValidation: true,
		},
		{
			name:               "missing audio url",
			mutate:             func(r *models.CreateCourseWordsRequest) { r.Target.VoiceTypes[0].AudioURL = "" },
			repo:               &mockWordRepository{},
			languages:          &mockLanguageChecker{known: map[int]bool{1: true, 2: true}},
			expectedError:      true,
			expectedValidation: true,
		},
		{
			name:          "repository failure",
			mutate:        func(r *models.CreateCourseWordsRequest) {},
			repo:          &mockWordRepository{err: errors.New("database error")},
			languages:     &mockLanguageChecker{known: map[int]bool{1: true, 2: true}},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validWordsRequest()
			tt.mutate(req)
			svc := NewWordService(tt.repo, tt.languages, logger)

			result, err := svc.CreatePair(context.Background(), req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Equal(t, tt.expectedValidation, apperrors.IsValidation(err))
				assert.Equal(t, tt.expectedNotFound, apperrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, 20, result.SourceWordID)
				assert.Equal(t, 21, result.TargetWordID)
				assert.Equal(t, "course words created", result.Message)
				assert.Equal(t, "book", tt.repo.createdBase.Text)
				assert.Equal(t, "کتاب", tt.repo.createdTarget.Text)
			}
		})
	}
}

func TestWordService_CreatePair_DedupesVoiceTypes(t *testing.T) {
	repo := &mockWordRepository{}
	languages := &mockLanguageChecker{known: map[int]bool{1: true, 2: true}}
	svc := NewWordService(repo, languages, zap.NewNop())

	req := validWordsRequest()
	req.Source.VoiceTypes = []models.VoiceType{
		{CharacterID: 1, AudioURL: "https://cdn.example.com/en/book-a.mp3"},
		{CharacterID: 1, AudioURL: "https://cdn.example.com/en/book-b.mp3"},
		{CharacterID: 3, AudioURL: "https://cdn.example.com/en/book-c.mp3"},
	}

	result, err := svc.CreatePair(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, repo.createdBaseAudio, 2)
	assert.Equal(t, "https://cdn.example.com/en/book-a.mp3", repo.createdBaseAudio[0].AudioURL)
	assert.Equal(t, 3, repo.createdBaseAudio[1].CharacterID)
}

func TestWordService_ResolvePair(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name               string
		targetID           int
		repo               *mockWordRepository
		expectedError      bool
		expectedValidation bool
		expectedNotFound   bool
	}{
		{
			name:     "success",
			targetID: 21,
			repo: &mockWordRepository{
				translation: &models.WordTranslation{BaseWordID: 20, TargetWordID: 21, Confidence: 100},
				word:        &models.Word{LanguageID: 1, Text: "book"},
				voices:      []models.VoiceType{{CharacterID: 1, AudioURL: "https://cdn.example.com/en/book.mp3"}},
			},
		},
		{
			name:               "zero id",
			targetID:           0,
			repo:               &mockWordRepository{},
			expectedError:      true,
			expectedValidation: true,
		},
		{
			name:             "no translation",
			targetID:         99,
			repo:             &mockWordRepository{},
			expectedError:    true,
			expectedNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWordService(tt.repo, &mockLanguageChecker{}, logger)

			pair, err := svc.ResolvePair(context.Background(), tt.targetID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, pair)
				assert.Equal(t, tt.expectedValidation, apperrors.IsValidation(err))
				assert.Equal(t, tt.expectedNotFound, apperrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, pair)
				assert.Equal(t, 20, pair.Source.ID)
				assert.Equal(t, 21, pair.Target.ID)
				assert.Len(t, pair.Source.VoiceTypes, 1)
			}
		})
	}
}

func TestWordService_ListPairs(t *testing.T) {
	repo := &mockWordRepository{pairs: []models.WordPairResponse{
		{Source: models.WordView{ID: 20, Word: "book"}, Target: models.WordView{ID: 21, Word: "کتاب"}},
	}}
	svc := NewWordService(repo, &mockLanguageChecker{}, zap.NewNop())

	pairs, err := svc.ListPairs(context.Background())

	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestWordService_ListPairs_Empty(t *testing.T) {
	svc := NewWordService(&mockWordRepository{}, &mockLanguageChecker{}, zap.NewNop())

	pairs, err := svc.ListPairs(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, pairs)
	assert.Empty(t, pairs)
}
