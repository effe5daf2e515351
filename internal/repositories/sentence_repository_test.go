package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

// setupSentenceRepository creates a sentence repository with a mock database
func setupSentenceRepository(t *testing.T) (*sentenceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSentenceRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestSentenceRepository_CreatePair(t *testing.T) {
	duration := 1800

	tests := []struct {
		name          string
		base          *models.Sentence
		target        *models.Sentence
		baseAudio     []models.VoiceType
		targetAudio   []models.VoiceType
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:        "success with audio on both sides",
			base:        &models.Sentence{Text: "Hello", LanguageID: 1},
			target:      &models.Sentence{Text: "سلام", LanguageID: 2},
			baseAudio:   []models.VoiceType{{CharacterID: 1, AudioURL: "/audio/hello.mp3", DurationMs: &duration}},
			targetAudio: []models.VoiceType{{CharacterID: 2, AudioURL: "/audio/salam.mp3"}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO sentences \(text, language_id\)`).
					WithArgs("Hello", 1).
					WillReturnResult(sqlmock.NewResult(10, 1))
				mock.ExpectExec(`INSERT INTO sentences \(text, language_id\)`).
					WithArgs("سلام", 2).
					WillReturnResult(sqlmock.NewResult(11, 1))
				mock.ExpectExec(`INSERT INTO sentence_translations`).
					WithArgs(10, 11, models.DefaultConfidence).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(`INSERT INTO sentence_audio`).
					WithArgs(10, 1, "/audio/hello.mp3", 1800).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(`INSERT INTO sentence_audio`).
					WithArgs(11, 2, "/audio/salam.mp3", nil).
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "success without audio",
			base:   &models.Sentence{Text: "Good morning", LanguageID: 1},
			target: &models.Sentence{Text: "صبح بخیر", LanguageID: 2},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO sentences \(text, language_id\)`).
					WithArgs("Good morning", 1).
					WillReturnResult(sqlmock.NewResult(20, 1))
				mock.ExpectExec(`INSERT INTO sentences \(text, language_id\)`).
					WithArgs("صبح بخیر", 2).
					WillReturnResult(sqlmock.NewResult(21, 1))
				mock.ExpectExec(`INSERT INTO sentence_translations`).
					WithArgs(20, 21, models.DefaultConfidence).
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "rollback when translation insert fails",
			base:   &models.Sentence{Text: "Hello", LanguageID: 1},
			target: &models.Sentence{Text: "سلام", LanguageID: 2},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO sentences \(text, language_id\)`).
					WithArgs("Hello", 1).
					WillReturnResult(sqlmock.NewResult(10, 1))
				mock.ExpectExec(`INSERT INTO sentences \(text, language_id\)`).
					WithArgs("سلام", 2).
					WillReturnResult(sqlmock.NewResult(11, 1))
				mock.ExpectExec(`INSERT INTO sentence_translations`).
					WithArgs(10, 11, models.DefaultConfidence).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
		{
			name:      "rollback when audio insert fails",
			base:      &models.Sentence{Text: "Hello", LanguageID: 1},
			target:    &models.Sentence{Text: "سلام", LanguageID: 2},
			baseAudio: []models.VoiceType{{CharacterID: 1, AudioURL: "/audio/hello.mp3"}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO sentences \(text, language_id\)`).
					WithArgs("Hello", 1).
					WillReturnResult(sqlmock.NewResult(10, 1))
				mock.ExpectExec(`INSERT INTO sentences \(text, language_id\)`).
					WithArgs("سلام", 2).
					WillReturnResult(sqlmock.NewResult(11, 1))
				mock.ExpectExec(`INSERT INTO sentence_translations`).
					WithArgs(10, 11, models.DefaultConfidence).
					WillReturnResult(sqlmock.NewResult(3, 1))
				mock.ExpectExec(`INSERT INTO sentence_audio`).
					WithArgs(10, 1, "/audio/hello.mp3", nil).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSentenceRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.CreatePair(context.Background(), tt.base, tt.target, tt.baseAudio, tt.targetAudio)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Zero(t, tt.base.ID)
				assert.Zero(t, tt.target.ID)
			} else {
				assert.NoError(t, err)
				assert.NotZero(t, tt.base.ID)
				assert.NotZero(t, tt.target.ID)
				assert.NotEqual(t, tt.base.ID, tt.target.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSentenceRepository_GetTranslationForTarget(t *testing.T) {
	tests := []struct {
		name             string
		targetID         int
		setupMock        func(sqlmock.Sqlmock)
		expectedError    bool
		expectedNotFound bool
		expectedBaseID   int
	}{
		{
			name:     "success",
			targetID: 11,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"base_sentence_id", "target_sentence_id", "confidence"}).
					AddRow(10, 11, 1)
				mock.ExpectQuery(`SELECT base_sentence_id, target_sentence_id, confidence`).
					WithArgs(11).
					WillReturnRows(rows)
			},
			expectedBaseID: 10,
		},
		{
			name:     "no association",
			targetID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT base_sentence_id, target_sentence_id, confidence`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError:    true,
			expectedNotFound: true,
		},
		{
			name:     "database error",
			targetID: 11,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT base_sentence_id, target_sentence_id, confidence`).
					WithArgs(11).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSentenceRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetTranslationForTarget(context.Background(), tt.targetID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Equal(t, tt.expectedNotFound, apperrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, tt.expectedBaseID, result.BaseSentenceID)
				assert.Equal(t, tt.targetID, result.TargetSentenceID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSentenceRepository_GetLanguageIDs(t *testing.T) {
	tests := []struct {
		name          string
		ids           []int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expected      map[int]int
	}{
		{
			name: "success",
			ids:  []int{10, 11},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "language_id"}).
					AddRow(10, 1).
					AddRow(11, 2)
				mock.ExpectQuery(`SELECT id, language_id FROM sentences WHERE id IN \(\?,\?\)`).
					WithArgs(10, 11).
					WillReturnRows(rows)
			},
			expected: map[int]int{10: 1, 11: 2},
		},
		{
			name: "missing sentence absent from result",
			ids:  []int{10, 99},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "language_id"}).
					AddRow(10, 1)
				mock.ExpectQuery(`SELECT id, language_id FROM sentences WHERE id IN \(\?,\?\)`).
					WithArgs(10, 99).
					WillReturnRows(rows)
			},
			expected: map[int]int{10: 1},
		},
		{
			name:      "empty input skips query",
			ids:       nil,
			setupMock: func(mock sqlmock.Sqlmock) {},
			expected:  map[int]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSentenceRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetLanguageIDs(context.Background(), tt.ids)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSentenceRepository_GetAllPairs(t *testing.T) {
	repo, mock, cleanup := setupSentenceRepository(t)
	defer cleanup()

	pairRows := sqlmock.NewRows([]string{"base_sentence_id", "base_text", "target_sentence_id", "target_text"}).
		AddRow(10, "Hello", 11, "سلام")
	mock.ExpectQuery(`FROM sentence_translations st`).
		WillReturnRows(pairRows)

	audioRows := sqlmock.NewRows([]string{"sentence_id", "character_id", "audio_url", "duration_ms"}).
		AddRow(10, 1, "/audio/hello.mp3", 1800).
		AddRow(11, 0, "/audio/salam.mp3", nil)
	mock.ExpectQuery(`FROM sentence_audio`).
		WithArgs(10, 11).
		WillReturnRows(audioRows)

	pairs, err := repo.GetAllPairs(context.Background())

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, 10, pairs[0].Source.ID)
	assert.Equal(t, "Hello", pairs[0].Source.Sentence)
	assert.Equal(t, 11, pairs[0].Target.ID)
	assert.Equal(t, "سلام", pairs[0].Target.Sentence)
	require.Len(t, pairs[0].Source.VoiceTypes, 1)
	require.Len(t, pairs[0].Target.VoiceTypes, 1)
	assert.Equal(t, 1, pairs[0].Source.VoiceTypes[0].CharacterID)
	require.NotNil(t, pairs[0].Source.VoiceTypes[0].DurationMs)
	assert.Equal(t, 1800, *pairs[0].Source.VoiceTypes[0].DurationMs)
	assert.Nil(t, pairs[0].Target.VoiceTypes[0].DurationMs)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSentenceRepository_CreateAudio(t *testing.T) {
	characterID := 3
	duration := 2100

	tests := []struct {
		name          string
		audio         *models.SentenceAudio
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name:  "success",
			audio: &models.SentenceAudio{SentenceID: 10, CharacterID: &characterID, AudioURL: "/audio/v2.mp3", DurationMs: &duration},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sentence_audio`).
					WithArgs(10, 3, "/audio/v2.mp3", 2100).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedID: 7,
		},
		{
			name:  "nullable character",
			audio: &models.SentenceAudio{SentenceID: 10, AudioURL: "/audio/v3.mp3", DurationMs: &duration},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sentence_audio`).
					WithArgs(10, nil, "/audio/v3.mp3", 2100).
					WillReturnResult(sqlmock.NewResult(8, 1))
			},
			expectedID: 8,
		},
		{
			name:  "database error",
			audio: &models.SentenceAudio{SentenceID: 10, AudioURL: "/audio/v4.mp3"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sentence_audio`).
					WithArgs(10, nil, "/audio/v4.mp3", nil).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSentenceRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.CreateAudio(context.Background(), tt.audio)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.audio.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSentenceRepository_Delete(t *testing.T) {
	tests := []struct {
		name             string
		id               int
		setupMock        func(sqlmock.Sqlmock)
		expectedError    bool
		expectedNotFound bool
	}{
		{
			name: "success",
			id:   10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sentences WHERE id = \?`).
					WithArgs(10).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sentences WHERE id = \?`).
					WithArgs(99).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError:    true,
			expectedNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSentenceRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Delete(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedNotFound, apperrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
