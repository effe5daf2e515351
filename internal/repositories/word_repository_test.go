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

// setupWordRepository creates a word repository with a mock database
func setupWordRepository(t *testing.T) (*wordRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewWordRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestWordRepository_CreatePair(t *testing.T) {
	tests := []struct {
		name          string
		base          *models.Word
		target        *models.Word
		baseAudio     []models.VoiceType
		targetAudio   []models.VoiceType
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:        "success with audio",
			base:        &models.Word{LanguageID: 2, Text: "گربه", PartOfSpeech: "noun"},
			target:      &models.Word{LanguageID: 1, Text: "cat", PartOfSpeech: "noun"},
			targetAudio: []models.VoiceType{{CharacterID: 1, AudioURL: "/audio/cat.mp3"}},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO words`).
					WithArgs(2, "گربه", "noun").
					WillReturnResult(sqlmock.NewResult(30, 1))
				mock.ExpectExec(`INSERT INTO words`).
					WithArgs(1, "cat", "noun").
					WillReturnResult(sqlmock.NewResult(31, 1))
				mock.ExpectExec(`INSERT INTO word_translations`).
					WithArgs(30, 31, models.DefaultConfidence).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(`INSERT INTO word_audio`).
					WithArgs(31, 1, "/audio/cat.mp3").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "rollback when translation insert fails",
			base:   &models.Word{LanguageID: 2, Text: "گربه"},
			target: &models.Word{LanguageID: 1, Text: "cat"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO words`).
					WithArgs(2, "گربه", "").
					WillReturnResult(sqlmock.NewResult(30, 1))
				mock.ExpectExec(`INSERT INTO words`).
					WithArgs(1, "cat", "").
					WillReturnResult(sqlmock.NewResult(31, 1))
				mock.ExpectExec(`INSERT INTO word_translations`).
					WithArgs(30, 31, models.DefaultConfidence).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupWordRepository(t)
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
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWordRepository_GetTranslationForTarget(t *testing.T) {
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
			targetID: 31,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"base_word_id", "target_word_id", "confidence"}).
					AddRow(30, 31, 1)
				mock.ExpectQuery(`SELECT base_word_id, target_word_id, confidence`).
					WithArgs(31).
					WillReturnRows(rows)
			},
			expectedBaseID: 30,
		},
		{
			name:     "no association",
			targetID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT base_word_id, target_word_id, confidence`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError:    true,
			expectedNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupWordRepository(t)
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
				assert.Equal(t, tt.expectedBaseID, result.BaseWordID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
