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

// setupLanguageRepository creates a language repository with a mock database
func setupLanguageRepository(t *testing.T) (*languageRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLanguageRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestLanguageRepository_GetAll(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "code", "name", "flag_image"}).
					AddRow(1, "en", "English", "/flags/en.svg").
					AddRow(2, "fa", "Persian", "/flags/fa.svg")
				mock.ExpectQuery(`SELECT id, code, name, COALESCE\(flag_image, ''\)`).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name: "empty result",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "code", "name", "flag_image"})
				mock.ExpectQuery(`SELECT id, code, name, COALESCE\(flag_image, ''\)`).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name: "database query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, code, name, COALESCE\(flag_image, ''\)`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedCount: 0,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "code", "name", "flag_image"}).
					AddRow("invalid", "en", "English", "")
				mock.ExpectQuery(`SELECT id, code, name, COALESCE\(flag_image, ''\)`).
					WillReturnRows(rows)
			},
			expectedError: true,
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLanguageRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetAll(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLanguageRepository_GetByID(t *testing.T) {
	tests := []struct {
		name             string
		id               int
		setupMock        func(sqlmock.Sqlmock)
		expectedError    bool
		expectedNotFound bool
	}{
		{
			name: "success",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "code", "name", "flag_image"}).
					AddRow(1, "en", "English", "")
				mock.ExpectQuery(`SELECT id, code, name, COALESCE\(flag_image, ''\)`).
					WithArgs(1).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, code, name, COALESCE\(flag_image, ''\)`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError:    true,
			expectedNotFound: true,
		},
		{
			name: "database error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, code, name, COALESCE\(flag_image, ''\)`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLanguageRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
				assert.Equal(t, tt.expectedNotFound, apperrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, tt.id, result.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLanguageRepository_ExistsByCode(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		setupMock      func(sqlmock.Sqlmock)
		expectedError  bool
		expectedExists bool
	}{
		{
			name: "exists",
			code: "en",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM languages WHERE code = \?\)`).
					WithArgs("en").
					WillReturnRows(rows)
			},
			expectedExists: true,
		},
		{
			name: "does not exist",
			code: "xx",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM languages WHERE code = \?\)`).
					WithArgs("xx").
					WillReturnRows(rows)
			},
			expectedExists: false,
		},
		{
			name: "database error",
			code: "en",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM languages WHERE code = \?\)`).
					WithArgs("en").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLanguageRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			exists, err := repo.ExistsByCode(context.Background(), tt.code)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedExists, exists)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLanguageRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		language      *models.Language
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name:     "success",
			language: &models.Language{Code: "de", Name: "German", FlagImage: "/flags/de.svg"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO languages`).
					WithArgs("de", "German", "/flags/de.svg").
					WillReturnResult(sqlmock.NewResult(3, 1))
			},
			expectedID: 3,
		},
		{
			name:     "database error",
			language: &models.Language{Code: "de", Name: "German"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO languages`).
					WithArgs("de", "German", "").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLanguageRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.language)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.language.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
