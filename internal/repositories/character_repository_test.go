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

// setupCharacterRepository creates a character repository with a mock database
func setupCharacterRepository(t *testing.T) (*characterRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCharacterRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestCharacterRepository_GetByID(t *testing.T) {
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
				rows := sqlmock.NewRows([]string{"id", "name", "rive_file"}).
					AddRow(1, "Leo", "/rive/leo.riv")
				mock.ExpectQuery(`SELECT id, name, COALESCE\(rive_file, ''\)`).
					WithArgs(1).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, COALESCE\(rive_file, ''\)`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError:    true,
			expectedNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCharacterRepository(t)
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

func TestCharacterRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		character     *models.Character
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name:      "success",
			character: &models.Character{Name: "Mira", RiveFile: "/rive/mira.riv"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO characters`).
					WithArgs("Mira", "/rive/mira.riv").
					WillReturnResult(sqlmock.NewResult(2, 1))
			},
			expectedID: 2,
		},
		{
			name:      "database error",
			character: &models.Character{Name: "Mira"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO characters`).
					WithArgs("Mira", "").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCharacterRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.character)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.character.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCharacterRepository_Delete(t *testing.T) {
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
				mock.ExpectExec(`DELETE FROM characters WHERE id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM characters WHERE id = \?`).
					WithArgs(99).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError:    true,
			expectedNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCharacterRepository(t)
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
