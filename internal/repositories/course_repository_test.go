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

// setupCourseRepository creates a course repository with a mock database
func setupCourseRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestCourseRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupCourseRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO courses`).
		WithArgs("English for Persian speakers", "/img/course.png", 2, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{
		Title:            "English for Persian speakers",
		Image:            "/img/course.png",
		BaseLanguageID:   2,
		TargetLanguageID: 1,
	}
	err := repo.Create(context.Background(), course)

	require.NoError(t, err)
	assert.Equal(t, 1, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Update(t *testing.T) {
	tests := []struct {
		name               string
		id                 int
		course             *models.Course
		setupMock          func(sqlmock.Sqlmock)
		expectedError      bool
		expectedValidation bool
		expectedNotFound   bool
	}{
		{
			name:   "updates title only",
			id:     1,
			course: &models.Course{Title: "New title"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses`).
					WithArgs("New title", 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:               "no fields to update",
			id:                 1,
			course:             &models.Course{},
			setupMock:          func(mock sqlmock.Sqlmock) {},
			expectedError:      true,
			expectedValidation: true,
		},
		{
			name:   "not found",
			id:     99,
			course: &models.Course{Title: "New title"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE courses`).
					WithArgs("New title", 99).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError:    true,
			expectedNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Update(context.Background(), tt.id, tt.course)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedValidation, apperrors.IsValidation(err))
				assert.Equal(t, tt.expectedNotFound, apperrors.IsNotFound(err))
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_CreateSection(t *testing.T) {
	threshold := 80

	tests := []struct {
		name          string
		section       *models.Section
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedOrder int
	}{
		{
			name: "appends at end when order is zero",
			section: &models.Section{
				CourseID:        1,
				Title:           "Basics",
				DifficultyLevel: models.DifficultyA1,
				UnlockThreshold: &threshold,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				orderRows := sqlmock.NewRows([]string{"next"}).AddRow(4)
				mock.ExpectQuery(`FROM sections WHERE course_id = \?`).
					WithArgs(1).
					WillReturnRows(orderRows)
				mock.ExpectExec(`INSERT INTO sections`).
					WithArgs(1, "Basics", "", "A1", 4, 80).
					WillReturnResult(sqlmock.NewResult(9, 1))
				mock.ExpectCommit()
			},
			expectedOrder: 4,
		},
		{
			name: "shifts trailing sections for a positioned insert",
			section: &models.Section{
				CourseID: 1,
				Title:    "Basics",
				Order:    2,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE sections`).
					WithArgs(1, 2).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(`INSERT INTO sections`).
					WithArgs(1, "Basics", "", "", 2, nil).
					WillReturnResult(sqlmock.NewResult(10, 1))
				mock.ExpectCommit()
			},
			expectedOrder: 2,
		},
		{
			name: "rollback on insert failure",
			section: &models.Section{
				CourseID: 1,
				Title:    "Basics",
				Order:    1,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE sections`).
					WithArgs(1, 1).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO sections`).
					WithArgs(1, "Basics", "", "", 1, nil).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.CreateSection(context.Background(), tt.section)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedOrder, tt.section.Order)
				assert.NotZero(t, tt.section.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCourseRepository_DeleteSection(t *testing.T) {
	tests := []struct {
		name             string
		id               int
		setupMock        func(sqlmock.Sqlmock)
		expectedError    bool
		expectedNotFound bool
	}{
		{
			name: "deletes and compacts remaining orders",
			id:   9,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				lookupRows := sqlmock.NewRows([]string{"course_id", "order"}).AddRow(1, 2)
				mock.ExpectQuery(`SELECT course_id`).
					WithArgs(9).
					WillReturnRows(lookupRows)
				mock.ExpectExec(`DELETE FROM sections WHERE id = \?`).
					WithArgs(9).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE sections`).
					WithArgs(1, 2).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT course_id`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedError:    true,
			expectedNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupCourseRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.DeleteSection(context.Background(), tt.id)

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

func TestCourseRepository_GetUnitsBySectionID(t *testing.T) {
	repo, mock, cleanup := setupCourseRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "section_id", "title", "description", "order"}).
		AddRow(1, 9, "Greetings", "", 1).
		AddRow(2, 9, "Numbers", "Counting to ten", 2)
	mock.ExpectQuery(`FROM units WHERE section_id = \?`).
		WithArgs(9).
		WillReturnRows(rows)

	units, err := repo.GetUnitsBySectionID(context.Background(), 9)

	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, 1, units[0].Order)
	assert.Equal(t, 2, units[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}
