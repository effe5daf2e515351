package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, unit_id, title, value_xp, ` + "`order`" + `
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.UnitID,
		&lesson.Title,
		&lesson.ValueXP,
		&lesson.Order,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("lesson", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetByUnitID retrieves all lessons of a unit, sorted by order
func (r *lessonRepository) GetByUnitID(ctx context.Context, unitID int) ([]models.Lesson, error) {
	query := `
		SELECT id, unit_id, title, value_xp, ` + "`order`" + `
		FROM lessons
		WHERE unit_id = ?
		ORDER BY ` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(&lesson.ID, &lesson.UnitID, &lesson.Title, &lesson.ValueXP, &lesson.Order)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// ExistsByID checks if a lesson with the given ID exists
func (r *lessonRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson existence: %w", err)
	}

	return exists, nil
}

// Create creates a lesson at the requested position. Trailing lessons shift
// down by one inside the same transaction so the unit's lesson orders stay dense.
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if lesson.Order == 0 {
		nextQuery := `SELECT COALESCE(MAX(` + "`order`" + `), 0) + 1 FROM lessons WHERE unit_id = ?`
		if err := tx.QueryRowContext(ctx, nextQuery, lesson.UnitID).Scan(&lesson.Order); err != nil {
			return fmt.Errorf("failed to get next lesson order: %w", err)
		}
	} else {
		shiftQuery := `
			UPDATE lessons
			SET ` + "`order`" + ` = ` + "`order`" + ` + 1
			WHERE unit_id = ? AND ` + "`order`" + ` >= ?
		`
		if _, err := tx.ExecContext(ctx, shiftQuery, lesson.UnitID, lesson.Order); err != nil {
			return fmt.Errorf("failed to shift lesson order: %w", err)
		}
	}

	insertQuery := `
		INSERT INTO lessons (unit_id, title, value_xp, ` + "`order`" + `)
		VALUES (?, ?, ?, ?)
	`
	result, err := tx.ExecContext(ctx, insertQuery, lesson.UnitID, lesson.Title, lesson.ValueXP, lesson.Order)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

// Update updates a lesson (partial update)
func (r *lessonRepository) Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error {
	var setParts []string
	var args []any

	if req.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, req.Title)
	}
	if req.ValueXP != nil {
		setParts = append(setParts, "value_xp = ?")
		args = append(args, *req.ValueXP)
	}

	if len(setParts) == 0 {
		return apperrors.NewValidation("", "no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE lessons
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFound("lesson", id)
	}

	return nil
}

// Delete deletes a lesson and compacts the remaining lesson orders of the
// unit in the same transaction
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var unitID, order int
	lookupQuery := `SELECT unit_id, ` + "`order`" + ` FROM lessons WHERE id = ? LIMIT 1`
	err = tx.QueryRowContext(ctx, lookupQuery, id).Scan(&unitID, &order)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("lesson", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get lesson: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM lessons WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	compactQuery := `
		UPDATE lessons
		SET ` + "`order`" + ` = ` + "`order`" + ` - 1
		WHERE unit_id = ? AND ` + "`order`" + ` > ?
	`
	if _, err := tx.ExecContext(ctx, compactQuery, unitID, order); err != nil {
		return fmt.Errorf("failed to compact lesson order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetCourseLanguages resolves the base and target language of the course a
// lesson belongs to, walking lessons -> units -> sections -> courses
func (r *lessonRepository) GetCourseLanguages(ctx context.Context, lessonID int) (baseLanguageID, targetLanguageID int, err error) {
	query := `
		SELECT c.base_language_id, c.target_language_id
		FROM lessons l
		JOIN units u ON u.id = l.unit_id
		JOIN sections s ON s.id = u.section_id
		JOIN courses c ON c.id = s.course_id
		WHERE l.id = ?
		LIMIT 1
	`

	err = r.db.QueryRowContext(ctx, query, lessonID).Scan(&baseLanguageID, &targetLanguageID)
	if err == sql.ErrNoRows {
		return 0, 0, apperrors.NewNotFound("lesson", lessonID)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get course languages: %w", err)
	}

	return baseLanguageID, targetLanguageID, nil
}
