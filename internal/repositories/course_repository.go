package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetAll retrieves all courses
func (r *courseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `
		SELECT id, title, COALESCE(image, ''), base_language_id, target_language_id
		FROM courses
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(&course.ID, &course.Title, &course.Image, &course.BaseLanguageID, &course.TargetLanguageID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, title, COALESCE(image, ''), base_language_id, target_language_id
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Image,
		&course.BaseLanguageID,
		&course.TargetLanguageID,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("course", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// ExistsByID checks if a course with the given ID exists
func (r *courseRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}

	return exists, nil
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, image, base_language_id, target_language_id)
		VALUES (?, NULLIF(?, ''), ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Image,
		course.BaseLanguageID,
		course.TargetLanguageID,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update updates a course (partial update)
func (r *courseRepository) Update(ctx context.Context, id int, course *models.Course) error {
	var setParts []string
	var args []any

	if course.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, course.Title)
	}
	if course.Image != "" {
		setParts = append(setParts, "image = ?")
		args = append(args, course.Image)
	}

	if len(setParts) == 0 {
		return apperrors.NewValidation("", "no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE courses
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFound("course", id)
	}

	return nil
}

// Delete deletes a course by ID. Sections, units, lessons and games below it
// are removed by the cascade.
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM courses WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFound("course", id)
	}

	return nil
}

// GetSectionsByCourseID retrieves all sections of a course, sorted by order
func (r *courseRepository) GetSectionsByCourseID(ctx context.Context, courseID int) ([]models.Section, error) {
	query := `
		SELECT id, course_id, title, COALESCE(description, ''), COALESCE(difficulty_level, ''), ` + "`order`" + `, unlock_threshold
		FROM sections
		WHERE course_id = ?
		ORDER BY ` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		var section models.Section
		var threshold sql.NullInt64
		err := rows.Scan(
			&section.ID,
			&section.CourseID,
			&section.Title,
			&section.Description,
			&section.DifficultyLevel,
			&section.Order,
			&threshold,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		if threshold.Valid {
			t := int(threshold.Int64)
			section.UnlockThreshold = &t
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sections, nil
}

// ExistsSectionByID checks if a section with the given ID exists
func (r *courseRepository) ExistsSectionByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM sections WHERE id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check section existence: %w", err)
	}

	return exists, nil
}

// CreateSection creates a section at the requested position. Trailing
// sections shift down by one inside the same transaction so the course's
// section orders stay dense.
func (r *courseRepository) CreateSection(ctx context.Context, section *models.Section) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if section.Order == 0 {
		nextQuery := `SELECT COALESCE(MAX(` + "`order`" + `), 0) + 1 FROM sections WHERE course_id = ?`
		if err := tx.QueryRowContext(ctx, nextQuery, section.CourseID).Scan(&section.Order); err != nil {
			return fmt.Errorf("failed to get next section order: %w", err)
		}
	} else {
		shiftQuery := `
			UPDATE sections
			SET ` + "`order`" + ` = ` + "`order`" + ` + 1
			WHERE course_id = ? AND ` + "`order`" + ` >= ?
		`
		if _, err := tx.ExecContext(ctx, shiftQuery, section.CourseID, section.Order); err != nil {
			return fmt.Errorf("failed to shift section order: %w", err)
		}
	}

	var threshold any
	if section.UnlockThreshold != nil {
		threshold = *section.UnlockThreshold
	}
	insertQuery := `
		INSERT INTO sections (course_id, title, description, difficulty_level, ` + "`order`" + `, unlock_threshold)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?)
	`
	result, err := tx.ExecContext(ctx, insertQuery,
		section.CourseID,
		section.Title,
		section.Description,
		string(section.DifficultyLevel),
		section.Order,
		threshold,
	)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	section.ID = int(id)
	return nil
}

// DeleteSection deletes a section and compacts the remaining section orders
// of the course in the same transaction
func (r *courseRepository) DeleteSection(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var courseID, order int
	lookupQuery := `SELECT course_id, ` + "`order`" + ` FROM sections WHERE id = ? LIMIT 1`
	err = tx.QueryRowContext(ctx, lookupQuery, id).Scan(&courseID, &order)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("section", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get section: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}

	compactQuery := `
		UPDATE sections
		SET ` + "`order`" + ` = ` + "`order`" + ` - 1
		WHERE course_id = ? AND ` + "`order`" + ` > ?
	`
	if _, err := tx.ExecContext(ctx, compactQuery, courseID, order); err != nil {
		return fmt.Errorf("failed to compact section order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetUnitsBySectionID retrieves all units of a section, sorted by order
func (r *courseRepository) GetUnitsBySectionID(ctx context.Context, sectionID int) ([]models.Unit, error) {
	query := `
		SELECT id, section_id, title, COALESCE(description, ''), ` + "`order`" + `
		FROM units
		WHERE section_id = ?
		ORDER BY ` + "`order`" + `
	`

	rows, err := r.db.QueryContext(ctx, query, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		var unit models.Unit
		err := rows.Scan(&unit.ID, &unit.SectionID, &unit.Title, &unit.Description, &unit.Order)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return units, nil
}

// ExistsUnitByID checks if a unit with the given ID exists
func (r *courseRepository) ExistsUnitByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM units WHERE id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check unit existence: %w", err)
	}

	return exists, nil
}

// CreateUnit creates a unit at the requested position. Trailing units shift
// down by one inside the same transaction so the section's unit orders stay dense.
func (r *courseRepository) CreateUnit(ctx context.Context, unit *models.Unit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if unit.Order == 0 {
		nextQuery := `SELECT COALESCE(MAX(` + "`order`" + `), 0) + 1 FROM units WHERE section_id = ?`
		if err := tx.QueryRowContext(ctx, nextQuery, unit.SectionID).Scan(&unit.Order); err != nil {
			return fmt.Errorf("failed to get next unit order: %w", err)
		}
	} else {
		shiftQuery := `
			UPDATE units
			SET ` + "`order`" + ` = ` + "`order`" + ` + 1
			WHERE section_id = ? AND ` + "`order`" + ` >= ?
		`
		if _, err := tx.ExecContext(ctx, shiftQuery, unit.SectionID, unit.Order); err != nil {
			return fmt.Errorf("failed to shift unit order: %w", err)
		}
	}

	insertQuery := `
		INSERT INTO units (section_id, title, description, ` + "`order`" + `)
		VALUES (?, ?, NULLIF(?, ''), ?)
	`
	result, err := tx.ExecContext(ctx, insertQuery, unit.SectionID, unit.Title, unit.Description, unit.Order)
	if err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	unit.ID = int(id)
	return nil
}

// DeleteUnit deletes a unit and compacts the remaining unit orders of the
// section in the same transaction
func (r *courseRepository) DeleteUnit(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sectionID, order int
	lookupQuery := `SELECT section_id, ` + "`order`" + ` FROM units WHERE id = ? LIMIT 1`
	err = tx.QueryRowContext(ctx, lookupQuery, id).Scan(&sectionID, &order)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("unit", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get unit: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM units WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	compactQuery := `
		UPDATE units
		SET ` + "`order`" + ` = ` + "`order`" + ` - 1
		WHERE section_id = ? AND ` + "`order`" + ` > ?
	`
	if _, err := tx.ExecContext(ctx, compactQuery, sectionID, order); err != nil {
		return fmt.Errorf("failed to compact unit order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
