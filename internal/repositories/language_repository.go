package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

type languageRepository struct {
	db *sql.DB
}

// NewLanguageRepository creates a new language repository
func NewLanguageRepository(db *sql.DB) *languageRepository {
	return &languageRepository{
		db: db,
	}
}

// GetAll retrieves all languages ordered by code
func (r *languageRepository) GetAll(ctx context.Context) ([]models.Language, error) {
	query := `
		SELECT id, code, name, COALESCE(flag_image, '')
		FROM languages
		ORDER BY code
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query languages: %w", err)
	}
	defer rows.Close()

	var languages []models.Language
	for rows.Next() {
		var lang models.Language
		err := rows.Scan(&lang.ID, &lang.Code, &lang.Name, &lang.FlagImage)
		if err != nil {
			return nil, fmt.Errorf("failed to scan language: %w", err)
		}
		languages = append(languages, lang)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return languages, nil
}

// GetByID retrieves a language by its ID
func (r *languageRepository) GetByID(ctx context.Context, id int) (*models.Language, error) {
	query := `
		SELECT id, code, name, COALESCE(flag_image, '')
		FROM languages
		WHERE id = ?
		LIMIT 1
	`

	var lang models.Language
	err := r.db.QueryRowContext(ctx, query, id).Scan(&lang.ID, &lang.Code, &lang.Name, &lang.FlagImage)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("language", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get language by id: %w", err)
	}

	return &lang, nil
}

// ExistsByID checks if a language with the given ID exists
func (r *languageRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM languages WHERE id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check language existence: %w", err)
	}

	return exists, nil
}

// ExistsByCode checks if a language with the given code exists
func (r *languageRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM languages WHERE code = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check language code existence: %w", err)
	}

	return exists, nil
}

// Create registers a new language
func (r *languageRepository) Create(ctx context.Context, lang *models.Language) error {
	query := `
		INSERT INTO languages (code, name, flag_image)
		VALUES (?, ?, NULLIF(?, ''))
	`

	result, err := r.db.ExecContext(ctx, query, lang.Code, lang.Name, lang.FlagImage)
	if err != nil {
		return fmt.Errorf("failed to create language: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lang.ID = int(id)
	return nil
}
