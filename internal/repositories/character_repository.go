package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

type characterRepository struct {
	db *sql.DB
}

// NewCharacterRepository creates a new character repository
func NewCharacterRepository(db *sql.DB) *characterRepository {
	return &characterRepository{
		db: db,
	}
}

// GetAll retrieves all voice characters
func (r *characterRepository) GetAll(ctx context.Context) ([]models.Character, error) {
	query := `
		SELECT id, name, COALESCE(rive_file, '')
		FROM characters
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	defer rows.Close()

	var characters []models.Character
	for rows.Next() {
		var character models.Character
		err := rows.Scan(&character.ID, &character.Name, &character.RiveFile)
		if err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, character)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return characters, nil
}

// GetByID retrieves a character by its ID
func (r *characterRepository) GetByID(ctx context.Context, id int) (*models.Character, error) {
	query := `
		SELECT id, name, COALESCE(rive_file, '')
		FROM characters
		WHERE id = ?
		LIMIT 1
	`

	var character models.Character
	err := r.db.QueryRowContext(ctx, query, id).Scan(&character.ID, &character.Name, &character.RiveFile)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("character", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character by id: %w", err)
	}

	return &character, nil
}

// ExistsByID checks if a character with the given ID exists
func (r *characterRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM characters WHERE id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check character existence: %w", err)
	}

	return exists, nil
}

// ExistsByName checks if a character with the given name exists
func (r *characterRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM characters WHERE name = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check character name existence: %w", err)
	}

	return exists, nil
}

// Create creates a new character
func (r *characterRepository) Create(ctx context.Context, character *models.Character) error {
	query := `
		INSERT INTO characters (name, rive_file)
		VALUES (?, NULLIF(?, ''))
	`

	result, err := r.db.ExecContext(ctx, query, character.Name, character.RiveFile)
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	character.ID = int(id)
	return nil
}

// Update updates a character (partial update)
func (r *characterRepository) Update(ctx context.Context, id int, character *models.Character) error {
	var setParts []string
	var args []any

	if character.Name != "" {
		setParts = append(setParts, "name = ?")
		args = append(args, character.Name)
	}
	if character.RiveFile != "" {
		setParts = append(setParts, "rive_file = ?")
		args = append(args, character.RiveFile)
	}

	if len(setParts) == 0 {
		return apperrors.NewValidation("", "no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE characters
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFound("character", id)
	}

	return nil
}

// Delete deletes a character by ID. Audio rows attributed to the character
// are removed by the cascade.
func (r *characterRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM characters WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFound("character", id)
	}

	return nil
}
