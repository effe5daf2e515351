package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *sql.DB) *wordRepository {
	return &wordRepository{
		db: db,
	}
}

// CreatePair creates the base word, the target word, the translation
// association and every supplied audio variant for both sides as one
// transaction. Either the full set of rows exists afterwards or none do.
func (r *wordRepository) CreatePair(ctx context.Context, base, target *models.Word, baseAudio, targetAudio []models.VoiceType) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	baseID, err := insertWord(ctx, tx, base)
	if err != nil {
		return err
	}
	targetID, err := insertWord(ctx, tx, target)
	if err != nil {
		return err
	}

	translationQuery := `
		INSERT INTO word_translations (base_word_id, target_word_id, confidence)
		VALUES (?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, translationQuery, baseID, targetID, models.DefaultConfidence); err != nil {
		return fmt.Errorf("failed to create word translation: %w", err)
	}

	for _, audio := range baseAudio {
		if err := insertWordAudio(ctx, tx, baseID, audio); err != nil {
			return err
		}
	}
	for _, audio := range targetAudio {
		if err := insertWordAudio(ctx, tx, targetID, audio); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	base.ID = baseID
	target.ID = targetID
	return nil
}

func insertWord(ctx context.Context, tx *sql.Tx, word *models.Word) (int, error) {
	query := `INSERT INTO words (language_id, text, part_of_speech) VALUES (?, ?, NULLIF(?, ''))`

	result, err := tx.ExecContext(ctx, query, word.LanguageID, word.Text, word.PartOfSpeech)
	if err != nil {
		return 0, fmt.Errorf("failed to create word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return int(id), nil
}

func insertWordAudio(ctx context.Context, tx *sql.Tx, wordID int, audio models.VoiceType) error {
	query := `
		INSERT INTO word_audio (word_id, character_id, audio_url)
		VALUES (?, ?, ?)
	`

	var characterID any
	if audio.CharacterID != 0 {
		characterID = audio.CharacterID
	}

	if _, err := tx.ExecContext(ctx, query, wordID, characterID, audio.AudioURL); err != nil {
		return fmt.Errorf("failed to create word audio: %w", err)
	}

	return nil
}

// GetByID retrieves a word by its ID
func (r *wordRepository) GetByID(ctx context.Context, id int) (*models.Word, error) {
	query := `
		SELECT id, language_id, text, COALESCE(part_of_speech, ''), created_at
		FROM words
		WHERE id = ?
		LIMIT 1
	`

	var word models.Word
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&word.ID,
		&word.LanguageID,
		&word.Text,
		&word.PartOfSpeech,
		&word.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("word", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by id: %w", err)
	}

	return &word, nil
}

// GetLanguageIDs retrieves the language of each given word, keyed by word ID.
// Missing words are absent from the result map.
func (r *wordRepository) GetLanguageIDs(ctx context.Context, ids []int) (map[int]int, error) {
	if len(ids) == 0 {
		return map[int]int{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`SELECT id, language_id FROM words WHERE id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query word languages: %w", err)
	}
	defer rows.Close()

	languages := make(map[int]int, len(ids))
	for rows.Next() {
		var id, languageID int
		if err := rows.Scan(&id, &languageID); err != nil {
			return nil, fmt.Errorf("failed to scan word language: %w", err)
		}
		languages[id] = languageID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return languages, nil
}

// GetTranslationForTarget retrieves the translation association for a target
// word. When several associations exist the one with the highest confidence
// wins; ties break on the oldest association.
func (r *wordRepository) GetTranslationForTarget(ctx context.Context, targetID int) (*models.WordTranslation, error) {
	query := `
		SELECT base_word_id, target_word_id, confidence
		FROM word_translations
		WHERE target_word_id = ?
		ORDER BY confidence DESC, id ASC
		LIMIT 1
	`

	var translation models.WordTranslation
	err := r.db.QueryRowContext(ctx, query, targetID).Scan(
		&translation.BaseWordID,
		&translation.TargetWordID,
		&translation.Confidence,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("translation for word", targetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word translation: %w", err)
	}

	return &translation, nil
}

// GetAllPairs retrieves every word translation pair with both texts
func (r *wordRepository) GetAllPairs(ctx context.Context) ([]models.WordPairResponse, error) {
	query := `
		SELECT
			wt.base_word_id, bw.text, COALESCE(bw.part_of_speech, ''),
			wt.target_word_id, tw.text, COALESCE(tw.part_of_speech, '')
		FROM word_translations wt
		JOIN words bw ON bw.id = wt.base_word_id
		JOIN words tw ON tw.id = wt.target_word_id
		ORDER BY wt.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query word pairs: %w", err)
	}
	defer rows.Close()

	var pairs []models.WordPairResponse
	var wordIDs []int
	for rows.Next() {
		var pair models.WordPairResponse
		err := rows.Scan(
			&pair.Source.ID, &pair.Source.Word, &pair.Source.PartOfSpeech,
			&pair.Target.ID, &pair.Target.Word, &pair.Target.PartOfSpeech,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word pair: %w", err)
		}
		wordIDs = append(wordIDs, pair.Source.ID, pair.Target.ID)
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	audioByWord, err := r.getAudioForWords(ctx, wordIDs)
	if err != nil {
		return nil, err
	}

	for i := range pairs {
		pairs[i].Source.VoiceTypes = audioByWord[pairs[i].Source.ID]
		pairs[i].Target.VoiceTypes = audioByWord[pairs[i].Target.ID]
		if pairs[i].Source.VoiceTypes == nil {
			pairs[i].Source.VoiceTypes = []models.VoiceType{}
		}
		if pairs[i].Target.VoiceTypes == nil {
			pairs[i].Target.VoiceTypes = []models.VoiceType{}
		}
	}

	return pairs, nil
}

// getAudioForWords loads the audio variants of the given words keyed by word ID
func (r *wordRepository) getAudioForWords(ctx context.Context, ids []int) (map[int][]models.VoiceType, error) {
	if len(ids) == 0 {
		return map[int][]models.VoiceType{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
		SELECT word_id, COALESCE(character_id, 0), audio_url
		FROM word_audio
		WHERE word_id IN (%s)
		ORDER BY id
	`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query word audio: %w", err)
	}
	defer rows.Close()

	audioByWord := make(map[int][]models.VoiceType)
	for rows.Next() {
		var wordID int
		var voice models.VoiceType
		if err := rows.Scan(&wordID, &voice.CharacterID, &voice.AudioURL); err != nil {
			return nil, fmt.Errorf("failed to scan word audio: %w", err)
		}
		audioByWord[wordID] = append(audioByWord[wordID], voice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return audioByWord, nil
}

// GetAudioByWordID retrieves all audio variants of one word
func (r *wordRepository) GetAudioByWordID(ctx context.Context, wordID int) ([]models.VoiceType, error) {
	audioByWord, err := r.getAudioForWords(ctx, []int{wordID})
	if err != nil {
		return nil, err
	}

	voices := audioByWord[wordID]
	if voices == nil {
		voices = []models.VoiceType{}
	}
	return voices, nil
}

// Delete deletes a word by ID. Audio, translation and exercise rows
// referencing it are removed by the cascade.
func (r *wordRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM words WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFound("word", id)
	}

	return nil
}
