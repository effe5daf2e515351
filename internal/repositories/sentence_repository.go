package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
)

type sentenceRepository struct {
	db *sql.DB
}

// NewSentenceRepository creates a new sentence repository
func NewSentenceRepository(db *sql.DB) *sentenceRepository {
	return &sentenceRepository{
		db: db,
	}
}

// CreatePair creates the base sentence, the target sentence, the translation
// association and every supplied audio variant for both sides as one
// transaction. Either the full set of rows exists afterwards or none do.
// The sentence IDs are set on the passed models on success.
func (r *sentenceRepository) CreatePair(ctx context.Context, base, target *models.Sentence, baseAudio, targetAudio []models.VoiceType) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	baseID, err := insertSentence(ctx, tx, base)
	if err != nil {
		return err
	}
	targetID, err := insertSentence(ctx, tx, target)
	if err != nil {
		return err
	}

	translationQuery := `
		INSERT INTO sentence_translations (base_sentence_id, target_sentence_id, confidence)
		VALUES (?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, translationQuery, baseID, targetID, models.DefaultConfidence); err != nil {
		return fmt.Errorf("failed to create sentence translation: %w", err)
	}

	for _, audio := range baseAudio {
		if err := insertSentenceAudio(ctx, tx, baseID, audio); err != nil {
			return err
		}
	}
	for _, audio := range targetAudio {
		if err := insertSentenceAudio(ctx, tx, targetID, audio); err != nil {
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

func insertSentence(ctx context.Context, tx *sql.Tx, sentence *models.Sentence) (int, error) {
	query := `INSERT INTO sentences (text, language_id) VALUES (?, ?)`

	result, err := tx.ExecContext(ctx, query, sentence.Text, sentence.LanguageID)
	if err != nil {
		return 0, fmt.Errorf("failed to create sentence: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return int(id), nil
}

func insertSentenceAudio(ctx context.Context, tx *sql.Tx, sentenceID int, audio models.VoiceType) error {
	query := `
		INSERT INTO sentence_audio (sentence_id, character_id, audio_url, duration_ms)
		VALUES (?, ?, ?, ?)
	`

	var characterID any
	if audio.CharacterID != 0 {
		characterID = audio.CharacterID
	}
	var durationMs any
	if audio.DurationMs != nil {
		durationMs = *audio.DurationMs
	}

	if _, err := tx.ExecContext(ctx, query, sentenceID, characterID, audio.AudioURL, durationMs); err != nil {
		return fmt.Errorf("failed to create sentence audio: %w", err)
	}

	return nil
}

// GetByID retrieves a sentence by its ID
func (r *sentenceRepository) GetByID(ctx context.Context, id int) (*models.Sentence, error) {
	query := `
		SELECT id, text, language_id
		FROM sentences
		WHERE id = ?
		LIMIT 1
	`

	var sentence models.Sentence
	err := r.db.QueryRowContext(ctx, query, id).Scan(&sentence.ID, &sentence.Text, &sentence.LanguageID)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("sentence", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sentence by id: %w", err)
	}

	return &sentence, nil
}

// GetLanguageIDs retrieves the language of each given sentence, keyed by sentence ID.
// Missing sentences are absent from the result map.
func (r *sentenceRepository) GetLanguageIDs(ctx context.Context, ids []int) (map[int]int, error) {
	if len(ids) == 0 {
		return map[int]int{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`SELECT id, language_id FROM sentences WHERE id IN (%s)`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentence languages: %w", err)
	}
	defer rows.Close()

	languages := make(map[int]int, len(ids))
	for rows.Next() {
		var id, languageID int
		if err := rows.Scan(&id, &languageID); err != nil {
			return nil, fmt.Errorf("failed to scan sentence language: %w", err)
		}
		languages[id] = languageID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return languages, nil
}

// GetTranslationForTarget retrieves the translation association for a target
// sentence. When several associations exist the one with the highest
// confidence wins; ties break on the oldest association.
func (r *sentenceRepository) GetTranslationForTarget(ctx context.Context, targetID int) (*models.SentenceTranslation, error) {
	query := `
		SELECT base_sentence_id, target_sentence_id, confidence
		FROM sentence_translations
		WHERE target_sentence_id = ?
		ORDER BY confidence DESC, id ASC
		LIMIT 1
	`

	var translation models.SentenceTranslation
	err := r.db.QueryRowContext(ctx, query, targetID).Scan(
		&translation.BaseSentenceID,
		&translation.TargetSentenceID,
		&translation.Confidence,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("translation for sentence", targetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sentence translation: %w", err)
	}

	return &translation, nil
}

// GetAllPairs retrieves every sentence translation pair with both texts
func (r *sentenceRepository) GetAllPairs(ctx context.Context) ([]models.SentencePairResponse, error) {
	query := `
		SELECT st.base_sentence_id, bs.text, st.target_sentence_id, ts.text
		FROM sentence_translations st
		JOIN sentences bs ON bs.id = st.base_sentence_id
		JOIN sentences ts ON ts.id = st.target_sentence_id
		ORDER BY st.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentence pairs: %w", err)
	}
	defer rows.Close()

	var pairs []models.SentencePairResponse
	var sentenceIDs []int
	for rows.Next() {
		var pair models.SentencePairResponse
		err := rows.Scan(&pair.Source.ID, &pair.Source.Sentence, &pair.Target.ID, &pair.Target.Sentence)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sentence pair: %w", err)
		}
		sentenceIDs = append(sentenceIDs, pair.Source.ID, pair.Target.ID)
		pairs = append(pairs, pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	audioBySentence, err := r.getAudioForSentences(ctx, sentenceIDs)
	if err != nil {
		return nil, err
	}

	for i := range pairs {
		pairs[i].Source.VoiceTypes = audioBySentence[pairs[i].Source.ID]
		pairs[i].Target.VoiceTypes = audioBySentence[pairs[i].Target.ID]
		if pairs[i].Source.VoiceTypes == nil {
			pairs[i].Source.VoiceTypes = []models.VoiceType{}
		}
		if pairs[i].Target.VoiceTypes == nil {
			pairs[i].Target.VoiceTypes = []models.VoiceType{}
		}
	}

	return pairs, nil
}

// getAudioForSentences loads the audio variants of the given sentences keyed by sentence ID
func (r *sentenceRepository) getAudioForSentences(ctx context.Context, ids []int) (map[int][]models.VoiceType, error) {
	if len(ids) == 0 {
		return map[int][]models.VoiceType{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	query := fmt.Sprintf(`
		SELECT sentence_id, COALESCE(character_id, 0), audio_url, duration_ms
		FROM sentence_audio
		WHERE sentence_id IN (%s)
		ORDER BY id
	`, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentence audio: %w", err)
	}
	defer rows.Close()

	audioBySentence := make(map[int][]models.VoiceType)
	for rows.Next() {
		var sentenceID int
		var voice models.VoiceType
		var durationMs sql.NullInt64
		if err := rows.Scan(&sentenceID, &voice.CharacterID, &voice.AudioURL, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan sentence audio: %w", err)
		}
		if durationMs.Valid {
			ms := int(durationMs.Int64)
			voice.DurationMs = &ms
		}
		audioBySentence[sentenceID] = append(audioBySentence[sentenceID], voice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return audioBySentence, nil
}

// GetAudioBySentenceID retrieves all audio variants of one sentence
func (r *sentenceRepository) GetAudioBySentenceID(ctx context.Context, sentenceID int) ([]models.VoiceType, error) {
	audioBySentence, err := r.getAudioForSentences(ctx, []int{sentenceID})
	if err != nil {
		return nil, err
	}

	voices := audioBySentence[sentenceID]
	if voices == nil {
		voices = []models.VoiceType{}
	}
	return voices, nil
}

// CreateAudio attaches a single audio variant to an existing sentence
func (r *sentenceRepository) CreateAudio(ctx context.Context, audio *models.SentenceAudio) error {
	query := `
		INSERT INTO sentence_audio (sentence_id, character_id, audio_url, duration_ms)
		VALUES (?, ?, ?, ?)
	`

	var characterID any
	if audio.CharacterID != nil {
		characterID = *audio.CharacterID
	}
	var durationMs any
	if audio.DurationMs != nil {
		durationMs = *audio.DurationMs
	}

	result, err := r.db.ExecContext(ctx, query, audio.SentenceID, characterID, audio.AudioURL, durationMs)
	if err != nil {
		return fmt.Errorf("failed to create sentence audio: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	audio.ID = int(id)
	return nil
}

// GetAllAudio retrieves every sentence audio row
func (r *sentenceRepository) GetAllAudio(ctx context.Context) ([]models.SentenceAudio, error) {
	query := `
		SELECT id, sentence_id, character_id, audio_url, duration_ms
		FROM sentence_audio
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentence audio: %w", err)
	}
	defer rows.Close()

	var audios []models.SentenceAudio
	for rows.Next() {
		var audio models.SentenceAudio
		var characterID, durationMs sql.NullInt64
		err := rows.Scan(&audio.ID, &audio.SentenceID, &characterID, &audio.AudioURL, &durationMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sentence audio: %w", err)
		}
		if characterID.Valid {
			cid := int(characterID.Int64)
			audio.CharacterID = &cid
		}
		if durationMs.Valid {
			ms := int(durationMs.Int64)
			audio.DurationMs = &ms
		}
		audios = append(audios, audio)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return audios, nil
}

// ExistsByID checks if a sentence with the given ID exists
func (r *sentenceRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM sentences WHERE id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sentence existence: %w", err)
	}

	return exists, nil
}

// Delete deletes a sentence by ID. Audio, translation and exercise rows
// referencing it are removed by the cascade.
func (r *sentenceRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM sentences WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete sentence: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFound("sentence", id)
	}

	return nil
}
