package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
	"github.com/lingualeap/content-service/internal/ordering"
)

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *sql.DB) *gameRepository {
	return &gameRepository{
		db: db,
	}
}

// Create persists an exercise and its typed payload in one transaction. The
// exercise is appended at the end of its lesson; game.ID and game.Order are
// set on success. Payload must be the struct matching game.Type with child
// orders already normalized.
func (r *gameRepository) Create(ctx context.Context, game *models.Game, payload any) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	nextQuery := `SELECT COALESCE(MAX(` + "`order`" + `), 0) + 1 FROM games WHERE lesson_id = ?`
	if err := tx.QueryRowContext(ctx, nextQuery, game.LessonID).Scan(&game.Order); err != nil {
		return fmt.Errorf("failed to get next game order: %w", err)
	}

	insertQuery := "INSERT INTO games (lesson_id, type, `order`) VALUES (?, ?, ?)"
	result, err := tx.ExecContext(ctx, insertQuery, game.LessonID, string(game.Type), game.Order)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	gameID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	switch p := payload.(type) {
	case *models.ChoosePicPayload:
		err = r.createChoosePic(ctx, tx, int(gameID), p)
	case *models.DragDropPayload:
		err = r.createDragDrop(ctx, tx, int(gameID), p)
	case *models.AstroTrashPayload:
		err = r.createAstroTrash(ctx, tx, int(gameID), p)
	case *models.SpeakMatchPayload:
		err = r.createSpeakMatch(ctx, tx, int(gameID), p)
	case *models.ListenChoicePayload:
		err = r.createListenChoice(ctx, tx, int(gameID), p)
	case *models.ConversationPayload:
		err = r.createConversation(ctx, tx, int(gameID), p)
	case *models.MatchPairsPayload:
		err = r.createMatchPairs(ctx, tx, int(gameID), p)
	default:
		err = fmt.Errorf("unsupported payload type %T", payload)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	game.ID = int(gameID)
	return nil
}

func (r *gameRepository) createChoosePic(ctx context.Context, tx *sql.Tx, gameID int, p *models.ChoosePicPayload) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO choose_pic (game_id, base_sentence_id) VALUES (?, ?)`,
		gameID, p.BaseSentenceID,
	)
	if err != nil {
		return fmt.Errorf("failed to create choose pic: %w", err)
	}

	parentID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	optionQuery := "INSERT INTO choose_pic_options (choose_pic_id, target_word_id, image, is_correct, `order`) VALUES (?, ?, NULLIF(?, ''), ?, ?)"
	for _, opt := range p.Options {
		_, err := tx.ExecContext(ctx, optionQuery, parentID, opt.TargetWordID, opt.Image, opt.IsCorrect, opt.Order)
		if err != nil {
			return fmt.Errorf("failed to create choose pic option: %w", err)
		}
	}

	return nil
}

func (r *gameRepository) createDragDrop(ctx context.Context, tx *sql.Tx, gameID int, p *models.DragDropPayload) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO drag_drop (game_id, base_sentence_id, target_sentence_id, image) VALUES (?, ?, ?, NULLIF(?, ''))`,
		gameID, p.BaseSentenceID, p.TargetSentenceID, p.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to create drag drop: %w", err)
	}

	parentID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	partQuery := "INSERT INTO drag_drop_parts (drag_drop_id, target_word_id, `order`) VALUES (?, ?, ?)"
	for _, part := range p.Parts {
		_, err := tx.ExecContext(ctx, partQuery, parentID, part.TargetWordID, part.Order)
		if err != nil {
			return fmt.Errorf("failed to create drag drop part: %w", err)
		}
	}

	return nil
}

func (r *gameRepository) createAstroTrash(ctx context.Context, tx *sql.Tx, gameID int, p *models.AstroTrashPayload) error {
	result, err := tx.ExecContext(ctx, `INSERT INTO astro_trash (game_id) VALUES (?)`, gameID)
	if err != nil {
		return fmt.Errorf("failed to create astro trash: %w", err)
	}

	parentID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	garbageQuery := "INSERT INTO astro_trash_garbage (astro_trash_id, base_word_id, target_word_id, image, `order`) VALUES (?, ?, ?, NULLIF(?, ''), ?)"
	for _, item := range p.Garbage {
		var baseWordID any
		if item.BaseWordID != nil {
			baseWordID = *item.BaseWordID
		}
		_, err := tx.ExecContext(ctx, garbageQuery, parentID, baseWordID, item.TargetWordID, item.Image, item.Order)
		if err != nil {
			return fmt.Errorf("failed to create astro trash garbage: %w", err)
		}
	}

	return nil
}

func (r *gameRepository) createSpeakMatch(ctx context.Context, tx *sql.Tx, gameID int, p *models.SpeakMatchPayload) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO speak_match (game_id, target_sentence_id, image) VALUES (?, ?, NULLIF(?, ''))`,
		gameID, p.TargetSentenceID, p.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to create speak match: %w", err)
	}

	return nil
}

func (r *gameRepository) createListenChoice(ctx context.Context, tx *sql.Tx, gameID int, p *models.ListenChoicePayload) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO listen_choice (game_id, target_sentence_id, image, listen_type) VALUES (?, ?, NULLIF(?, ''), ?)`,
		gameID, p.TargetSentenceID, p.Image, string(p.ListenType),
	)
	if err != nil {
		return fmt.Errorf("failed to create listen choice: %w", err)
	}

	parentID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	optionQuery := "INSERT INTO listen_choice_options (listen_choice_id, target_sentence_id, target_word_id, is_correct, `order`) VALUES (?, ?, ?, ?, ?)"
	for _, opt := range p.Options {
		var sentenceID, wordID any
		if opt.TargetSentenceID != nil {
			sentenceID = *opt.TargetSentenceID
		}
		if opt.TargetWordID != nil {
			wordID = *opt.TargetWordID
		}
		_, err := tx.ExecContext(ctx, optionQuery, parentID, sentenceID, wordID, opt.IsCorrect, opt.Order)
		if err != nil {
			return fmt.Errorf("failed to create listen choice option: %w", err)
		}
	}

	return nil
}

func (r *gameRepository) createConversation(ctx context.Context, tx *sql.Tx, gameID int, p *models.ConversationPayload) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO conversation (game_id, title, description) VALUES (?, ?, NULLIF(?, ''))`,
		gameID, p.Title, p.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	parentID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	dialogueQuery := "INSERT INTO conversation_dialogue (conversation_id, character_role, target_sentence_id, base_sentence_id, `order`) VALUES (?, ?, ?, ?, ?)"
	responseQuery := "INSERT INTO dialogue_responses (dialogue_id, target_sentence_id, base_sentence_id, is_correct, `order`) VALUES (?, ?, ?, ?, ?)"
	for _, turn := range p.Dialogue {
		var baseSentenceID any
		if turn.BaseSentenceID != nil {
			baseSentenceID = *turn.BaseSentenceID
		}
		turnResult, err := tx.ExecContext(ctx, dialogueQuery, parentID, turn.CharacterRole, turn.TargetSentenceID, baseSentenceID, turn.Order)
		if err != nil {
			return fmt.Errorf("failed to create conversation dialogue: %w", err)
		}

		dialogueID, err := turnResult.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}

		for _, resp := range turn.Responses {
			var respBaseID any
			if resp.BaseSentenceID != nil {
				respBaseID = *resp.BaseSentenceID
			}
			_, err := tx.ExecContext(ctx, responseQuery, dialogueID, resp.TargetSentenceID, respBaseID, resp.IsCorrect, resp.Order)
			if err != nil {
				return fmt.Errorf("failed to create dialogue response: %w", err)
			}
		}
	}

	return nil
}

func (r *gameRepository) createMatchPairs(ctx context.Context, tx *sql.Tx, gameID int, p *models.MatchPairsPayload) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO match_pairs (game_id, match_type, part_type) VALUES (?, ?, ?)`,
		gameID, string(p.MatchType), string(p.PartType),
	)
	if err != nil {
		return fmt.Errorf("failed to create match pairs: %w", err)
	}

	parentID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if p.PartType == models.MatchPairsPartWord {
		partQuery := "INSERT INTO match_pairs_word_parts (match_pairs_id, base_word_id, target_word_id, `order`) VALUES (?, ?, ?, ?)"
		for _, part := range p.WordParts {
			_, err := tx.ExecContext(ctx, partQuery, parentID, part.BaseWordID, part.TargetWordID, part.Order)
			if err != nil {
				return fmt.Errorf("failed to create match pairs word part: %w", err)
			}
		}
		return nil
	}

	partQuery := "INSERT INTO match_pairs_sentence_parts (match_pairs_id, base_sentence_id, target_sentence_id, `order`) VALUES (?, ?, ?, ?)"
	for _, part := range p.SentenceParts {
		_, err := tx.ExecContext(ctx, partQuery, parentID, part.BaseSentenceID, part.TargetSentenceID, part.Order)
		if err != nil {
			return fmt.Errorf("failed to create match pairs sentence part: %w", err)
		}
	}

	return nil
}

// GetByID retrieves an exercise together with its typed payload
func (r *gameRepository) GetByID(ctx context.Context, id int) (*models.GameResponse, error) {
	query := "SELECT id, lesson_id, type, `order` FROM games WHERE id = ? LIMIT 1"

	var game models.Game
	var gameType string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&game.ID, &game.LessonID, &gameType, &game.Order)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("game", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}
	game.Type = models.GameType(gameType)

	payload, err := r.loadPayload(ctx, game.ID, game.Type)
	if err != nil {
		return nil, err
	}

	return &models.GameResponse{
		ID:       game.ID,
		LessonID: game.LessonID,
		Type:     game.Type,
		Order:    game.Order,
		Payload:  payload,
	}, nil
}

// GetByLessonID retrieves all exercises of a lesson with their payloads,
// sorted by order
func (r *gameRepository) GetByLessonID(ctx context.Context, lessonID int) ([]models.GameResponse, error) {
	query := "SELECT id, lesson_id, type, `order` FROM games WHERE lesson_id = ? ORDER BY `order`"

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var game models.Game
		var gameType string
		if err := rows.Scan(&game.ID, &game.LessonID, &gameType, &game.Order); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		game.Type = models.GameType(gameType)
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	responses := make([]models.GameResponse, 0, len(games))
	for _, game := range games {
		payload, err := r.loadPayload(ctx, game.ID, game.Type)
		if err != nil {
			return nil, err
		}
		responses = append(responses, models.GameResponse{
			ID:       game.ID,
			LessonID: game.LessonID,
			Type:     game.Type,
			Order:    game.Order,
			Payload:  payload,
		})
	}

	return responses, nil
}

func (r *gameRepository) loadPayload(ctx context.Context, gameID int, gameType models.GameType) (any, error) {
	switch gameType {
	case models.GameTypeChoosePic:
		return r.loadChoosePic(ctx, gameID)
	case models.GameTypeDragDrop:
		return r.loadDragDrop(ctx, gameID)
	case models.GameTypeAstroTrash:
		return r.loadAstroTrash(ctx, gameID)
	case models.GameTypeSpeakMatch:
		return r.loadSpeakMatch(ctx, gameID)
	case models.GameTypeListenChoice:
		return r.loadListenChoice(ctx, gameID)
	case models.GameTypeConversation:
		return r.loadConversation(ctx, gameID)
	case models.GameTypeMatchPairs:
		return r.loadMatchPairs(ctx, gameID)
	default:
		return nil, fmt.Errorf("unknown game type: %s", gameType)
	}
}

func (r *gameRepository) loadChoosePic(ctx context.Context, gameID int) (*models.ChoosePicPayload, error) {
	var parentID int
	payload := &models.ChoosePicPayload{Options: []models.ChoosePicOption{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, base_sentence_id FROM choose_pic WHERE game_id = ? LIMIT 1`,
		gameID,
	).Scan(&parentID, &payload.BaseSentenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get choose pic: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, target_word_id, COALESCE(image, ''), is_correct, `order` FROM choose_pic_options WHERE choose_pic_id = ? ORDER BY `order`",
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query choose pic options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.ChoosePicOption
		if err := rows.Scan(&opt.ID, &opt.TargetWordID, &opt.Image, &opt.IsCorrect, &opt.Order); err != nil {
			return nil, fmt.Errorf("failed to scan choose pic option: %w", err)
		}
		payload.Options = append(payload.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payload, nil
}

func (r *gameRepository) loadDragDrop(ctx context.Context, gameID int) (*models.DragDropPayload, error) {
	var parentID int
	payload := &models.DragDropPayload{Parts: []models.DragDropPart{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, base_sentence_id, target_sentence_id, COALESCE(image, '') FROM drag_drop WHERE game_id = ? LIMIT 1`,
		gameID,
	).Scan(&parentID, &payload.BaseSentenceID, &payload.TargetSentenceID, &payload.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to get drag drop: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, target_word_id, `order` FROM drag_drop_parts WHERE drag_drop_id = ? ORDER BY `order`",
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query drag drop parts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var part models.DragDropPart
		if err := rows.Scan(&part.ID, &part.TargetWordID, &part.Order); err != nil {
			return nil, fmt.Errorf("failed to scan drag drop part: %w", err)
		}
		payload.Parts = append(payload.Parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payload, nil
}

func (r *gameRepository) loadAstroTrash(ctx context.Context, gameID int) (*models.AstroTrashPayload, error) {
	var parentID int
	payload := &models.AstroTrashPayload{Garbage: []models.AstroTrashGarbage{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM astro_trash WHERE game_id = ? LIMIT 1`,
		gameID,
	).Scan(&parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get astro trash: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, base_word_id, target_word_id, COALESCE(image, ''), `order` FROM astro_trash_garbage WHERE astro_trash_id = ? ORDER BY `order`",
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query astro trash garbage: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.AstroTrashGarbage
		var baseWordID sql.NullInt64
		if err := rows.Scan(&item.ID, &baseWordID, &item.TargetWordID, &item.Image, &item.Order); err != nil {
			return nil, fmt.Errorf("failed to scan astro trash garbage: %w", err)
		}
		if baseWordID.Valid {
			id := int(baseWordID.Int64)
			item.BaseWordID = &id
		}
		payload.Garbage = append(payload.Garbage, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payload, nil
}

func (r *gameRepository) loadSpeakMatch(ctx context.Context, gameID int) (*models.SpeakMatchPayload, error) {
	payload := &models.SpeakMatchPayload{}

	err := r.db.QueryRowContext(ctx,
		`SELECT target_sentence_id, COALESCE(image, '') FROM speak_match WHERE game_id = ? LIMIT 1`,
		gameID,
	).Scan(&payload.TargetSentenceID, &payload.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to get speak match: %w", err)
	}

	return payload, nil
}

func (r *gameRepository) loadListenChoice(ctx context.Context, gameID int) (*models.ListenChoicePayload, error) {
	var parentID int
	var listenType string
	payload := &models.ListenChoicePayload{Options: []models.ListenChoiceOption{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, target_sentence_id, COALESCE(image, ''), listen_type FROM listen_choice WHERE game_id = ? LIMIT 1`,
		gameID,
	).Scan(&parentID, &payload.TargetSentenceID, &payload.Image, &listenType)
	if err != nil {
		return nil, fmt.Errorf("failed to get listen choice: %w", err)
	}
	payload.ListenType = models.ListenChoiceType(listenType)

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, target_sentence_id, target_word_id, is_correct, `order` FROM listen_choice_options WHERE listen_choice_id = ? ORDER BY `order`",
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query listen choice options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.ListenChoiceOption
		var sentenceID, wordID sql.NullInt64
		if err := rows.Scan(&opt.ID, &sentenceID, &wordID, &opt.IsCorrect, &opt.Order); err != nil {
			return nil, fmt.Errorf("failed to scan listen choice option: %w", err)
		}
		if sentenceID.Valid {
			id := int(sentenceID.Int64)
			opt.TargetSentenceID = &id
		}
		if wordID.Valid {
			id := int(wordID.Int64)
			opt.TargetWordID = &id
		}
		payload.Options = append(payload.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payload, nil
}

func (r *gameRepository) loadConversation(ctx context.Context, gameID int) (*models.ConversationPayload, error) {
	var parentID int
	payload := &models.ConversationPayload{Dialogue: []models.ConversationDialogue{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, COALESCE(description, '') FROM conversation WHERE game_id = ? LIMIT 1`,
		gameID,
	).Scan(&parentID, &payload.Title, &payload.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, character_role, target_sentence_id, base_sentence_id, `order` FROM conversation_dialogue WHERE conversation_id = ? ORDER BY `order`",
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation dialogue: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var turn models.ConversationDialogue
		var baseSentenceID sql.NullInt64
		if err := rows.Scan(&turn.ID, &turn.CharacterRole, &turn.TargetSentenceID, &baseSentenceID, &turn.Order); err != nil {
			return nil, fmt.Errorf("failed to scan conversation dialogue: %w", err)
		}
		if baseSentenceID.Valid {
			id := int(baseSentenceID.Int64)
			turn.BaseSentenceID = &id
		}
		turn.Responses = []models.DialogueResponse{}
		payload.Dialogue = append(payload.Dialogue, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	for i := range payload.Dialogue {
		responses, err := r.loadDialogueResponses(ctx, payload.Dialogue[i].ID)
		if err != nil {
			return nil, err
		}
		payload.Dialogue[i].Responses = responses
	}

	return payload, nil
}

func (r *gameRepository) loadDialogueResponses(ctx context.Context, dialogueID int) ([]models.DialogueResponse, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, target_sentence_id, base_sentence_id, is_correct, `order` FROM dialogue_responses WHERE dialogue_id = ? ORDER BY `order`",
		dialogueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dialogue responses: %w", err)
	}
	defer rows.Close()

	responses := []models.DialogueResponse{}
	for rows.Next() {
		var resp models.DialogueResponse
		var baseSentenceID sql.NullInt64
		if err := rows.Scan(&resp.ID, &resp.TargetSentenceID, &baseSentenceID, &resp.IsCorrect, &resp.Order); err != nil {
			return nil, fmt.Errorf("failed to scan dialogue response: %w", err)
		}
		if baseSentenceID.Valid {
			id := int(baseSentenceID.Int64)
			resp.BaseSentenceID = &id
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return responses, nil
}

func (r *gameRepository) loadMatchPairs(ctx context.Context, gameID int) (*models.MatchPairsPayload, error) {
	var parentID int
	var matchType, partType string
	payload := &models.MatchPairsPayload{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, match_type, part_type FROM match_pairs WHERE game_id = ? LIMIT 1`,
		gameID,
	).Scan(&parentID, &matchType, &partType)
	if err != nil {
		return nil, fmt.Errorf("failed to get match pairs: %w", err)
	}
	payload.MatchType = models.MatchPairsType(matchType)
	payload.PartType = models.MatchPairsPartType(partType)

	if payload.PartType == models.MatchPairsPartWord {
		rows, err := r.db.QueryContext(ctx,
			"SELECT id, base_word_id, target_word_id, `order` FROM match_pairs_word_parts WHERE match_pairs_id = ? ORDER BY `order`",
			parentID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query match pairs word parts: %w", err)
		}
		defer rows.Close()

		payload.WordParts = []models.MatchPairsWordPart{}
		for rows.Next() {
			var part models.MatchPairsWordPart
			if err := rows.Scan(&part.ID, &part.BaseWordID, &part.TargetWordID, &part.Order); err != nil {
				return nil, fmt.Errorf("failed to scan match pairs word part: %w", err)
			}
			payload.WordParts = append(payload.WordParts, part)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating rows: %w", err)
		}
		return payload, nil
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, base_sentence_id, target_sentence_id, `order` FROM match_pairs_sentence_parts WHERE match_pairs_id = ? ORDER BY `order`",
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query match pairs sentence parts: %w", err)
	}
	defer rows.Close()

	payload.SentenceParts = []models.MatchPairsSentencePart{}
	for rows.Next() {
		var part models.MatchPairsSentencePart
		if err := rows.Scan(&part.ID, &part.BaseSentenceID, &part.TargetSentenceID, &part.Order); err != nil {
			return nil, fmt.Errorf("failed to scan match pairs sentence part: %w", err)
		}
		payload.SentenceParts = append(payload.SentenceParts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payload, nil
}

// Delete deletes an exercise and compacts the remaining game orders of the
// lesson in the same transaction. Payload rows go with the cascade.
func (r *gameRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lessonID, order int
	lookupQuery := "SELECT lesson_id, `order` FROM games WHERE id = ? LIMIT 1"
	err = tx.QueryRowContext(ctx, lookupQuery, id).Scan(&lessonID, &order)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("game", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	compactQuery := "UPDATE games SET `order` = `order` - 1 WHERE lesson_id = ? AND `order` > ?"
	if _, err := tx.ExecContext(ctx, compactQuery, lessonID, order); err != nil {
		return fmt.Errorf("failed to compact game order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// childRow is the id and position of one ordered child of an exercise
type childRow struct {
	ID    int
	Order int
}

func (c *childRow) GetOrder() int  { return c.Order }
func (c *childRow) SetOrder(n int) { c.Order = n }

// ReorderChildren moves the ordered child of an exercise from one position to
// another, shifting the children in between. All order updates happen in one
// transaction. Positions are 1-based.
func (r *gameRepository) ReorderChildren(ctx context.Context, gameID, fromIndex, toIndex int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var gameType string
	err = tx.QueryRowContext(ctx, `SELECT type FROM games WHERE id = ? LIMIT 1`, gameID).Scan(&gameType)
	if err == sql.ErrNoRows {
		return apperrors.NewNotFound("game", gameID)
	}
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	childTable, parentColumn, parentID, err := r.resolveChildTable(ctx, tx, gameID, models.GameType(gameType))
	if err != nil {
		return err
	}

	listQuery := fmt.Sprintf("SELECT id, `order` FROM %s WHERE %s = ? ORDER BY `order`", childTable, parentColumn)
	rows, err := tx.QueryContext(ctx, listQuery, parentID)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", childTable, err)
	}

	var children []childRow
	for rows.Next() {
		var child childRow
		if err := rows.Scan(&child.ID, &child.Order); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan %s: %w", childTable, err)
		}
		children = append(children, child)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	if fromIndex < 1 || fromIndex > len(children) {
		return apperrors.NewValidation("fromIndex", fmt.Sprintf("must be between 1 and %d", len(children)))
	}
	if toIndex < 1 || toIndex > len(children) {
		return apperrors.NewValidation("toIndex", fmt.Sprintf("must be between 1 and %d", len(children)))
	}

	children, err = ordering.Move(children, fromIndex-1, toIndex-1)
	if err != nil {
		return err
	}

	updateQuery := fmt.Sprintf("UPDATE %s SET `order` = ? WHERE id = ?", childTable)
	for _, child := range children {
		if _, err := tx.ExecContext(ctx, updateQuery, child.Order, child.ID); err != nil {
			return fmt.Errorf("failed to update %s order: %w", childTable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// resolveChildTable maps an exercise type to its ordered child table and the
// id of the type-specific parent row
func (r *gameRepository) resolveChildTable(ctx context.Context, tx *sql.Tx, gameID int, gameType models.GameType) (childTable, parentColumn string, parentID int, err error) {
	var parentTable string

	switch gameType {
	case models.GameTypeChoosePic:
		parentTable, childTable, parentColumn = "choose_pic", "choose_pic_options", "choose_pic_id"
	case models.GameTypeDragDrop:
		parentTable, childTable, parentColumn = "drag_drop", "drag_drop_parts", "drag_drop_id"
	case models.GameTypeAstroTrash:
		parentTable, childTable, parentColumn = "astro_trash", "astro_trash_garbage", "astro_trash_id"
	case models.GameTypeListenChoice:
		parentTable, childTable, parentColumn = "listen_choice", "listen_choice_options", "listen_choice_id"
	case models.GameTypeConversation:
		parentTable, childTable, parentColumn = "conversation", "conversation_dialogue", "conversation_id"
	case models.GameTypeMatchPairs:
		var partType string
		err = tx.QueryRowContext(ctx, `SELECT id, part_type FROM match_pairs WHERE game_id = ? LIMIT 1`, gameID).Scan(&parentID, &partType)
		if err != nil {
			return "", "", 0, fmt.Errorf("failed to get match pairs: %w", err)
		}
		if models.MatchPairsPartType(partType) == models.MatchPairsPartWord {
			return "match_pairs_word_parts", "match_pairs_id", parentID, nil
		}
		return "match_pairs_sentence_parts", "match_pairs_id", parentID, nil
	default:
		return "", "", 0, apperrors.NewValidation("type", fmt.Sprintf("game type %s has no reorderable parts", gameType))
	}

	lookupQuery := fmt.Sprintf(`SELECT id FROM %s WHERE game_id = ? LIMIT 1`, parentTable)
	err = tx.QueryRowContext(ctx, lookupQuery, gameID).Scan(&parentID)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to get %s: %w", parentTable, err)
	}

	return childTable, parentColumn, parentID, nil
}
