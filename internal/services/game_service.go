package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lingualeap/content-service/internal/apperrors"
	"github.com/lingualeap/content-service/internal/models"
	"github.com/lingualeap/content-service/internal/ordering"
)

// GameRepository is the interface that wraps methods for exercise data access
type GameRepository interface {
	// Method Create persists the exercise and its typed payload atomically,
	// appending it at the end of its lesson.
	Create(ctx context.Context, game *models.Game, payload any) error
	GetByID(ctx context.Context, id int) (*models.GameResponse, error)
	GetByLessonID(ctx context.Context, lessonID int) ([]models.GameResponse, error)
	Delete(ctx context.Context, id int) error
	// Method ReorderChildren moves one ordered child of an exercise between
	// 1-based positions, shifting the children in between.
	ReorderChildren(ctx context.Context, gameID, fromIndex, toIndex int) error
}

// SentenceRefChecker resolves the language of referenced sentences
type SentenceRefChecker interface {
	GetLanguageIDs(ctx context.Context, ids []int) (map[int]int, error)
}

// WordRefChecker resolves the language of referenced words
type WordRefChecker interface {
	GetLanguageIDs(ctx context.Context, ids []int) (map[int]int, error)
}

type gameService struct {
	repo      GameRepository
	lessons   LessonRepository
	sentences SentenceRefChecker
	words     WordRefChecker
	logger    *zap.Logger
}

// NewGameService creates a new game service
func NewGameService(repo GameRepository, lessons LessonRepository, sentences SentenceRefChecker, words WordRefChecker, logger *zap.Logger) *gameService {
	return &gameService{
		repo:      repo,
		lessons:   lessons,
		sentences: sentences,
		words:     words,
		logger:    logger,
	}
}

// contentRef is one sentence or word reference inside an exercise payload
// together with the language its side of the course requires
type contentRef struct {
	id       int
	field    string
	language int
}

// CreateGame validates and persists an exercise submission. The payload is
// decoded according to the declared type; every referenced sentence and word
// must exist and sit on the correct language side of the lesson's course.
// The exercise is appended at the end of the lesson.
func (s *gameService) CreateGame(ctx context.Context, req *models.CreateGameRequest) (*models.GameResponse, error) {
	if req.LessonID <= 0 {
		return nil, apperrors.NewValidation("lessonId", "lesson id is required")
	}
	if !models.ValidGameTypes[req.Type] {
		return nil, apperrors.NewValidation("type", fmt.Sprintf("unknown game type: %s", req.Type))
	}
	if len(req.Payload) == 0 {
		return nil, apperrors.NewValidation("payload", "payload is required")
	}

	baseLang, targetLang, err := s.lessons.GetCourseLanguages(ctx, req.LessonID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to resolve course languages", zap.Error(err), zap.Int("lessonId", req.LessonID))
		return nil, apperrors.NewPersistence("resolve course languages", err)
	}

	payload, sentenceRefs, wordRefs, err := s.decodePayload(req.Type, req.Payload, baseLang, targetLang)
	if err != nil {
		return nil, err
	}

	if err := s.checkSentenceRefs(ctx, sentenceRefs); err != nil {
		return nil, err
	}
	if err := s.checkWordRefs(ctx, wordRefs); err != nil {
		return nil, err
	}

	game := &models.Game{LessonID: req.LessonID, Type: req.Type}
	if err := s.repo.Create(ctx, game, payload); err != nil {
		s.logger.Error("failed to create game", zap.Error(err), zap.String("type", string(req.Type)))
		return nil, apperrors.NewPersistence("create game", err)
	}

	return &models.GameResponse{
		ID:       game.ID,
		LessonID: game.LessonID,
		Type:     game.Type,
		Order:    game.Order,
		Payload:  payload,
	}, nil
}

// decodePayload unmarshals and validates the type-specific payload, returning
// it with the content references it carries. Child collections come back
// renumbered 1..N in submission order.
func (s *gameService) decodePayload(gameType models.GameType, raw json.RawMessage, baseLang, targetLang int) (any, []contentRef, []contentRef, error) {
	switch gameType {
	case models.GameTypeChoosePic:
		return decodeChoosePic(raw, baseLang, targetLang)
	case models.GameTypeDragDrop:
		return decodeDragDrop(raw, baseLang, targetLang)
	case models.GameTypeAstroTrash:
		return decodeAstroTrash(raw, baseLang, targetLang)
	case models.GameTypeSpeakMatch:
		return decodeSpeakMatch(raw, targetLang)
	case models.GameTypeListenChoice:
		return decodeListenChoice(raw, targetLang)
	case models.GameTypeConversation:
		return decodeConversation(raw, baseLang, targetLang)
	case models.GameTypeMatchPairs:
		return decodeMatchPairs(raw, baseLang, targetLang)
	default:
		return nil, nil, nil, apperrors.NewValidation("type", fmt.Sprintf("unknown game type: %s", gameType))
	}
}

func decodeChoosePic(raw json.RawMessage, baseLang, targetLang int) (any, []contentRef, []contentRef, error) {
	var p models.ChoosePicPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, nil, apperrors.NewValidation("payload", "malformed choose pic payload")
	}
	if p.BaseSentenceID <= 0 {
		return nil, nil, nil, apperrors.NewValidation("payload.baseSentenceId", "base sentence is required")
	}
	if len(p.Options) < 2 {
		return nil, nil, nil, apperrors.NewValidation("payload.options", "at least two options are required")
	}
	if err := exactlyOneCorrect(len(p.Options), func(i int) bool { return p.Options[i].IsCorrect }); err != nil {
		return nil, nil, nil, err
	}

	sentenceRefs := []contentRef{{p.BaseSentenceID, "payload.baseSentenceId", baseLang}}
	var wordRefs []contentRef
	for i, opt := range p.Options {
		if opt.TargetWordID <= 0 {
			return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.options[%d].targetWordId", i), "target word is required")
		}
		wordRefs = append(wordRefs, contentRef{opt.TargetWordID, fmt.Sprintf("payload.options[%d].targetWordId", i), targetLang})
	}

	ordering.Renumber[models.ChoosePicOption](p.Options)
	return &p, sentenceRefs, wordRefs, nil
}

func decodeDragDrop(raw json.RawMessage, baseLang, targetLang int) (any, []contentRef, []contentRef, error) {
	var p models.DragDropPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, nil, apperrors.NewValidation("payload", "malformed drag drop payload")
	}
	if p.BaseSentenceID <= 0 {
		return nil, nil, nil, apperrors.NewValidation("payload.baseSentenceId", "base sentence is required")
	}
	if p.TargetSentenceID <= 0 {
		return nil, nil, nil, apperrors.NewValidation("payload.targetSentenceId", "target sentence is required")
	}
	if len(p.Parts) == 0 {
		return nil, nil, nil, apperrors.NewValidation("payload.parts", "at least one part is required")
	}

	sentenceRefs := []contentRef{
		{p.BaseSentenceID, "payload.baseSentenceId", baseLang},
		{p.TargetSentenceID, "payload.targetSentenceId", targetLang},
	}
	var wordRefs []contentRef
	for i, part := range p.Parts {
		if part.TargetWordID <= 0 {
			return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.parts[%d].targetWordId", i), "target word is required")
		}
		wordRefs = append(wordRefs, contentRef{part.TargetWordID, fmt.Sprintf("payload.parts[%d].targetWordId", i), targetLang})
	}

	ordering.Renumber[models.DragDropPart](p.Parts)
	return &p, sentenceRefs, wordRefs, nil
}

func decodeAstroTrash(raw json.RawMessage, baseLang, targetLang int) (any, []contentRef, []contentRef, error) {
	var p models.AstroTrashPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, nil, apperrors.NewValidation("payload", "malformed astro trash payload")
	}
	if len(p.Garbage) == 0 {
		return nil, nil, nil, apperrors.NewValidation("payload.garbage", "at least one garbage item is required")
	}

	var wordRefs []contentRef
	for i, item := range p.Garbage {
		if item.TargetWordID <= 0 {
			return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.garbage[%d].targetWordId", i), "target word is required")
		}
		wordRefs = append(wordRefs, contentRef{item.TargetWordID, fmt.Sprintf("payload.garbage[%d].targetWordId", i), targetLang})
		if item.BaseWordID != nil {
			wordRefs = append(wordRefs, contentRef{*item.BaseWordID, fmt.Sprintf("payload.garbage[%d].baseWordId", i), baseLang})
		}
	}

	ordering.Renumber[models.AstroTrashGarbage](p.Garbage)
	return &p, nil, wordRefs, nil
}

func decodeSpeakMatch(raw json.RawMessage, targetLang int) (any, []contentRef, []contentRef, error) {
	var p models.SpeakMatchPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, nil, apperrors.NewValidation("payload", "malformed speak match payload")
	}
	if p.TargetSentenceID <= 0 {
		return nil, nil, nil, apperrors.NewValidation("payload.targetSentenceId", "target sentence is required")
	}

	sentenceRefs := []contentRef{{p.TargetSentenceID, "payload.targetSentenceId", targetLang}}
	return &p, sentenceRefs, nil, nil
}

func decodeListenChoice(raw json.RawMessage, targetLang int) (any, []contentRef, []contentRef, error) {
	var p models.ListenChoicePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, nil, apperrors.NewValidation("payload", "malformed listen choice payload")
	}
	if p.TargetSentenceID <= 0 {
		return nil, nil, nil, apperrors.NewValidation("payload.targetSentenceId", "target sentence is required")
	}
	if p.ListenType != models.ListenChoiceWordAnswer && p.ListenType != models.ListenChoiceSentenceAnswer {
		return nil, nil, nil, apperrors.NewValidation("payload.listenType", "listen type must be wordAnswer or sentenceAnswer")
	}
	if len(p.Options) < 2 {
		return nil, nil, nil, apperrors.NewValidation("payload.options", "at least two options are required")
	}
	if err := exactlyOneCorrect(len(p.Options), func(i int) bool { return p.Options[i].IsCorrect }); err != nil {
		return nil, nil, nil, err
	}

	sentenceRefs := []contentRef{{p.TargetSentenceID, "payload.targetSentenceId", targetLang}}
	var wordRefs []contentRef
	for i, opt := range p.Options {
		switch p.ListenType {
		case models.ListenChoiceWordAnswer:
			if opt.TargetWordID == nil || opt.TargetSentenceID != nil {
				return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.options[%d]", i), "word answer options must reference a target word only")
			}
			wordRefs = append(wordRefs, contentRef{*opt.TargetWordID, fmt.Sprintf("payload.options[%d].targetWordId", i), targetLang})
		case models.ListenChoiceSentenceAnswer:
			if opt.TargetSentenceID == nil || opt.TargetWordID != nil {
				return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.options[%d]", i), "sentence answer options must reference a target sentence only")
			}
			sentenceRefs = append(sentenceRefs, contentRef{*opt.TargetSentenceID, fmt.Sprintf("payload.options[%d].targetSentenceId", i), targetLang})
		}
	}

	ordering.Renumber[models.ListenChoiceOption](p.Options)
	return &p, sentenceRefs, wordRefs, nil
}

func decodeConversation(raw json.RawMessage, baseLang, targetLang int) (any, []contentRef, []contentRef, error) {
	var p models.ConversationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, nil, apperrors.NewValidation("payload", "malformed conversation payload")
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, nil, nil, apperrors.NewValidation("payload.title", "conversation title is required")
	}
	if len(p.Dialogue) == 0 {
		return nil, nil, nil, apperrors.NewValidation("payload.dialogue", "at least one dialogue turn is required")
	}

	var sentenceRefs []contentRef
	for i := range p.Dialogue {
		turn := &p.Dialogue[i]
		if strings.TrimSpace(turn.CharacterRole) == "" {
			return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.dialogue[%d].characterRole", i), "character role is required")
		}
		if turn.TargetSentenceID <= 0 {
			return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.dialogue[%d].targetSentenceId", i), "target sentence is required")
		}
		sentenceRefs = append(sentenceRefs, contentRef{turn.TargetSentenceID, fmt.Sprintf("payload.dialogue[%d].targetSentenceId", i), targetLang})
		if turn.BaseSentenceID != nil {
			sentenceRefs = append(sentenceRefs, contentRef{*turn.BaseSentenceID, fmt.Sprintf("payload.dialogue[%d].baseSentenceId", i), baseLang})
		}

		if len(turn.Responses) > 0 {
			if err := exactlyOneCorrect(len(turn.Responses), func(j int) bool { return turn.Responses[j].IsCorrect }); err != nil {
				return nil, nil, nil, err
			}
		}
		for j, resp := range turn.Responses {
			if resp.TargetSentenceID <= 0 {
				return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.dialogue[%d].responses[%d].targetSentenceId", i, j), "target sentence is required")
			}
			sentenceRefs = append(sentenceRefs, contentRef{resp.TargetSentenceID, fmt.Sprintf("payload.dialogue[%d].responses[%d].targetSentenceId", i, j), targetLang})
			if resp.BaseSentenceID != nil {
				sentenceRefs = append(sentenceRefs, contentRef{*resp.BaseSentenceID, fmt.Sprintf("payload.dialogue[%d].responses[%d].baseSentenceId", i, j), baseLang})
			}
		}
		ordering.Renumber[models.DialogueResponse](turn.Responses)
	}

	ordering.Renumber[models.ConversationDialogue](p.Dialogue)
	return &p, sentenceRefs, nil, nil
}

func decodeMatchPairs(raw json.RawMessage, baseLang, targetLang int) (any, []contentRef, []contentRef, error) {
	var p models.MatchPairsPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil, nil, apperrors.NewValidation("payload", "malformed match pairs payload")
	}
	if p.MatchType != models.MatchPairsSentToSent && p.MatchType != models.MatchPairsListenToSent {
		return nil, nil, nil, apperrors.NewValidation("payload.matchType", "match type must be SentToSent or ListenToSent")
	}

	switch p.PartType {
	case models.MatchPairsPartWord:
		if len(p.SentenceParts) > 0 {
			return nil, nil, nil, apperrors.NewValidation("payload.sentenceParts", "sentence parts not allowed for word part type")
		}
		if len(p.WordParts) < 2 {
			return nil, nil, nil, apperrors.NewValidation("payload.wordParts", "at least two word pairs are required")
		}
		var wordRefs []contentRef
		for i, part := range p.WordParts {
			if part.BaseWordID <= 0 || part.TargetWordID <= 0 {
				return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.wordParts[%d]", i), "both words of a pair are required")
			}
			wordRefs = append(wordRefs,
				contentRef{part.BaseWordID, fmt.Sprintf("payload.wordParts[%d].baseWordId", i), baseLang},
				contentRef{part.TargetWordID, fmt.Sprintf("payload.wordParts[%d].targetWordId", i), targetLang},
			)
		}
		ordering.Renumber[models.MatchPairsWordPart](p.WordParts)
		return &p, nil, wordRefs, nil
	case models.MatchPairsPartSentence:
		if len(p.WordParts) > 0 {
			return nil, nil, nil, apperrors.NewValidation("payload.wordParts", "word parts not allowed for sentence part type")
		}
		if len(p.SentenceParts) < 2 {
			return nil, nil, nil, apperrors.NewValidation("payload.sentenceParts", "at least two sentence pairs are required")
		}
		var sentenceRefs []contentRef
		for i, part := range p.SentenceParts {
			if part.BaseSentenceID <= 0 || part.TargetSentenceID <= 0 {
				return nil, nil, nil, apperrors.NewValidation(fmt.Sprintf("payload.sentenceParts[%d]", i), "both sentences of a pair are required")
			}
			sentenceRefs = append(sentenceRefs,
				contentRef{part.BaseSentenceID, fmt.Sprintf("payload.sentenceParts[%d].baseSentenceId", i), baseLang},
				contentRef{part.TargetSentenceID, fmt.Sprintf("payload.sentenceParts[%d].targetSentenceId", i), targetLang},
			)
		}
		ordering.Renumber[models.MatchPairsSentencePart](p.SentenceParts)
		return &p, sentenceRefs, nil, nil
	default:
		return nil, nil, nil, apperrors.NewValidation("payload.partType", "part type must be word or sentence")
	}
}

// exactlyOneCorrect enforces a single correct answer among n options
func exactlyOneCorrect(n int, isCorrect func(int) bool) error {
	correct := 0
	for i := 0; i < n; i++ {
		if isCorrect(i) {
			correct++
		}
	}
	if correct != 1 {
		return apperrors.NewValidation("payload.options", "exactly one option must be correct")
	}
	return nil
}

// checkSentenceRefs verifies every referenced sentence exists and is written
// in the language its side of the course requires
func (s *gameService) checkSentenceRefs(ctx context.Context, refs []contentRef) error {
	if len(refs) == 0 {
		return nil
	}

	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.id)
	}

	languages, err := s.sentences.GetLanguageIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to check sentence references", zap.Error(err))
		return apperrors.NewPersistence("check sentence references", err)
	}

	for _, ref := range refs {
		lang, ok := languages[ref.id]
		if !ok {
			return apperrors.NewNotFound("sentence", ref.id)
		}
		if lang != ref.language {
			return apperrors.NewValidation(ref.field, "sentence is not in the expected course language")
		}
	}
	return nil
}

// checkWordRefs verifies every referenced word exists and is written in the
// language its side of the course requires
func (s *gameService) checkWordRefs(ctx context.Context, refs []contentRef) error {
	if len(refs) == 0 {
		return nil
	}

	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.id)
	}

	languages, err := s.words.GetLanguageIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to check word references", zap.Error(err))
		return apperrors.NewPersistence("check word references", err)
	}

	for _, ref := range refs {
		lang, ok := languages[ref.id]
		if !ok {
			return apperrors.NewNotFound("word", ref.id)
		}
		if lang != ref.language {
			return apperrors.NewValidation(ref.field, "word is not in the expected course language")
		}
	}
	return nil
}

// GetGame retrieves an exercise with its typed payload
func (s *gameService) GetGame(ctx context.Context, id int) (*models.GameResponse, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id", "game id is required")
	}

	game, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		s.logger.Error("failed to get game", zap.Error(err), zap.Int("id", id))
		return nil, apperrors.NewPersistence("get game", err)
	}
	return game, nil
}

// ListGames retrieves the ordered exercises of a lesson
func (s *gameService) ListGames(ctx context.Context, lessonID int) ([]models.GameResponse, error) {
	if lessonID <= 0 {
		return nil, apperrors.NewValidation("lessonId", "lesson id is required")
	}

	exists, err := s.lessons.ExistsByID(ctx, lessonID)
	if err != nil {
		s.logger.Error("failed to check lesson", zap.Error(err), zap.Int("lessonId", lessonID))
		return nil, apperrors.NewPersistence("check lesson", err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("lesson", lessonID)
	}

	games, err := s.repo.GetByLessonID(ctx, lessonID)
	if err != nil {
		s.logger.Error("failed to list games", zap.Error(err), zap.Int("lessonId", lessonID))
		return nil, apperrors.NewPersistence("list games", err)
	}
	if games == nil {
		games = []models.GameResponse{}
	}
	return games, nil
}

// DeleteGame removes an exercise; the remaining exercises of the lesson keep
// dense orders
func (s *gameService) DeleteGame(ctx context.Context, id int) error {
	if id <= 0 {
		return apperrors.NewValidation("id", "game id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		s.logger.Error("failed to delete game", zap.Error(err), zap.Int("id", id))
		return apperrors.NewPersistence("delete game", err)
	}
	return nil
}

// ReorderParts moves one ordered child of an exercise from one 1-based
// position to another with stable shift semantics
func (s *gameService) ReorderParts(ctx context.Context, gameID int, req *models.ReorderRequest) error {
	if gameID <= 0 {
		return apperrors.NewValidation("id", "game id is required")
	}
	if req.FromIndex < 1 {
		return apperrors.NewValidation("fromIndex", "from index must be at least 1")
	}
	if req.ToIndex < 1 {
		return apperrors.NewValidation("toIndex", "to index must be at least 1")
	}

	if err := s.repo.ReorderChildren(ctx, gameID, req.FromIndex, req.ToIndex); err != nil {
		if apperrors.IsNotFound(err) || apperrors.IsValidation(err) {
			return err
		}
		s.logger.Error("failed to reorder game parts", zap.Error(err), zap.Int("gameId", gameID))
		return apperrors.NewPersistence("reorder game parts", err)
	}
	return nil
}
