package models

import "encoding/json"

// GameType represents the kind of an exercise. The set is closed: every
// incoming type string is checked against these before any dispatch.
type GameType string

const (
	GameTypeChoosePic    GameType = "ChoosePic"
	GameTypeDragDrop     GameType = "DragDrop"
	GameTypeAstroTrash   GameType = "AstroTrash"
	GameTypeSpeakMatch   GameType = "SpeakMatch"
	GameTypeListenChoice GameType = "ListenChoice"
	GameTypeConversation GameType = "Conversation"
	GameTypeMatchPairs   GameType = "MatchPairs"
)

// ValidGameTypes lists every known exercise kind
var ValidGameTypes = map[GameType]bool{
	GameTypeChoosePic:    true,
	GameTypeDragDrop:     true,
	GameTypeAstroTrash:   true,
	GameTypeSpeakMatch:   true,
	GameTypeListenChoice: true,
	GameTypeConversation: true,
	GameTypeMatchPairs:   true,
}

// ListenChoiceType selects whether listen-choice options answer with words or sentences
type ListenChoiceType string

const (
	ListenChoiceWordAnswer     ListenChoiceType = "wordAnswer"
	ListenChoiceSentenceAnswer ListenChoiceType = "sentenceAnswer"
)

// MatchPairsType represents the matching mode of a match-pairs exercise
type MatchPairsType string

const (
	MatchPairsSentToSent   MatchPairsType = "SentToSent"
	MatchPairsListenToSent MatchPairsType = "ListenToSent"
)

// MatchPairsPartType selects whether match-pairs parts are words or sentences
type MatchPairsPartType string

const (
	MatchPairsPartWord     MatchPairsPartType = "word"
	MatchPairsPartSentence MatchPairsPartType = "sentence"
)

// Game represents one exercise within a lesson
type Game struct {
	ID       int      `json:"id"`
	LessonID int      `json:"lessonId"`
	Type     GameType `json:"type"`
	Order    int      `json:"order"`
}

// CreateGameRequest represents an authoring submission of an exercise.
// Payload is decoded into the payload struct matching Type before the
// composer is invoked; unknown types are rejected at the boundary.
type CreateGameRequest struct {
	LessonID int             `json:"lessonId"`
	Type     GameType        `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

// GameResponse represents a full exercise with its typed payload
type GameResponse struct {
	ID       int      `json:"id"`
	LessonID int      `json:"lessonId"`
	Type     GameType `json:"type"`
	Order    int      `json:"order"`
	Payload  any      `json:"payload"`
}

// ReorderRequest moves a child item of an exercise from one position to another
type ReorderRequest struct {
	FromIndex int `json:"fromIndex"`
	ToIndex   int `json:"toIndex"`
}

// ChoosePicOption is one ordered picture option of a choose-pic exercise
type ChoosePicOption struct {
	ID           int    `json:"id,omitempty"`
	TargetWordID int    `json:"targetWordId"`
	Image        string `json:"image,omitempty"`
	IsCorrect    bool   `json:"isCorrect"`
	Order        int    `json:"order"`
}

func (o *ChoosePicOption) GetOrder() int  { return o.Order }
func (o *ChoosePicOption) SetOrder(n int) { o.Order = n }

// ChoosePicPayload carries the choose-pic specific parts of a submission
type ChoosePicPayload struct {
	BaseSentenceID int               `json:"baseSentenceId"`
	Options        []ChoosePicOption `json:"options"`
}

// DragDropPart is one ordered word part of a drag-drop exercise
type DragDropPart struct {
	ID           int `json:"id,omitempty"`
	TargetWordID int `json:"targetWordId"`
	Order        int `json:"order"`
}

func (p *DragDropPart) GetOrder() int  { return p.Order }
func (p *DragDropPart) SetOrder(n int) { p.Order = n }

// DragDropPayload carries the drag-drop specific parts of a submission
type DragDropPayload struct {
	BaseSentenceID   int            `json:"baseSentenceId"`
	TargetSentenceID int            `json:"targetSentenceId"`
	Image            string         `json:"image,omitempty"`
	Parts            []DragDropPart `json:"parts"`
}

// AstroTrashGarbage is one ordered garbage item of an astro-trash exercise
type AstroTrashGarbage struct {
	ID           int    `json:"id,omitempty"`
	BaseWordID   *int   `json:"baseWordId,omitempty"`
	TargetWordID int    `json:"targetWordId"`
	Image        string `json:"image,omitempty"`
	Order        int    `json:"order"`
}

func (g *AstroTrashGarbage) GetOrder() int  { return g.Order }
func (g *AstroTrashGarbage) SetOrder(n int) { g.Order = n }

// AstroTrashPayload carries the astro-trash specific parts of a submission
type AstroTrashPayload struct {
	Garbage []AstroTrashGarbage `json:"garbage"`
}

// SpeakMatchPayload carries the speak-match specific parts of a submission
type SpeakMatchPayload struct {
	TargetSentenceID int    `json:"targetSentenceId"`
	Image            string `json:"image,omitempty"`
}

// ListenChoiceOption is one ordered answer option of a listen-choice exercise.
// Exactly one of TargetSentenceID and TargetWordID is set, matching ListenType.
type ListenChoiceOption struct {
	ID               int  `json:"id,omitempty"`
	TargetSentenceID *int `json:"targetSentenceId,omitempty"`
	TargetWordID     *int `json:"targetWordId,omitempty"`
	IsCorrect        bool `json:"isCorrect"`
	Order            int  `json:"order"`
}

func (o *ListenChoiceOption) GetOrder() int  { return o.Order }
func (o *ListenChoiceOption) SetOrder(n int) { o.Order = n }

// ListenChoicePayload carries the listen-choice specific parts of a submission
type ListenChoicePayload struct {
	TargetSentenceID int                  `json:"targetSentenceId"`
	Image            string               `json:"image,omitempty"`
	ListenType       ListenChoiceType     `json:"listenType"`
	Options          []ListenChoiceOption `json:"options"`
}

// DialogueResponse is one ordered answer choice of a conversation turn
type DialogueResponse struct {
	ID               int  `json:"id,omitempty"`
	TargetSentenceID int  `json:"targetSentenceId"`
	BaseSentenceID   *int `json:"baseSentenceId,omitempty"`
	IsCorrect        bool `json:"isCorrect"`
	Order            int  `json:"order"`
}

func (r *DialogueResponse) GetOrder() int  { return r.Order }
func (r *DialogueResponse) SetOrder(n int) { r.Order = n }

// ConversationDialogue is one ordered turn of a conversation exercise
type ConversationDialogue struct {
	ID               int                `json:"id,omitempty"`
	CharacterRole    string             `json:"characterRole"`
	TargetSentenceID int                `json:"targetSentenceId"`
	BaseSentenceID   *int               `json:"baseSentenceId,omitempty"`
	Order            int                `json:"order"`
	Responses        []DialogueResponse `json:"responses"`
}

func (d *ConversationDialogue) GetOrder() int  { return d.Order }
func (d *ConversationDialogue) SetOrder(n int) { d.Order = n }

// ConversationPayload carries the conversation specific parts of a submission
type ConversationPayload struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Dialogue    []ConversationDialogue `json:"dialogue"`
}

// MatchPairsWordPart is one ordered base/target word pair of a match-pairs exercise
type MatchPairsWordPart struct {
	ID           int `json:"id,omitempty"`
	BaseWordID   int `json:"baseWordId"`
	TargetWordID int `json:"targetWordId"`
	Order        int `json:"order"`
}

func (p *MatchPairsWordPart) GetOrder() int  { return p.Order }
func (p *MatchPairsWordPart) SetOrder(n int) { p.Order = n }

// MatchPairsSentencePart is one ordered base/target sentence pair of a match-pairs exercise
type MatchPairsSentencePart struct {
	ID               int `json:"id,omitempty"`
	BaseSentenceID   int `json:"baseSentenceId"`
	TargetSentenceID int `json:"targetSentenceId"`
	Order            int `json:"order"`
}

func (p *MatchPairsSentencePart) GetOrder() int  { return p.Order }
func (p *MatchPairsSentencePart) SetOrder(n int) { p.Order = n }

// MatchPairsPayload carries the match-pairs specific parts of a submission.
// WordParts is used when PartType is "word", SentenceParts when "sentence".
type MatchPairsPayload struct {
	MatchType     MatchPairsType           `json:"matchType"`
	PartType      MatchPairsPartType       `json:"partType"`
	WordParts     []MatchPairsWordPart     `json:"wordParts,omitempty"`
	SentenceParts []MatchPairsSentencePart `json:"sentenceParts,omitempty"`
}
