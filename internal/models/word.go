package models

import "time"

// Word represents a vocabulary word in one language
type Word struct {
	ID           int       `json:"id"`
	LanguageID   int       `json:"languageId"`
	Text         string    `json:"text"`
	PartOfSpeech string    `json:"partOfSpeech,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// WordAudio represents one voice rendition of a word
type WordAudio struct {
	ID          int    `json:"id"`
	WordID      int    `json:"wordId"`
	CharacterID *int   `json:"characterId,omitempty"`
	AudioURL    string `json:"audioUrl"`
}

// WordTranslation links a base-language word to its target-language counterpart
type WordTranslation struct {
	BaseWordID   int `json:"baseWordId"`
	TargetWordID int `json:"targetWordId"`
	Confidence   int `json:"confidence"`
}

// WordSide carries one side (base or target) of a course-words submission
type WordSide struct {
	Word         string      `json:"word"`
	PartOfSpeech string      `json:"partOfSpeech,omitempty"`
	LanguageID   int         `json:"languageId"`
	VoiceTypes   []VoiceType `json:"voiceTypes"`
}

// CreateCourseWordsRequest represents an authoring submission of a word translation pair
type CreateCourseWordsRequest struct {
	Source WordSide `json:"source"`
	Target WordSide `json:"target"`
}

// CreateCourseWordsResponse carries the ids of the two created word rows
type CreateCourseWordsResponse struct {
	SourceWordID int    `json:"sourceWordId"`
	TargetWordID int    `json:"targetWordId"`
	Message      string `json:"message"`
}

// WordView represents one side of a word pair in read responses
type WordView struct {
	ID           int         `json:"id,omitempty"`
	Word         string      `json:"word"`
	PartOfSpeech string      `json:"partOfSpeech,omitempty"`
	VoiceTypes   []VoiceType `json:"voiceTypes"`
}

// WordPairResponse represents a resolved word translation pair with audio variants
type WordPairResponse struct {
	Source WordView `json:"source"`
	Target WordView `json:"target"`
}
