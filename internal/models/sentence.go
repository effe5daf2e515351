package models

// Sentence represents a sentence in one language
type Sentence struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	LanguageID int    `json:"languageId"`
}

// SentenceAudio represents one voice rendition of a sentence
type SentenceAudio struct {
	ID          int    `json:"id"`
	SentenceID  int    `json:"sentenceId"`
	CharacterID *int   `json:"characterId,omitempty"`
	AudioURL    string `json:"audioUrl"`
	DurationMs  *int   `json:"durationMs,omitempty"`
}

// SentenceTranslation links a base-language sentence to its target-language
// counterpart. The association row is the only place the pairing is recorded.
type SentenceTranslation struct {
	BaseSentenceID   int `json:"baseSentenceId"`
	TargetSentenceID int `json:"targetSentenceId"`
	Confidence       int `json:"confidence"`
}

// DefaultConfidence is assigned to a translation when the author supplies none
const DefaultConfidence = 1

// VoiceType represents one audio variant attributed to a character
type VoiceType struct {
	CharacterID int    `json:"characterId"`
	AudioURL    string `json:"audioUrl"`
	DurationMs  *int   `json:"durationMs,omitempty"`
}

// SentenceSide carries one side (base or target) of a sentence pair submission
type SentenceSide struct {
	Sentence   string      `json:"sentence"`
	LanguageID int         `json:"languageId"`
	VoiceTypes []VoiceType `json:"voiceTypes"`
}

// CreateSentencePairRequest represents an authoring submission of a translation pair
type CreateSentencePairRequest struct {
	Source SentenceSide `json:"source"`
	Target SentenceSide `json:"target"`
}

// CreateSentencePairResponse carries the ids of the two created sentence rows
type CreateSentencePairResponse struct {
	SourceSentenceID int `json:"sourceSentenceId"`
	TargetSentenceID int `json:"targetSentenceId"`
}

// SentenceView represents one side of a pair in read responses
type SentenceView struct {
	ID         int         `json:"id,omitempty"`
	Sentence   string      `json:"sentence"`
	VoiceTypes []VoiceType `json:"voiceTypes"`
}

// SentencePairResponse represents a resolved translation pair with audio variants
type SentencePairResponse struct {
	Source SentenceView `json:"source"`
	Target SentenceView `json:"target"`
}

// CreateSentenceAudioRequest represents a request to attach an audio variant to a sentence
type CreateSentenceAudioRequest struct {
	SentenceID  int    `json:"sentenceId"`
	CharacterID *int   `json:"characterId,omitempty"`
	AudioURL    string `json:"audioUrl"`
	DurationMs  *int   `json:"durationMs"`
}
