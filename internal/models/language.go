package models

// Language represents a language available for courses. Immutable reference data.
type Language struct {
	ID        int    `json:"id"`
	Code      string `json:"code"` // ISO-style short code, unique
	Name      string `json:"name"`
	FlagImage string `json:"flagImage,omitempty"`
}

// CreateLanguageRequest represents a request to register a language
type CreateLanguageRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	FlagImage string `json:"flagImage,omitempty"`
}
