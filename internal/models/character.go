package models

// Character represents a named voice persona that narrates audio variants
type Character struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	RiveFile string `json:"riveFile,omitempty"` // animation asset reference
}

// CreateCharacterRequest represents a request to create a character
type CreateCharacterRequest struct {
	Name     string `json:"name"`
	RiveFile string `json:"riveFile,omitempty"`
}

// UpdateCharacterRequest represents a request to update a character (partial update)
type UpdateCharacterRequest struct {
	Name     string `json:"name,omitempty"`
	RiveFile string `json:"riveFile,omitempty"`
}
