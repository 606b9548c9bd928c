package dto

// SummarizeRequest is the payload for POST /ai/summarize.
type SummarizeRequest struct {
	Content string `json:"content" binding:"required"`
}

// SummarizeResponse returns the generated summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// FlashcardsRequest is the payload for POST /ai/flashcards.
type FlashcardsRequest struct {
	Content string `json:"content" binding:"required"`
}

// Flashcard is one generated question/answer pair.
type Flashcard struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlashcardsResponse returns the generated deck.
type FlashcardsResponse struct {
	Flashcards []Flashcard `json:"flashcards"`
}

// PodcastRequest is the payload for POST /ai/podcast.
type PodcastRequest struct {
	Text string `json:"text" binding:"required"`
}

// PodcastResponse returns the synthesized audio as a data URL.
type PodcastResponse struct {
	AudioDataURL string `json:"audioDataUrl"`
}
