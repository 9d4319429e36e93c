package function

import "github.com/johnquangdev/transcript-iq/internal/domain/entities"

// ChatResponse is the answer to one question
type ChatResponse struct {
	Response string           `json:"response"`
	Quotes   []entities.Quote `json:"quotes"`
}

// CleanupQuoteResponse carries the cleaned quote under both historical names
type CleanupQuoteResponse struct {
	CleanedText  string `json:"cleanedText"`
	CleanedQuote string `json:"cleanedQuote"`
}
