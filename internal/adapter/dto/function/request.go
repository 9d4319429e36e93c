package function

import "strings"

// TranscriptInput is one caller-supplied transcript
type TranscriptInput struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// AnalyzeTranscriptsRequest represents the analyze-transcripts payload
type AnalyzeTranscriptsRequest struct {
	Transcripts []TranscriptInput `json:"transcripts"`
	ProjectID   string            `json:"projectId,omitempty"`
}

// ChatRequest represents the chat-with-transcripts payload
type ChatRequest struct {
	Question  string `json:"question"`
	ProjectID string `json:"projectId"`
	SessionID string `json:"sessionId,omitempty"`
}

// CleanupQuoteRequest accepts either {text} or {quote, participant, context}
type CleanupQuoteRequest struct {
	Text        string `json:"text,omitempty"`
	Quote       string `json:"quote,omitempty"`
	Participant string `json:"participant,omitempty"`
	Context     string `json:"context,omitempty"`
}

// QuoteText returns whichever quote field was supplied
func (r CleanupQuoteRequest) QuoteText() string {
	if strings.TrimSpace(r.Text) != "" {
		return r.Text
	}
	return r.Quote
}
