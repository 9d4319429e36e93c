package ai

import (
	"context"
	"fmt"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// AssemblyAIClient transcribes interview audio with speaker labels
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client. baseURL is only set in tests.
func NewAssemblyAIClient(apiKey, baseURL string) *AssemblyAIClient {
	opts := []aai.ClientOption{aai.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}
	return &AssemblyAIClient{client: aai.NewClientWithOptions(opts...)}
}

// Transcribe submits an audio URL, waits for completion and returns
// the transcript as "Speaker X: ..." lines.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, strings.TrimSpace(audioURL), params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai error: %s", msg)
	}

	fallback := ""
	if transcript.Text != nil {
		fallback = *transcript.Text
	}
	return FormatUtterances(transcript.Utterances, fallback), nil
}

// FormatUtterances renders speaker-labelled utterances one per line.
// With no utterances the plain transcript text is returned.
func FormatUtterances(utterances []aai.TranscriptUtterance, fallback string) string {
	if len(utterances) == 0 {
		return fallback
	}

	var sb strings.Builder
	for _, utt := range utterances {
		if utt.Text == nil || strings.TrimSpace(*utt.Text) == "" {
			continue
		}
		speaker := "Unknown"
		if utt.Speaker != nil && *utt.Speaker != "" {
			speaker = *utt.Speaker
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Speaker %s: %s", speaker, strings.TrimSpace(*utt.Text))
	}
	return sb.String()
}
