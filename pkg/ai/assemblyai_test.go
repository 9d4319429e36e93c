package ai

import (
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

func TestFormatUtterances(t *testing.T) {
	utterances := []aai.TranscriptUtterance{
		{Speaker: aai.String("A"), Text: aai.String(" What made you switch tools? ")},
		{Speaker: aai.String("B"), Text: aai.String("Mostly the pricing.")},
		{Speaker: aai.String("B"), Text: aai.String("   ")},
		{Text: aai.String("Hard to say.")},
	}

	got := FormatUtterances(utterances, "ignored")
	want := "Speaker A: What made you switch tools?\nSpeaker B: Mostly the pricing.\nSpeaker Unknown: Hard to say."
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatUtterances_Fallback(t *testing.T) {
	if got := FormatUtterances(nil, "plain text"); got != "plain text" {
		t.Fatalf("expected fallback text, got %q", got)
	}
}
