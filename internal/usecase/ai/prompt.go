package ai

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
)

// Prompt is a system/user instruction pair sent as one generation request
type Prompt struct {
	SystemInstruction string
	UserInstruction   string
}

const analysisRules = `You are an expert analyst who identifies key themes and disagreements in interview transcripts.

Analyze the interview transcripts supplied by the user and respond with JSON in exactly this structure:

{
  "keyThemes": [
    {
      "title": "Theme title",
      "confidence": 0.95,
      "mentions": 15,
      "description": "Brief description of the theme",
      "quotes": [
        {"text": "Verbatim quote", "participant": "Speaker name", "context": "When or why it was said"}
      ]
    }
  ],
  "disagreements": [
    {
      "title": "Disagreement topic",
      "intensity": "High|Medium|Low",
      "participants": ["Participant 1", "Participant 2"],
      "description": "Description of the disagreement",
      "positions": [
        {
          "stance": "Position description",
          "supporter": "Participant name",
          "reasoning": "Reasoning behind this position",
          "quote": {"text": "Verbatim quote", "participant": "Participant name"}
        }
      ]
    }
  ]
}

Guidelines:
- Identify 3-6 key themes, each with a confidence score between 0 and 1
- Every theme must be supported by at least one attributed quote
- Look for areas where participants disagree or hold different viewpoints; "disagreements" may be an empty array
- Classify disagreement intensity as High, Medium, or Low
- Be specific about who holds which position
- Focus on substantive content, not superficial differences
- Return only the JSON object, with no additional text`

const chatRules = `You are an AI assistant that helps users understand and explore interview transcripts. Answer the user's question using only the transcript content.

Provide:
1. A clear, conversational answer to the question
2. Relevant quotes from the transcripts that support the answer
3. Context about which participant said what

Respond with JSON in exactly this structure:
{
  "response": "Your conversational answer",
  "quotes": [
    {"text": "The verbatim quote", "participant": "Participant name", "context": "Brief context about when or why this was said"}
  ]
}`

const cleanupRules = `You are an expert editor who cleans up spoken quotes for readability while preserving their meaning and tone.

Do:
- Fix grammar, punctuation and sentence structure
- Remove filler words and disfluencies (um, uh, like, you know, I mean, false starts, repetitions)
- Correct obvious speech-to-text errors
- Keep the speaker's voice, register and roughly the same length
- Keep technical terms and deliberate word choices

Do not:
- Change the meaning, sentiment or emphasis
- Add information that is not in the original
- Make a casual speaker sound formal

Return only the cleaned quote, without commentary and without quotation marks.`

// BuildAnalysisPrompt assembles the theme/disagreement extraction request.
// Transcripts are emitted in the order given.
func BuildAnalysisPrompt(transcripts []*entities.Transcript, projectContext string, aliases []string) Prompt {
	var sb strings.Builder
	sb.WriteString(analysisRules)
	writeExclusion(&sb, aliases)
	writeProjectContext(&sb, projectContext)

	return Prompt{
		SystemInstruction: sb.String(),
		UserInstruction:   "Transcripts to analyze:\n\n" + FormatTranscripts(transcripts),
	}
}

// BuildChatPrompt assembles a single-question request against the corpus
func BuildChatPrompt(transcripts []*entities.Transcript, projectContext, question string, aliases []string) Prompt {
	var sb strings.Builder
	sb.WriteString(chatRules)
	writeExclusion(&sb, aliases)
	writeProjectContext(&sb, projectContext)

	user := fmt.Sprintf("User's question: %s\n\nTranscript content:\n%s", strings.TrimSpace(question), FormatTranscripts(transcripts))
	if len(aliases) > 0 {
		user += fmt.Sprintf("\n\nRemember: completely exclude %s from all quotes, references and analysis.", aliases[0])
	}
	return Prompt{SystemInstruction: sb.String(), UserInstruction: user}
}

// BuildCleanupPrompt asks for a disfluency-free rendering of one quote
func BuildCleanupPrompt(in QuoteCleanupInput) Prompt {
	var sb strings.Builder
	sb.WriteString("Please clean up this quote")
	if p := strings.TrimSpace(in.Participant); p != "" {
		sb.WriteString(" from " + p)
	}
	if c := strings.TrimSpace(in.Context); c != "" {
		sb.WriteString(" (Context: " + c + ")")
	}
	sb.WriteString(":\n\n\"" + strings.TrimSpace(in.Text) + "\"")

	return Prompt{SystemInstruction: cleanupRules, UserInstruction: sb.String()}
}

// FormatTranscripts renders "=== filename ===\ncontent" blocks separated by blank lines
func FormatTranscripts(transcripts []*entities.Transcript) string {
	blocks := make([]string, 0, len(transcripts))
	for _, t := range transcripts {
		if t == nil {
			continue
		}
		content := t.Content
		if strings.TrimSpace(content) == "" {
			content = "No content available"
		}
		blocks = append(blocks, fmt.Sprintf("=== %s ===\n%s", t.Filename, content))
	}
	return strings.Join(blocks, "\n\n")
}

func writeExclusion(sb *strings.Builder, aliases []string) {
	if len(aliases) == 0 {
		return
	}
	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = fmt.Sprintf("%q", a)
	}

	sb.WriteString("\n\nCRITICAL SPEAKER EXCLUSION RULE:\n")
	fmt.Fprintf(sb, "%q is the interview moderator. Never quote them, never count or list them as a participant or supporter, and never use anything they said as evidence. ", aliases[0])
	sb.WriteString("Treat all of the following names as that same person and exclude them completely: ")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(".")
}

func writeProjectContext(sb *strings.Builder, projectContext string) {
	projectContext = strings.TrimSpace(projectContext)
	if projectContext == "" {
		return
	}
	sb.WriteString("\n\nPROJECT CONTEXT:\n")
	sb.WriteString(projectContext)
	sb.WriteString("\n\nUse this project context as the primary lens when judging which themes are relevant and how to prioritize them.")
}
