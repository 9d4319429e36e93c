package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	ucerrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
)

// snippetLimit bounds the raw text carried by a ParseError
const snippetLimit = 200

var fencePattern = regexp.MustCompile("```(?:json|JSON)?[ \\t]*\\r?\\n?([\\s\\S]*?)```")

// ParseError reports model output from which no JSON object could be recovered
type ParseError struct {
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse AI response as JSON (starts with %q)", e.Snippet)
}

func (e *ParseError) Unwrap() error { return ucerrors.ErrParse }

// SchemaError reports a JSON object that lacks the analysis shape
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid analysis response: %s", e.Reason)
	}
	return fmt.Sprintf("invalid analysis response: %s %s", e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ucerrors.ErrSchema }

// ChatReply is the answer shape requested from the chat prompt
type ChatReply struct {
	Response string           `json:"response"`
	Quotes   []entities.Quote `json:"quotes"`
}

// Parser turns raw model output into typed results
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ExtractJSON recovers a JSON object from free-form model text. Tiers are
// tried in order: the whole text, the first fenced block that parses, and
// the span from the first '{' to the last '}'.
func ExtractJSON(raw string) (json.RawMessage, error) {
	for _, tier := range []func(string) (json.RawMessage, bool){parseDirect, parseFenced, parseBraced} {
		if obj, ok := tier(raw); ok {
			return obj, nil
		}
	}
	return nil, &ParseError{Snippet: truncate(raw, snippetLimit)}
}

func parseDirect(raw string) (json.RawMessage, bool) {
	return asObject(raw)
}

func parseFenced(raw string) (json.RawMessage, bool) {
	for _, m := range fencePattern.FindAllStringSubmatch(raw, -1) {
		if obj, ok := asObject(m[1]); ok {
			return obj, true
		}
	}
	return nil, false
}

func parseBraced(raw string) (json.RawMessage, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return asObject(raw[start : end+1])
}

// asObject accepts only a complete, valid JSON object
func asObject(s string) (json.RawMessage, bool) {
	b := bytes.TrimSpace([]byte(s))
	if len(b) == 0 || b[0] != '{' || !json.Valid(b) {
		return nil, false
	}
	return json.RawMessage(b), true
}

// ParseAnalysis extracts and shape-checks an analysis response
func (p *Parser) ParseAnalysis(raw string) (*entities.Analysis, error) {
	obj, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	return DecodeAnalysis(obj)
}

// DecodeAnalysis requires keyThemes and disagreements to be arrays. Element
// fields are coerced loosely by the entity decoders and never fail the run.
func DecodeAnalysis(obj json.RawMessage) (*entities.Analysis, error) {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(obj, &shape); err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}
	for _, field := range []string{"keyThemes", "disagreements"} {
		v, ok := shape[field]
		if !ok {
			return nil, &SchemaError{Field: field, Reason: "is missing"}
		}
		if v = bytes.TrimSpace(v); len(v) == 0 || v[0] != '[' {
			return nil, &SchemaError{Field: field, Reason: "is not an array"}
		}
	}

	var analysis entities.Analysis
	if err := json.Unmarshal(obj, &analysis); err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}
	ValidateAnalysis(&analysis)
	return &analysis, nil
}

// ValidateAnalysis initialises nil slices so the result always serialises as arrays
func ValidateAnalysis(a *entities.Analysis) {
	if a.KeyThemes == nil {
		a.KeyThemes = make([]entities.Theme, 0)
	}
	if a.Disagreements == nil {
		a.Disagreements = make([]entities.Disagreement, 0)
	}
	for i := range a.KeyThemes {
		if a.KeyThemes[i].Quotes == nil {
			a.KeyThemes[i].Quotes = make([]entities.Quote, 0)
		}
	}
	for i := range a.Disagreements {
		if a.Disagreements[i].Participants == nil {
			a.Disagreements[i].Participants = make([]string, 0)
		}
		if a.Disagreements[i].Positions == nil {
			a.Disagreements[i].Positions = make([]entities.Position, 0)
		}
	}
}

// ParseChatReply never fails: text without a usable JSON object becomes the answer
func (p *Parser) ParseChatReply(raw string) ChatReply {
	fallback := ChatReply{Response: strings.TrimSpace(raw), Quotes: make([]entities.Quote, 0)}

	obj, err := ExtractJSON(raw)
	if err != nil {
		return fallback
	}
	var reply ChatReply
	if err := json.Unmarshal(obj, &reply); err != nil {
		return fallback
	}
	if strings.TrimSpace(reply.Response) == "" {
		reply.Response = fallback.Response
	}
	if reply.Quotes == nil {
		reply.Quotes = make([]entities.Quote, 0)
	}
	return reply
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// keep the cut on a rune boundary
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
