package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Intensity grades how strongly participants disagree
type Intensity string

const (
	IntensityHigh   Intensity = "High"
	IntensityMedium Intensity = "Medium"
	IntensityLow    Intensity = "Low"
)

// Quote is a verbatim excerpt attributed to a speaker
type Quote struct {
	Text        string `json:"text"`
	Participant string `json:"participant"`
	Context     string `json:"context,omitempty"`
}

// UnmarshalJSON also accepts a bare string, which older prompts produced
func (q *Quote) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*q = Quote{Text: s}
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*q = Quote{
		Text:        looseString(m["text"]),
		Participant: looseString(m["participant"]),
		Context:     looseString(m["context"]),
	}
	return nil
}

// Theme is a recurring topic across transcripts
type Theme struct {
	Title       string  `json:"title"`
	Confidence  float64 `json:"confidence"`
	Mentions    int     `json:"mentions"`
	Description string  `json:"description"`
	Quotes      []Quote `json:"quotes"`
}

// Position is one side of a disagreement
type Position struct {
	Stance    string `json:"stance"`
	Supporter string `json:"supporter"`
	Reasoning string `json:"reasoning"`
	Quote     *Quote `json:"quote,omitempty"`
}

// Disagreement is a topic participants differ on
type Disagreement struct {
	Title        string     `json:"title"`
	Intensity    Intensity  `json:"intensity"`
	Participants []string   `json:"participants"`
	Description  string     `json:"description"`
	Positions    []Position `json:"positions"`
}

// UnmarshalJSON coerces loosely typed model output; fields that cannot be
// coerced keep their zero value.
func (t *Theme) UnmarshalJSON(b []byte) error {
	m, ok := looseObject(b)
	if !ok {
		*t = Theme{Title: looseString(b)}
		return nil
	}
	*t = Theme{
		Title:       looseString(m["title"]),
		Confidence:  looseFloat(m["confidence"]),
		Mentions:    looseInt(m["mentions"]),
		Description: looseString(m["description"]),
		Quotes:      looseQuotes(m["quotes"]),
	}
	return nil
}

func (p *Position) UnmarshalJSON(b []byte) error {
	m, ok := looseObject(b)
	if !ok {
		*p = Position{Stance: looseString(b)}
		return nil
	}
	*p = Position{
		Stance:    looseString(m["stance"]),
		Supporter: looseString(m["supporter"]),
		Reasoning: looseString(m["reasoning"]),
	}
	if raw, ok := m["quote"]; ok {
		var q Quote
		if err := json.Unmarshal(raw, &q); err == nil && (q.Text != "" || q.Participant != "") {
			p.Quote = &q
		}
	}
	return nil
}

func (d *Disagreement) UnmarshalJSON(b []byte) error {
	m, ok := looseObject(b)
	if !ok {
		*d = Disagreement{Title: looseString(b)}
		return nil
	}
	*d = Disagreement{
		Title:        looseString(m["title"]),
		Intensity:    Intensity(looseString(m["intensity"])),
		Participants: looseStrings(m["participants"]),
		Description:  looseString(m["description"]),
	}
	var items []json.RawMessage
	if json.Unmarshal(m["positions"], &items) == nil {
		for _, item := range items {
			var pos Position
			if err := json.Unmarshal(item, &pos); err == nil {
				d.Positions = append(d.Positions, pos)
			}
		}
	}
	return nil
}

// Analysis is the structured payload recovered from model output
type Analysis struct {
	KeyThemes     []Theme        `json:"keyThemes"`
	Disagreements []Disagreement `json:"disagreements"`
}

// AnalysisResult is one persisted analysis run. Runs are never merged;
// readers take the most recent by CreatedAt.
type AnalysisResult struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID       *uuid.UUID     `json:"projectId,omitempty" gorm:"type:uuid;index"`
	KeyThemes       []Theme        `json:"keyThemes" gorm:"column:key_themes;type:jsonb;serializer:json"`
	Disagreements   []Disagreement `json:"disagreements" gorm:"column:disagreements;type:jsonb;serializer:json"`
	TranscriptCount int            `json:"transcriptCount" gorm:"column:transcript_count"`
	CreatedAt       time.Time      `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AnalysisResult) TableName() string {
	return "analysis_results"
}

// NewAnalysisResult wraps a filtered analysis for persistence
func NewAnalysisResult(projectID *uuid.UUID, analysis Analysis, transcriptCount int) *AnalysisResult {
	return &AnalysisResult{
		ID:              uuid.New(),
		ProjectID:       projectID,
		KeyThemes:       analysis.KeyThemes,
		Disagreements:   analysis.Disagreements,
		TranscriptCount: transcriptCount,
		CreatedAt:       time.Now().UTC(),
	}
}

// LatestAnalysisKey is the cache key for a project's most recent result
func LatestAnalysisKey(projectID uuid.UUID) string {
	return "analysis:latest:" + projectID.String()
}
