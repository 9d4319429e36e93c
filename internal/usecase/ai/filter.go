package ai

import (
	"strings"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
)

// SpeakerAliases derives every name variant of the excluded speaker:
// full name, first name, last name, "Dr. <last>", then the extras.
// The full name is always first.
func SpeakerAliases(fullName string, extras []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(a string) {
		a = strings.TrimSpace(a)
		key := normalizeName(a)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, a)
	}

	add(fullName)
	parts := strings.Fields(fullName)
	if len(parts) > 1 {
		add(parts[0])
		add(parts[len(parts)-1])
	}
	if len(parts) > 0 {
		add("Dr. " + parts[len(parts)-1])
	}
	for _, e := range extras {
		add(e)
	}
	return out
}

// SpeakerMatcher decides whether a name refers to the excluded speaker
type SpeakerMatcher struct {
	aliases []string
}

// NewSpeakerMatcher normalizes aliases once; blank aliases are dropped
func NewSpeakerMatcher(aliases []string) *SpeakerMatcher {
	m := &SpeakerMatcher{}
	for _, a := range aliases {
		if n := normalizeName(a); n != "" {
			m.aliases = append(m.aliases, n)
		}
	}
	return m
}

// IsExcluded reports a bidirectional substring match against any alias.
// A blank name never matches.
func (m *SpeakerMatcher) IsExcluded(name string) bool {
	n := normalizeName(name)
	if n == "" {
		return false
	}
	for _, a := range m.aliases {
		if strings.Contains(n, a) || strings.Contains(a, n) {
			return true
		}
	}
	return false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FilterExcludedSpeaker removes everything attributable to the excluded
// speaker and drops themes/disagreements left without evidence. The input
// is not modified and applying it twice yields the same result.
func FilterExcludedSpeaker(analysis entities.Analysis, aliases []string) entities.Analysis {
	m := NewSpeakerMatcher(aliases)
	out := entities.Analysis{
		KeyThemes:     make([]entities.Theme, 0, len(analysis.KeyThemes)),
		Disagreements: make([]entities.Disagreement, 0, len(analysis.Disagreements)),
	}

	for _, theme := range analysis.KeyThemes {
		theme.Quotes = m.filterQuotes(theme.Quotes)
		if len(theme.Quotes) == 0 {
			continue
		}
		out.KeyThemes = append(out.KeyThemes, theme)
	}

	for _, d := range analysis.Disagreements {
		positions := make([]entities.Position, 0, len(d.Positions))
		for _, p := range d.Positions {
			if m.IsExcluded(p.Supporter) {
				continue
			}
			if p.Quote != nil && m.IsExcluded(p.Quote.Participant) {
				continue
			}
			positions = append(positions, p)
		}
		if len(positions) == 0 {
			continue
		}

		participants := make([]string, 0, len(d.Participants))
		for _, name := range d.Participants {
			if !m.IsExcluded(name) {
				participants = append(participants, name)
			}
		}

		d.Positions = positions
		d.Participants = participants
		out.Disagreements = append(out.Disagreements, d)
	}

	return out
}

// FilterQuotes drops chat quotes attributed to the excluded speaker, and
// quotes whose text names them in full.
func FilterQuotes(quotes []entities.Quote, aliases []string) []entities.Quote {
	m := NewSpeakerMatcher(aliases)
	kept := m.filterQuotes(quotes)
	if len(aliases) == 0 {
		return kept
	}

	fullName := normalizeName(aliases[0])
	out := make([]entities.Quote, 0, len(kept))
	for _, q := range kept {
		if fullName != "" && strings.Contains(normalizeName(q.Text), fullName) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func (m *SpeakerMatcher) filterQuotes(quotes []entities.Quote) []entities.Quote {
	out := make([]entities.Quote, 0, len(quotes))
	for _, q := range quotes {
		if m.IsExcluded(q.Participant) {
			continue
		}
		out = append(out, q)
	}
	return out
}
