package ai

import (
	"reflect"
	"strings"
	"testing"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
)

var testAliases = SpeakerAliases("Jamie Horton", []string{"interviewer", "researcher"})

func TestSpeakerAliases(t *testing.T) {
	want := []string{"Jamie Horton", "Jamie", "Horton", "Dr. Horton", "interviewer", "researcher"}
	if !reflect.DeepEqual(testAliases, want) {
		t.Fatalf("got %v, want %v", testAliases, want)
	}

	single := SpeakerAliases("Jamie", []string{"Interviewer", "interviewer", " "})
	if !reflect.DeepEqual(single, []string{"Jamie", "Dr. Jamie", "Interviewer"}) {
		t.Fatalf("unexpected aliases %v", single)
	}
}

func TestSpeakerMatcher(t *testing.T) {
	m := NewSpeakerMatcher(testAliases)
	tests := []struct {
		name string
		want bool
	}{
		{"Jamie Horton", true},
		{"  jamie  ", true},
		{"Dr. Horton", true},
		{"Interviewer (Jamie)", true},
		{"Jam", true}, // contained in an alias
		{"Dr. Smith", false},
		{"Participant 2", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := m.IsExcluded(tt.name); got != tt.want {
			t.Errorf("IsExcluded(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if NewSpeakerMatcher([]string{"", "  "}).IsExcluded("anyone") {
		t.Fatalf("blank aliases must never match")
	}
}

func sampleAnalysis() entities.Analysis {
	return entities.Analysis{
		KeyThemes: []entities.Theme{
			{
				Title: "Pricing",
				Quotes: []entities.Quote{
					{Text: "So how do you feel about price?", Participant: "Jamie Horton"},
					{Text: "It is too expensive", Participant: "Dr. Smith"},
				},
			},
			{
				Title:  "Moderator only",
				Quotes: []entities.Quote{{Text: "Tell me more", Participant: "Jamie"}},
			},
			{
				Title:  "Unattributed",
				Quotes: []entities.Quote{{Text: "A bare string quote"}},
			},
		},
		Disagreements: []entities.Disagreement{
			{
				Title:        "Build vs buy",
				Participants: []string{"Ana", "Interviewer", "Ben"},
				Positions: []entities.Position{
					{Stance: "Buy", Supporter: "Ana"},
					{Stance: "Neutral", Supporter: "Dr. Horton"},
					{Stance: "Build", Supporter: "Ben", Quote: &entities.Quote{Text: "we can do it", Participant: "Jamie"}},
					{Stance: "Build later", Supporter: "Ben", Quote: &entities.Quote{Text: "later", Participant: "Ben"}},
				},
			},
			{
				Title:        "Only moderator",
				Participants: []string{"Jamie"},
				Positions:    []entities.Position{{Stance: "x", Supporter: "researcher"}},
			},
		},
	}
}

func TestFilterExcludedSpeaker(t *testing.T) {
	in := sampleAnalysis()
	out := FilterExcludedSpeaker(in, testAliases)

	if len(out.KeyThemes) != 2 {
		t.Fatalf("expected 2 themes, got %d", len(out.KeyThemes))
	}
	pricing := out.KeyThemes[0]
	if pricing.Title != "Pricing" || len(pricing.Quotes) != 1 || pricing.Quotes[0].Participant != "Dr. Smith" {
		t.Fatalf("unexpected pricing theme %+v", pricing)
	}
	if out.KeyThemes[1].Title != "Unattributed" {
		t.Fatalf("unattributed quotes must survive, got %+v", out.KeyThemes[1])
	}

	if len(out.Disagreements) != 1 {
		t.Fatalf("expected 1 disagreement, got %d", len(out.Disagreements))
	}
	d := out.Disagreements[0]
	if !reflect.DeepEqual(d.Participants, []string{"Ana", "Ben"}) {
		t.Fatalf("unexpected participants %v", d.Participants)
	}
	if len(d.Positions) != 2 || d.Positions[0].Supporter != "Ana" || d.Positions[1].Stance != "Build later" {
		t.Fatalf("unexpected positions %+v", d.Positions)
	}

	// input untouched
	if len(in.KeyThemes[0].Quotes) != 2 || len(in.Disagreements[0].Positions) != 4 {
		t.Fatalf("filter must not mutate its input")
	}
}

func TestFilterExcludedSpeaker_Idempotent(t *testing.T) {
	once := FilterExcludedSpeaker(sampleAnalysis(), testAliases)
	twice := FilterExcludedSpeaker(once, testAliases)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter is not idempotent:\n%+v\n%+v", once, twice)
	}
}

func TestFilterExcludedSpeaker_NoAliasSurvives(t *testing.T) {
	out := FilterExcludedSpeaker(sampleAnalysis(), testAliases)
	for _, theme := range out.KeyThemes {
		if len(theme.Quotes) == 0 {
			t.Fatalf("empty theme survived: %s", theme.Title)
		}
		for _, q := range theme.Quotes {
			assertNotAlias(t, q.Participant)
		}
	}
	for _, d := range out.Disagreements {
		if len(d.Positions) == 0 {
			t.Fatalf("empty disagreement survived: %s", d.Title)
		}
		for _, p := range d.Positions {
			assertNotAlias(t, p.Supporter)
			if p.Quote != nil {
				assertNotAlias(t, p.Quote.Participant)
			}
		}
	}
}

func assertNotAlias(t *testing.T, name string) {
	t.Helper()
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return
	}
	for _, a := range testAliases {
		a = strings.ToLower(a)
		if strings.Contains(n, a) || strings.Contains(a, n) {
			t.Fatalf("%q matches excluded alias %q", name, a)
		}
	}
}

func TestFilterExcludedSpeaker_Scenarios(t *testing.T) {
	twoQuotes := entities.Analysis{KeyThemes: []entities.Theme{{
		Title: "t",
		Quotes: []entities.Quote{
			{Text: "a", Participant: "Jamie Horton"},
			{Text: "b", Participant: "Dr. Smith"},
		},
	}}}
	out := FilterExcludedSpeaker(twoQuotes, testAliases)
	if len(out.KeyThemes) != 1 || len(out.KeyThemes[0].Quotes) != 1 || out.KeyThemes[0].Quotes[0].Participant != "Dr. Smith" {
		t.Fatalf("expected only the Dr. Smith quote, got %+v", out.KeyThemes)
	}

	onlyJamie := entities.Analysis{KeyThemes: []entities.Theme{{
		Title:  "t",
		Quotes: []entities.Quote{{Text: "a", Participant: "Jamie"}},
	}}}
	if out := FilterExcludedSpeaker(onlyJamie, testAliases); len(out.KeyThemes) != 0 {
		t.Fatalf("theme with only excluded quotes must be dropped")
	}
}

func TestFilterQuotes(t *testing.T) {
	quotes := []entities.Quote{
		{Text: "I prefer email", Participant: "Ana"},
		{Text: "Why?", Participant: "Interviewer"},
		{Text: "As Jamie Horton said earlier, it is fine", Participant: "Ben"},
		{Text: "No speaker"},
	}
	got := FilterQuotes(quotes, testAliases)
	if len(got) != 2 || got[0].Participant != "Ana" || got[1].Text != "No speaker" {
		t.Fatalf("unexpected quotes %+v", got)
	}
	if got := FilterQuotes(nil, testAliases); got == nil {
		t.Fatalf("expected empty non-nil slice")
	}
}
