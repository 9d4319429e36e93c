package entities

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestQuoteUnmarshal(t *testing.T) {
	var theme Theme
	raw := `{"title":"Pricing","quotes":["It costs too much",{"text":"We pay monthly","participant":"Dr. Smith","context":"on billing"}]}`
	if err := json.Unmarshal([]byte(raw), &theme); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(theme.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(theme.Quotes))
	}
	if theme.Quotes[0].Text != "It costs too much" || theme.Quotes[0].Participant != "" {
		t.Fatalf("unexpected string quote %+v", theme.Quotes[0])
	}
	if theme.Quotes[1].Participant != "Dr. Smith" || theme.Quotes[1].Context != "on billing" {
		t.Fatalf("unexpected object quote %+v", theme.Quotes[1])
	}
}

func TestQuoteUnmarshal_RejectsNumbers(t *testing.T) {
	var q Quote
	if err := json.Unmarshal([]byte(`42`), &q); err == nil {
		t.Fatalf("expected error for numeric quote")
	}
}

func TestSizeKB(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{0, 0},
		{1024, 1},
		{1536, 1.5},
		{1100, 1.1},
		{10, 0},
	}
	for _, tt := range tests {
		if got := SizeKB(strings.Repeat("a", tt.n)); got != tt.want {
			t.Errorf("SizeKB(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestAppendContext(t *testing.T) {
	p := &Project{}
	p.AppendContext("  Focus on onboarding  ")
	if p.Context != "Focus on onboarding" {
		t.Fatalf("unexpected context %q", p.Context)
	}
	p.AppendContext("Ignore pricing")
	if p.Context != "Focus on onboarding\n\n---\n\nIgnore pricing" {
		t.Fatalf("unexpected context %q", p.Context)
	}
	p.AppendContext("   ")
	if strings.Count(p.Context, ContextSeparator) != 1 {
		t.Fatalf("blank append must be a no-op")
	}
}

func TestNewProject_RequiresName(t *testing.T) {
	if _, err := NewProject(nil, "  ", "", ""); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestNewChatExchange_Quotes(t *testing.T) {
	ex := NewChatExchange(uuid.New(), "q", "a", nil, "")
	if ex.SessionID != nil {
		t.Fatalf("empty session id must not be stored")
	}
	if q := ex.Quotes(); q == nil || len(q) != 0 {
		t.Fatalf("expected empty non-nil quotes, got %#v", q)
	}
}
