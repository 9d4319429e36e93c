package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	usecaseErrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
	"github.com/johnquangdev/transcript-iq/pkg/config"
)

type fakeSender struct {
	sent []Message
	id   string
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg Message) (string, error) {
	f.sent = append(f.sent, msg)
	return f.id, f.err
}

func newTestEmailService(sender Sender) *EmailService {
	return NewEmailService(sender, &config.EmailConfig{
		From:    "TranscriptIQ <no-reply@example.com>",
		SiteURL: "https://app.example.com",
	}, nil)
}

func TestRender(t *testing.T) {
	svc := newTestEmailService(&fakeSender{})
	tests := []struct {
		name        string
		req         AuthEmailRequest
		wantSubject string
		wantLink    string
	}{
		{
			name:        "signup",
			req:         AuthEmailRequest{Type: EmailTypeSignup, Token: "abc"},
			wantSubject: "Confirm your email - TranscriptIQ",
			wantLink:    "https://app.example.com/auth/confirm?token=abc&amp;type=signup",
		},
		{
			name:        "recovery",
			req:         AuthEmailRequest{Type: EmailTypeRecovery, Token: "abc"},
			wantSubject: "Reset your password - TranscriptIQ",
			wantLink:    "https://app.example.com/auth/reset-password?token=abc",
		},
		{
			name:        "magic link with redirect",
			req:         AuthEmailRequest{Type: EmailTypeMagicLink, Token: "abc", RedirectTo: "https://preview.example.com/"},
			wantSubject: "Sign in to TranscriptIQ",
			wantLink:    "https://preview.example.com/auth/confirm?token=abc&amp;type=magiclink",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, html, err := svc.Render(tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if subject != tt.wantSubject {
				t.Fatalf("subject = %q, want %q", subject, tt.wantSubject)
			}
			if !strings.Contains(html, `href="`+tt.wantLink+`"`) {
				t.Fatalf("link %q not found in:\n%s", tt.wantLink, html)
			}
		})
	}
}

func TestRender_UnsupportedType(t *testing.T) {
	svc := newTestEmailService(&fakeSender{})
	for _, typ := range []EmailType{"invite", "email_change", ""} {
		_, _, err := svc.Render(AuthEmailRequest{Type: typ, Token: "t"})
		if !errors.Is(err, usecaseErrors.ErrInvalidEmailType) || !errors.Is(err, usecaseErrors.ErrValidation) {
			t.Fatalf("expected ErrInvalidEmailType for %q, got %v", typ, err)
		}
	}
}

func TestBuildLink(t *testing.T) {
	got := BuildLink("https://x.com/", "/auth/confirm", "a b&c", "signup")
	if got != "https://x.com/auth/confirm?token=a+b%26c&type=signup" {
		t.Fatalf("unexpected link %q", got)
	}
}

func TestSend(t *testing.T) {
	sender := &fakeSender{id: "msg_123"}
	svc := newTestEmailService(sender)

	id, err := svc.Send(context.Background(), AuthEmailRequest{Email: " user@example.com ", Type: EmailTypeSignup, Token: "t"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "msg_123" {
		t.Fatalf("unexpected id %q", id)
	}
	msg := sender.sent[0]
	if msg.From != "TranscriptIQ <no-reply@example.com>" || len(msg.To) != 1 || msg.To[0] != "user@example.com" {
		t.Fatalf("unexpected message %+v", msg)
	}

	if _, err := svc.Send(context.Background(), AuthEmailRequest{Type: EmailTypeSignup}); !errors.Is(err, usecaseErrors.ErrValidation) {
		t.Fatalf("expected validation error for missing email, got %v", err)
	}

	sender.err = errors.New("rate limited")
	if _, err := svc.Send(context.Background(), AuthEmailRequest{Email: "u@x.com", Type: EmailTypeRecovery}); err == nil {
		t.Fatalf("expected send failure")
	}
	if len(sender.sent) != 2 {
		t.Fatalf("validation failure must not reach the sender")
	}
}
