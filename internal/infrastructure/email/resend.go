package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/johnquangdev/transcript-iq/internal/usecase/auth"
)

// ResendSender delivers auth emails through the Resend API
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a new Resend sender
func NewResendSender(apiKey string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, errors.New("RESEND_API_KEY is not configured")
	}
	return &ResendSender{client: resend.NewClient(apiKey)}, nil
}

// Send implements auth.Sender
func (r *ResendSender) Send(ctx context.Context, msg auth.Message) (string, error) {
	sent, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}

var _ auth.Sender = (*ResendSender)(nil)
