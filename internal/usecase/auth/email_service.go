package auth

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
	"github.com/johnquangdev/transcript-iq/pkg/config"
)

// EmailType selects the auth email template
type EmailType string

const (
	EmailTypeSignup    EmailType = "signup"
	EmailTypeRecovery  EmailType = "recovery"
	EmailTypeMagicLink EmailType = "magic_link"
)

// Message is one outgoing email
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers email and returns the provider's message ID
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// AuthEmailRequest is the payload the auth hook posts
type AuthEmailRequest struct {
	Email      string
	Type       EmailType
	Token      string
	RedirectTo string
}

// EmailService renders and sends transactional auth emails
type EmailService struct {
	sender  Sender
	from    string
	siteURL string
	logger  *zap.Logger
}

// NewEmailService creates a new auth email service
func NewEmailService(sender Sender, cfg *config.EmailConfig, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{
		sender:  sender,
		from:    cfg.From,
		siteURL: cfg.SiteURL,
		logger:  logger,
	}
}

// Send renders the template for req.Type and delivers it
func (s *EmailService) Send(ctx context.Context, req AuthEmailRequest) (string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", usecaseErrors.ErrValidation)
	}

	subject, html, err := s.Render(req)
	if err != nil {
		return "", err
	}

	s.logger.Info("📧 Sending auth email",
		zap.String("type", string(req.Type)),
		zap.String("email", email),
	)

	id, err := s.sender.Send(ctx, Message{
		From:    s.from,
		To:      []string{email},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		s.logger.Error("❌ Failed to send auth email", zap.String("type", string(req.Type)), zap.Error(err))
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("✅ Auth email sent", zap.String("message_id", id))
	return id, nil
}

// Render builds the subject and HTML body without sending
func (s *EmailService) Render(req AuthEmailRequest) (string, string, error) {
	content, ok := emailContents[req.Type]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", usecaseErrors.ErrInvalidEmailType, req.Type)
	}

	base := strings.TrimSpace(req.RedirectTo)
	if base == "" {
		base = s.siteURL
	}
	content.Link = BuildLink(base, content.LinkPath, req.Token, content.LinkType)

	var buf bytes.Buffer
	if err := emailLayout.Execute(&buf, content); err != nil {
		return "", "", fmt.Errorf("failed to render email: %w", err)
	}
	return content.Subject, buf.String(), nil
}

// BuildLink returns "<base><path>?token=<token>[&type=<linkType>]"
func BuildLink(base, path, token, linkType string) string {
	link := strings.TrimRight(base, "/") + path + "?token=" + url.QueryEscape(token)
	if linkType != "" {
		link += "&type=" + url.QueryEscape(linkType)
	}
	return link
}
