package handler

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authdto "github.com/johnquangdev/transcript-iq/internal/adapter/dto/auth"
	authUsecase "github.com/johnquangdev/transcript-iq/internal/usecase/auth"
	"github.com/johnquangdev/transcript-iq/pkg/ai"
)

// HookSignatureHeader carries the hex HMAC of the hook body
const HookSignatureHeader = "X-Hook-Signature"

var errInvalidSignature = stdErrors.New("invalid hook signature")

// AuthEmailSender renders and delivers auth emails
type AuthEmailSender interface {
	Send(ctx context.Context, req authUsecase.AuthEmailRequest) (string, error)
}

// WebhookHandler handles the auth email hook
type WebhookHandler struct {
	emails AuthEmailSender
	secret string
	logger *zap.Logger
}

// NewWebhookHandler creates a new webhook handler. An empty secret skips
// signature verification.
func NewWebhookHandler(emails AuthEmailSender, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		emails: emails,
		secret: secret,
		logger: logger,
	}
}

// SendAuthEmail handles POST /functions/send-auth-email
// @Summary      Send an auth email
// @Description  Renders the signup, recovery or magic link template and sends it through Resend
// @Tags         Functions
// @Accept       json
// @Produce      json
// @Param        X-Hook-Signature  header    string                       false  "sha256 HMAC of the body"
// @Param        request           body      auth.SendAuthEmailRequest   true   "Email request"
// @Success      200               {object}  auth.SendAuthEmailResponse
// @Failure      401               {object}  common.ErrorResponse  "Invalid signature"
// @Failure      500               {object}  common.ErrorResponse
// @Router       /functions/send-auth-email [post]
func (h *WebhookHandler) SendAuthEmail(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleFunctionError(h.logger, c, http.StatusInternalServerError, fmt.Errorf("failed to read body: %w", err))
	}

	if h.secret != "" && !ai.VerifyHMAC(h.secret, body, c.Request().Header.Get(HookSignatureHeader)) {
		if h.logger != nil {
			h.logger.Warn("🔐 Rejected auth email hook with invalid signature")
		}
		return HandleFunctionError(h.logger, c, http.StatusUnauthorized, errInvalidSignature)
	}

	var req authdto.SendAuthEmailRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleFunctionError(h.logger, c, http.StatusInternalServerError, fmt.Errorf("invalid request body: %w", err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleFunctionError(h.logger, c, http.StatusInternalServerError, err)
	}

	messageID, err := h.emails.Send(c.Request().Context(), authUsecase.AuthEmailRequest{
		Email:      req.Email,
		Type:       authUsecase.EmailType(req.Type),
		Token:      req.Token,
		RedirectTo: req.RedirectTo,
	})
	if err != nil {
		return HandleFunctionError(h.logger, c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, authdto.SendAuthEmailResponse{
		Success:   true,
		MessageID: messageID,
	})
}
