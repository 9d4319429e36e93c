package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	authUsecase "github.com/johnquangdev/transcript-iq/internal/usecase/auth"
	usecaseErrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
	"github.com/johnquangdev/transcript-iq/pkg/ai"
	pkgvalidator "github.com/johnquangdev/transcript-iq/pkg/validator"
)

type fakeEmails struct {
	id   string
	err  error
	sent []authUsecase.AuthEmailRequest
}

func (f *fakeEmails) Send(_ context.Context, req authUsecase.AuthEmailRequest) (string, error) {
	f.sent = append(f.sent, req)
	return f.id, f.err
}

func sendHook(t *testing.T, h *WebhookHandler, body, signature string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = pkgvalidator.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/functions/send-auth-email", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set(HookSignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	if err := h.SendAuthEmail(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

const hookBody = `{"email":"ana@example.com","type":"signup","token":"tok","redirectTo":"https://app.example.com"}`

func TestSendAuthEmail(t *testing.T) {
	emails := &fakeEmails{id: "msg_123"}
	rec := sendHook(t, NewWebhookHandler(emails, "", nil), hookBody, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	out := decode(t, rec)
	if out["success"] != true || out["messageId"] != "msg_123" {
		t.Fatalf("unexpected body %v", out)
	}
	if len(emails.sent) != 1 || emails.sent[0].Type != authUsecase.EmailTypeSignup || emails.sent[0].Token != "tok" {
		t.Fatalf("unexpected request %+v", emails.sent)
	}
}

func TestSendAuthEmail_Signature(t *testing.T) {
	const secret = "hook-secret"
	tests := []struct {
		name      string
		signature string
		status    int
	}{
		{"valid", ai.SignHMAC(secret, []byte(hookBody)), http.StatusOK},
		{"prefixed", "sha256=" + ai.SignHMAC(secret, []byte(hookBody)), http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong", ai.SignHMAC("other", []byte(hookBody)), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails := &fakeEmails{id: "msg"}
			rec := sendHook(t, NewWebhookHandler(emails, secret, nil), hookBody, tt.signature)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status != http.StatusOK && len(emails.sent) != 0 {
				t.Fatalf("email must not be sent on a rejected hook")
			}
		})
	}
}

func TestSendAuthEmail_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"missing email", `{"type":"signup","token":"t"}`, nil},
		{"malformed", `{"email":`, nil},
		{"provider error", hookBody, errors.New("resend: 422")},
		{"unsupported type", `{"email":"a@b.co","type":"invite","token":"t"}`, usecaseErrors.ErrInvalidEmailType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sendHook(t, NewWebhookHandler(&fakeEmails{err: tt.err}, "", nil), tt.body, "")
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			if msg, _ := decode(t, rec)["error"].(string); msg == "" {
				t.Fatalf("error body must carry a message")
			}
		})
	}
}
