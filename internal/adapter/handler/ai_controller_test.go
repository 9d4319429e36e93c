package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/http/middleware"
	aiUsecase "github.com/johnquangdev/transcript-iq/internal/usecase/ai"
	usecaseErrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
	pkgjwt "github.com/johnquangdev/transcript-iq/pkg/jwt"
)

func TestAnalyzeTranscripts(t *testing.T) {
	s := newTestServer(t, nil, nil)
	projectID := s.addProject(nil)
	s.ai.result = entities.NewAnalysisResult(&projectID, entities.Analysis{
		KeyThemes:     []entities.Theme{{Title: "Pricing"}},
		Disagreements: []entities.Disagreement{},
	}, 1)

	body := fmt.Sprintf(`{"transcripts":[{"filename":"a.txt","content":"hello"}],"projectId":%q}`, projectID)
	rec := s.do(t, http.MethodPost, "/v1/functions/analyze-transcripts", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	out := decode(t, rec)
	themes, ok := out["keyThemes"].([]interface{})
	if !ok || len(themes) != 1 {
		t.Fatalf("expected one theme, got %v", out["keyThemes"])
	}
	if _, ok := out["disagreements"].([]interface{}); !ok {
		t.Fatalf("disagreements must be an array, got %v", out["disagreements"])
	}
	if len(s.ai.gotAnalyze) != 1 || s.ai.gotAnalyze[0].Filename != "a.txt" {
		t.Fatalf("transcripts not forwarded: %+v", s.ai.gotAnalyze)
	}
	if s.ai.gotProject == nil || *s.ai.gotProject != projectID {
		t.Fatalf("project id not forwarded")
	}
}

func TestAnalyzeTranscripts_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"no transcripts", `{"transcripts":[]}`, usecaseErrors.ErrNoTranscripts},
		{"upstream", `{"transcripts":[{"filename":"a","content":"b"}]}`, fmt.Errorf("%w: 503", usecaseErrors.ErrUpstream)},
		{"bad project id", `{"transcripts":[],"projectId":"nope"}`, nil},
		{"malformed body", `{"transcripts":`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, nil)
			s.ai.err = tt.err
			rec := s.do(t, http.MethodPost, "/v1/functions/analyze-transcripts", tt.body)
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			if msg, _ := decode(t, rec)["error"].(string); msg == "" {
				t.Fatalf("error body must carry a message")
			}
		})
	}
}

func TestChatWithTranscripts(t *testing.T) {
	s := newTestServer(t, nil, nil)
	projectID := s.addProject(nil)
	s.ai.exchange = entities.NewChatExchange(projectID, "why?", "Because.", []entities.Quote{{Text: "q", Participant: "Dr. Smith"}}, "s1")

	body := fmt.Sprintf(`{"question":"why?","projectId":%q,"sessionId":"s1"}`, projectID)
	rec := s.do(t, http.MethodPost, "/v1/functions/chat-with-transcripts", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	out := decode(t, rec)
	if out["response"] != "Because." {
		t.Fatalf("response = %v", out["response"])
	}
	if quotes, _ := out["quotes"].([]interface{}); len(quotes) != 1 {
		t.Fatalf("quotes = %v", out["quotes"])
	}
	if s.ai.gotChat.SessionID != "s1" || s.ai.gotChat.ProjectID != projectID {
		t.Fatalf("chat input not forwarded: %+v", s.ai.gotChat)
	}
}

func TestChatWithTranscripts_Status(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"missing question", `{"projectId":"PROJECT"}`, nil, http.StatusBadRequest},
		{"missing project", `{"question":"why?"}`, nil, http.StatusBadRequest},
		{"invalid project", `{"question":"why?","projectId":"x"}`, nil, http.StatusBadRequest},
		{"upstream failure", `{"question":"why?","projectId":"PROJECT"}`, errors.New("boom"), http.StatusInternalServerError},
		{"no transcripts", `{"question":"why?","projectId":"PROJECT"}`, usecaseErrors.ErrNoTranscripts, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, nil)
			s.ai.err = tt.err
			body := strings.ReplaceAll(tt.body, "PROJECT", s.addProject(nil).String())
			rec := s.do(t, http.MethodPost, "/v1/functions/chat-with-transcripts", body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if _, ok := decode(t, rec)["error"]; !ok {
				t.Fatalf("missing error field")
			}
		})
	}
}

func TestCleanupQuote(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantText    string
		wantSpeaker string
	}{
		{"text field", `{"text":"um so yeah"}`, "um so yeah", ""},
		{"quote field", `{"quote":"uh it works","participant":"Dr. Smith","context":"pricing"}`, "uh it works", "Dr. Smith"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, nil, nil)
			s.ai.cleaned = "It works."
			rec := s.do(t, http.MethodPost, "/v1/functions/cleanup-quote", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			out := decode(t, rec)
			if out["cleanedText"] != "It works." || out["cleanedQuote"] != "It works." {
				t.Fatalf("unexpected body %v", out)
			}
			if s.ai.gotCleanup.Text != tt.wantText || s.ai.gotCleanup.Participant != tt.wantSpeaker {
				t.Fatalf("cleanup input = %+v", s.ai.gotCleanup)
			}
		})
	}
}

func TestCleanupQuote_Failure(t *testing.T) {
	s := newTestServer(t, nil, nil)
	s.ai.err = usecaseErrors.ErrMissingQuoteText
	rec := s.do(t, http.MethodPost, "/v1/functions/cleanup-quote", `{}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestFunctionEndpoints_ProjectAccess(t *testing.T) {
	verifier := pkgjwt.NewVerifier("secret", "")
	s := newTestServer(t, nil, middleware.EchoAuth(verifier, false))
	s.ai.result = entities.NewAnalysisResult(nil, entities.Analysis{}, 0)
	s.ai.exchange = entities.NewChatExchange(uuid.New(), "q", "a", nil, "")

	owner, other := uuid.New(), uuid.New()
	ownerToken, _ := verifier.Issue(owner, "owner@example.com", "authenticated", time.Hour)
	otherToken, _ := verifier.Issue(other, "other@example.com", "authenticated", time.Hour)
	owned := s.addProject(&owner)

	call := func(path, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	analyze := fmt.Sprintf(`{"transcripts":[{"filename":"a.txt","content":"x"}],"projectId":%q}`, owned)
	chat := fmt.Sprintf(`{"question":"why?","projectId":%q}`, owned)
	missing := fmt.Sprintf(`{"question":"why?","projectId":%q}`, uuid.New())

	tests := []struct {
		name   string
		path   string
		body   string
		token  string
		status int
	}{
		{"analyze as owner", "/v1/functions/analyze-transcripts", analyze, ownerToken, http.StatusOK},
		{"analyze as other user", "/v1/functions/analyze-transcripts", analyze, otherToken, http.StatusForbidden},
		{"analyze anonymously", "/v1/functions/analyze-transcripts", analyze, "", http.StatusUnauthorized},
		{"chat as owner", "/v1/functions/chat-with-transcripts", chat, ownerToken, http.StatusOK},
		{"chat as other user", "/v1/functions/chat-with-transcripts", chat, otherToken, http.StatusForbidden},
		{"chat anonymously", "/v1/functions/chat-with-transcripts", chat, "", http.StatusUnauthorized},
		{"chat unknown project", "/v1/functions/chat-with-transcripts", missing, ownerToken, http.StatusNotFound},
		{"cleanup anonymously", "/v1/functions/cleanup-quote", `{"text":"um ok"}`, "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.ai.gotProject = nil
			s.ai.gotChat = aiUsecase.ChatInput{}
			rec := call(tt.path, tt.body, tt.token)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				if _, ok := decode(t, rec)["error"]; !ok {
					t.Fatalf("missing error field")
				}
				if s.ai.gotProject != nil || s.ai.gotChat.ProjectID != uuid.Nil {
					t.Fatalf("service must not run for a rejected caller")
				}
			}
		})
	}
}
