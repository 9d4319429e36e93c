package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/http/middleware"
	pkgjwt "github.com/johnquangdev/transcript-iq/pkg/jwt"
)

func createProject(t *testing.T, s *testServer, body string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/v1/projects", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}
	data := decode(t, rec)["data"].(map[string]interface{})
	return data["id"].(string)
}

func TestProjectCRUD(t *testing.T) {
	s := newTestServer(t, nil, nil)
	id := createProject(t, s, `{"name":"Onboarding study","description":"Q3","moderatorName":"Alex Rivera"}`)

	rec := s.do(t, http.MethodGet, "/v1/projects/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	data := decode(t, rec)["data"].(map[string]interface{})
	if data["name"] != "Onboarding study" || data["moderatorName"] != "Alex Rivera" {
		t.Fatalf("unexpected project %v", data)
	}

	rec = s.do(t, http.MethodPut, "/v1/projects/"+id, `{"name":"Renamed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d body=%s", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["data"].(map[string]interface{})["name"] != "Renamed" {
		t.Fatalf("name not updated")
	}

	rec = s.do(t, http.MethodGet, "/v1/projects", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	list := decode(t, rec)["data"].(map[string]interface{})
	if projects := list["projects"].([]interface{}); len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}

	rec = s.do(t, http.MethodDelete, "/v1/projects/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/v1/projects/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
	if msg, _ := decode(t, rec)["error"].(string); msg == "" {
		t.Fatalf("envelope errors carry an error string")
	}
}

func TestProjectValidation(t *testing.T) {
	s := newTestServer(t, nil, nil)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"blank name", http.MethodPost, "/v1/projects", `{"name":""}`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/v1/projects/not-a-uuid", "", http.StatusBadRequest},
		{"unknown project", http.MethodGet, "/v1/projects/" + uuid.NewString(), "", http.StatusNotFound},
		{"bad page size", http.MethodGet, "/v1/projects?page_size=1000", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			out := decode(t, rec)
			if _, ok := out["error"]; !ok {
				t.Fatalf("missing error field in %v", out)
			}
		})
	}
}

func TestTranscriptEndpoints(t *testing.T) {
	s := newTestServer(t, nil, nil)
	id := createProject(t, s, `{"name":"Study"}`)

	rec := s.do(t, http.MethodPost, "/v1/projects/"+id+"/transcripts", `{"filename":"one.txt","content":"Interviewer: hi"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d body=%s", rec.Code, rec.Body.String())
	}
	first := decode(t, rec)["data"].(map[string]interface{})
	if first["filename"] != "one.txt" {
		t.Fatalf("unexpected transcript %v", first)
	}

	// multipart upload
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, _ := w.CreateFormFile("file", "two.txt")
	fw.Write([]byte("Dr. Smith: hello"))
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/v1/projects/"+id+"/transcripts", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/v1/projects/"+id+"/transcripts", "")
	items := decode(t, rec)["data"].([]interface{})
	if len(items) != 2 || items[0].(map[string]interface{})["filename"] != "two.txt" {
		t.Fatalf("expected newest first, got %v", items)
	}

	rec = s.do(t, http.MethodDelete, "/v1/projects/"+id+"/transcripts/"+first["id"].(string), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = s.do(t, http.MethodDelete, "/v1/projects/"+id+"/transcripts/"+uuid.NewString(), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown transcript, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/v1/projects/"+id+"/transcripts/audio", `{"audioUrl":"https://cdn.example.com/a.mp3"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a transcriber, got %d", rec.Code)
	}
}

func TestContextEndpoints(t *testing.T) {
	s := newTestServer(t, nil, nil)
	id := createProject(t, s, `{"name":"Study"}`)
	path := "/v1/projects/" + id + "/context"

	steps := []struct {
		method string
		body   string
		want   string
	}{
		{http.MethodPost, `{"context":"Goal: reduce churn"}`, "Goal: reduce churn"},
		{http.MethodPost, `{"context":"Segment: SMB"}`, "Goal: reduce churn" + entities.ContextSeparator + "Segment: SMB"},
		{http.MethodGet, "", "Goal: reduce churn" + entities.ContextSeparator + "Segment: SMB"},
		{http.MethodPut, `{"context":"  Fresh  "}`, "Fresh"},
		{http.MethodDelete, "", ""},
		{http.MethodGet, "", ""},
	}
	for i, step := range steps {
		rec := s.do(t, step.method, path, step.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("step %d: status = %d body=%s", i, rec.Code, rec.Body.String())
		}
		got := decode(t, rec)["data"].(map[string]interface{})["context"]
		if got != step.want {
			t.Fatalf("step %d: context = %q, want %q", i, got, step.want)
		}
	}

	if rec := s.do(t, http.MethodPost, path, `{"context":"   "}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("blank append should be rejected, got %d", rec.Code)
	}
}

func TestAnalysisEndpoints(t *testing.T) {
	s := newTestServer(t, nil, nil)
	id := createProject(t, s, `{"name":"Study"}`)

	rec := s.do(t, http.MethodGet, "/v1/projects/"+id+"/analysis", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("latest status = %d", rec.Code)
	}
	if out := decode(t, rec); out["data"] != nil {
		t.Fatalf("expected null data, got %v", out["data"])
	}

	projectID := uuid.MustParse(id)
	s.ai.result = entities.NewAnalysisResult(&projectID, entities.Analysis{KeyThemes: []entities.Theme{}, Disagreements: []entities.Disagreement{}}, 2)
	rec = s.do(t, http.MethodPost, "/v1/projects/"+id+"/analysis", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("run status = %d body=%s", rec.Code, rec.Body.String())
	}
	if len(s.ai.runAnalysis) != 1 || s.ai.runAnalysis[0] != projectID {
		t.Fatalf("analysis not run for project")
	}
	_ = memAnalyses{s.db}.Save(context.Background(), s.ai.result)

	rec = s.do(t, http.MethodGet, "/v1/projects/"+id+"/analysis", "")
	data, _ := decode(t, rec)["data"].(map[string]interface{})
	if data == nil || data["transcriptCount"] != float64(2) {
		t.Fatalf("expected latest analysis, got %v", data)
	}

	rec = s.do(t, http.MethodPost, "/v1/projects/"+uuid.NewString()+"/analysis", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unknown project analysis status = %d, want 500", rec.Code)
	}
	if _, ok := decode(t, rec)["error"]; !ok {
		t.Fatalf("missing error field")
	}
}

func TestConversationEndpoints(t *testing.T) {
	s := newTestServer(t, nil, nil)
	id := createProject(t, s, `{"name":"Study"}`)
	projectID := uuid.MustParse(id)

	chats := memChats{s.db}
	_ = chats.Save(context.Background(), entities.NewChatExchange(projectID, "q1", "a1", nil, "s1"))
	_ = chats.Save(context.Background(), entities.NewChatExchange(projectID, "q2", "a2", nil, "s2"))

	rec := s.do(t, http.MethodGet, "/v1/projects/"+id+"/conversations?sessionId=s2", "")
	convs := decode(t, rec)["data"].(map[string]interface{})["conversations"].([]interface{})
	if len(convs) != 1 || convs[0].(map[string]interface{})["userMessage"] != "q2" {
		t.Fatalf("unexpected conversations %v", convs)
	}

	rec = s.do(t, http.MethodDelete, "/v1/projects/"+id+"/conversations", "")
	if got := decode(t, rec)["data"].(map[string]interface{})["deleted"]; got != float64(2) {
		t.Fatalf("deleted = %v, want 2", got)
	}

	rec = s.do(t, http.MethodGet, "/v1/projects/"+id+"/conversations", "")
	convs = decode(t, rec)["data"].(map[string]interface{})["conversations"].([]interface{})
	if len(convs) != 0 {
		t.Fatalf("expected empty history, got %v", convs)
	}
}

func TestProjectOwnership(t *testing.T) {
	verifier := pkgjwt.NewVerifier("secret", "")
	s := newTestServer(t, middleware.EchoAuth(verifier, true), nil)

	owner, other := uuid.New(), uuid.New()
	ownerToken, _ := verifier.Issue(owner, "owner@example.com", "authenticated", time.Hour)
	otherToken, _ := verifier.Issue(other, "other@example.com", "authenticated", time.Hour)

	call := func(method, path, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		s.e.ServeHTTP(rec, req)
		return rec
	}

	if rec := call(http.MethodGet, "/v1/projects", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous request status = %d, want 401", rec.Code)
	}

	rec := call(http.MethodPost, "/v1/projects", `{"name":"Mine"}`, ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	id := decode(t, rec)["data"].(map[string]interface{})["id"].(string)

	if rec := call(http.MethodGet, "/v1/projects/"+id, "", otherToken); rec.Code != http.StatusForbidden {
		t.Fatalf("other user status = %d, want 403", rec.Code)
	}

	rec = call(http.MethodGet, "/v1/projects", "", otherToken)
	if projects := decode(t, rec)["data"].(map[string]interface{})["projects"].([]interface{}); len(projects) != 0 {
		t.Fatalf("other user must not list foreign projects, got %d", len(projects))
	}

	// function endpoints stay outside the auth group
	if rec := call(http.MethodPost, "/v1/functions/cleanup-quote", `{"text":"x"}`, ""); rec.Code == http.StatusUnauthorized {
		t.Fatalf("function endpoints must not require a token")
	}
}
