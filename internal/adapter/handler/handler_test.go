package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/domain/repositories"
	aiUsecase "github.com/johnquangdev/transcript-iq/internal/usecase/ai"
	usecaseErrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
	projectUsecase "github.com/johnquangdev/transcript-iq/internal/usecase/project"
	pkgvalidator "github.com/johnquangdev/transcript-iq/pkg/validator"
)

// memDB backs every repository fake
type memDB struct {
	mu          sync.Mutex
	projects    map[uuid.UUID]*entities.Project
	transcripts []*entities.Transcript
	analyses    []*entities.AnalysisResult
	chats       []*entities.ChatExchange
}

func newMemDB() *memDB {
	return &memDB{projects: map[uuid.UUID]*entities.Project{}}
}

type memProjects struct{ *memDB }

func (m memProjects) Create(_ context.Context, p *entities.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p
	return nil
}

func (m memProjects) FindByID(_ context.Context, id uuid.UUID) (*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (m memProjects) List(_ context.Context, f repositories.ProjectFilters) ([]*entities.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entities.Project
	for _, p := range m.projects {
		if f.UserID != nil && (p.UserID == nil || *p.UserID != *f.UserID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memProjects) Update(_ context.Context, p *entities.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p
	return nil
}

func (m memProjects) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return entities.ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m memProjects) UpdateContext(_ context.Context, id uuid.UUID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return entities.ErrProjectNotFound
	}
	p.Context = text
	return nil
}

func (m memProjects) MarkAnalyzed(_ context.Context, id uuid.UUID, at time.Time) error {
	return nil
}

type memTranscripts struct{ *memDB }

func (m memTranscripts) Create(_ context.Context, t *entities.Transcript) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcripts = append(m.transcripts, t)
	return nil
}

func (m memTranscripts) FindByID(_ context.Context, id uuid.UUID) (*entities.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.transcripts {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, entities.ErrTranscriptNotFound
}

func (m memTranscripts) ListByProject(_ context.Context, projectID uuid.UUID) ([]*entities.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entities.Transcript
	for _, t := range m.transcripts {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m memTranscripts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.transcripts {
		if t.ID == id {
			m.transcripts = append(m.transcripts[:i], m.transcripts[i+1:]...)
			return nil
		}
	}
	return entities.ErrTranscriptNotFound
}

type memAnalyses struct{ *memDB }

func (m memAnalyses) Save(_ context.Context, r *entities.AnalysisResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses = append(m.analyses, r)
	return nil
}

func (m memAnalyses) Latest(_ context.Context, projectID uuid.UUID) (*entities.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.analyses) - 1; i >= 0; i-- {
		if r := m.analyses[i]; r.ProjectID != nil && *r.ProjectID == projectID {
			return r, nil
		}
	}
	return nil, nil
}

type memChats struct{ *memDB }

func (m memChats) Save(_ context.Context, ex *entities.ChatExchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats = append(m.chats, ex)
	return nil
}

func (m memChats) ListByProject(_ context.Context, projectID uuid.UUID, sessionID string) ([]*entities.ChatExchange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entities.ChatExchange
	for _, ex := range m.chats {
		if ex.ProjectID != projectID {
			continue
		}
		if sessionID != "" && (ex.SessionID == nil || *ex.SessionID != sessionID) {
			continue
		}
		out = append(out, ex)
	}
	return out, nil
}

func (m memChats) DeleteByProject(_ context.Context, projectID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*entities.ChatExchange
	var n int64
	for _, ex := range m.chats {
		if ex.ProjectID == projectID {
			n++
			continue
		}
		kept = append(kept, ex)
	}
	m.chats = kept
	return n, nil
}

// fakeAI stands in for the AI orchestration service
type fakeAI struct {
	result      *entities.AnalysisResult
	exchange    *entities.ChatExchange
	cleaned     string
	err         error
	gotAnalyze  []*entities.Transcript
	gotProject  *uuid.UUID
	gotChat     aiUsecase.ChatInput
	gotCleanup  aiUsecase.QuoteCleanupInput
	runAnalysis []uuid.UUID
}

func (f *fakeAI) RunAnalysis(_ context.Context, projectID uuid.UUID) (*entities.AnalysisResult, error) {
	f.runAnalysis = append(f.runAnalysis, projectID)
	return f.result, f.err
}

func (f *fakeAI) AnalyzeTranscripts(_ context.Context, ts []*entities.Transcript, projectID *uuid.UUID) (*entities.AnalysisResult, error) {
	f.gotAnalyze = ts
	f.gotProject = projectID
	return f.result, f.err
}

func (f *fakeAI) AnswerQuestion(_ context.Context, in aiUsecase.ChatInput) (*entities.ChatExchange, error) {
	f.gotChat = in
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(in.Question) == "" {
		return nil, usecaseErrors.ErrMissingQuestion
	}
	if in.ProjectID == uuid.Nil {
		return nil, usecaseErrors.ErrMissingProject
	}
	return f.exchange, nil
}

func (f *fakeAI) CleanupQuote(_ context.Context, in aiUsecase.QuoteCleanupInput) (string, error) {
	f.gotCleanup = in
	return f.cleaned, f.err
}

type testServer struct {
	e   *echo.Echo
	db  *memDB
	ai  *fakeAI
	svc *projectUsecase.ProjectService
}

func newTestServer(t *testing.T, authMW, functionAuthMW echo.MiddlewareFunc) *testServer {
	t.Helper()
	db := newMemDB()
	ai := &fakeAI{}
	svc := projectUsecase.NewProjectService(memProjects{db}, memTranscripts{db}, memAnalyses{db}, memChats{db}, projectUsecase.Dependencies{}, nil)

	e := echo.New()
	e.Validator = pkgvalidator.New()
	NewRouter(nil,
		NewAIController(ai, svc, nil),
		NewProjectHandler(svc, ai, nil),
		NewWebhookHandler(&fakeEmails{}, "", nil),
		authMW,
		functionAuthMW,
		nil,
	).Setup(e)

	return &testServer{e: e, db: db, ai: ai, svc: svc}
}

// addProject stores a project directly; a nil owner makes it shared
func (s *testServer) addProject(owner *uuid.UUID) uuid.UUID {
	p := &entities.Project{ID: uuid.New(), UserID: owner, Name: "Interviews", CreatedAt: time.Now()}
	s.db.mu.Lock()
	s.db.projects[p.ID] = p
	s.db.mu.Unlock()
	return p.ID
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return out
}
