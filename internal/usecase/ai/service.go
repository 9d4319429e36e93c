package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	domainrepo "github.com/johnquangdev/transcript-iq/internal/domain/repositories"
	ucerrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
	pkgai "github.com/johnquangdev/transcript-iq/pkg/ai"
	"github.com/johnquangdev/transcript-iq/pkg/config"
)

// Generation settings per call type
const (
	analysisTemperature = 0.3
	analysisMaxTokens   = 4096
	chatTemperature     = 0.7
	chatMaxTokens       = 2048
	cleanupTemperature  = 0.3
	cleanupMaxTokens    = 500

	// rawLogLimit bounds model output copied into logs
	rawLogLimit = 500
)

// Event subjects, relative to the publisher's prefix
const (
	SubjectAnalysisCompleted = "analysis.completed"
	SubjectChatAnswered      = "chat.answered"
)

// Service defines AI orchestration methods
type Service interface {
	// RunAnalysis analyzes every transcript of a project and persists the result
	RunAnalysis(ctx context.Context, projectID uuid.UUID) (*entities.AnalysisResult, error)
	// AnalyzeTranscripts analyzes caller-supplied transcripts. When the list is
	// empty and projectID is set the project's transcripts are used. The result
	// is persisted only when projectID is set.
	AnalyzeTranscripts(ctx context.Context, transcripts []*entities.Transcript, projectID *uuid.UUID) (*entities.AnalysisResult, error)
	AnswerQuestion(ctx context.Context, in ChatInput) (*entities.ChatExchange, error)
	CleanupQuote(ctx context.Context, in QuoteCleanupInput) (string, error)
}

// Generators holds one generation capability per call type
type Generators struct {
	Analysis pkgai.Generator
	Chat     pkgai.Generator
	Cleanup  pkgai.Generator
}

// ChatInput is a single question against a project's transcripts
type ChatInput struct {
	ProjectID uuid.UUID
	Question  string
	SessionID string
}

// QuoteCleanupInput is one quote plus optional attribution
type QuoteCleanupInput struct {
	Text        string
	Participant string
	Context     string
}

// Archiver stores raw artifacts for later inspection
type Archiver interface {
	ArchiveText(ctx context.Context, objectName, content string) error
}

// Publisher emits domain events
type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

// LatestCache holds the most recent analysis per project
type LatestCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Option configures optional collaborators
type Option func(*aiService)

// WithArchiver archives raw analysis output
func WithArchiver(a Archiver) Option {
	return func(s *aiService) { s.archiver = a }
}

// WithPublisher publishes analysis and chat events
func WithPublisher(p Publisher) Option {
	return func(s *aiService) { s.publisher = p }
}

// WithCache refreshes the cached latest analysis after each run
func WithCache(c LatestCache) Option {
	return func(s *aiService) { s.cache = c }
}

type aiService struct {
	projectRepo    domainrepo.ProjectRepository
	transcriptRepo domainrepo.TranscriptRepository
	analysisRepo   domainrepo.AnalysisRepository
	chatRepo       domainrepo.ChatRepository
	generators     Generators
	parser         *Parser
	cfg            *config.AnalysisConfig
	defaultAliases []string
	archiver       Archiver
	publisher      Publisher
	cache          LatestCache
	logger         *zap.Logger
}

// NewAIService constructs a new AI service
func NewAIService(
	projectRepo domainrepo.ProjectRepository,
	transcriptRepo domainrepo.TranscriptRepository,
	analysisRepo domainrepo.AnalysisRepository,
	chatRepo domainrepo.ChatRepository,
	generators Generators,
	cfg *config.AnalysisConfig,
	logger *zap.Logger,
	opts ...Option,
) Service {
	s := &aiService{
		projectRepo:    projectRepo,
		transcriptRepo: transcriptRepo,
		analysisRepo:   analysisRepo,
		chatRepo:       chatRepo,
		generators:     generators,
		parser:         NewParser(),
		cfg:            cfg,
		defaultAliases: SpeakerAliases(cfg.ExcludedSpeakerName, cfg.ExtraAliases),
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunAnalysis analyzes all transcripts stored for a project
func (s *aiService) RunAnalysis(ctx context.Context, projectID uuid.UUID) (*entities.AnalysisResult, error) {
	transcripts, err := s.transcriptRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load transcripts: %w", ucerrors.ErrPersistence, err)
	}
	return s.AnalyzeTranscripts(ctx, transcripts, &projectID)
}

// AnalyzeTranscripts runs the reconciliation pipeline once
func (s *aiService) AnalyzeTranscripts(ctx context.Context, transcripts []*entities.Transcript, projectID *uuid.UUID) (*entities.AnalysisResult, error) {
	if len(transcripts) == 0 && projectID != nil {
		stored, err := s.transcriptRepo.ListByProject(ctx, *projectID)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load transcripts: %w", ucerrors.ErrPersistence, err)
		}
		transcripts = stored
	}
	if len(transcripts) == 0 {
		return nil, ucerrors.ErrNoTranscripts
	}

	project := s.loadProject(ctx, projectID)
	aliases := s.aliasesFor(project)
	projectContext := ""
	if project != nil {
		projectContext = project.Context
	}

	if s.logger != nil {
		s.logger.Info("🤖 Generating transcript analysis",
			zap.String("project_id", idString(projectID)),
			zap.Int("transcript_count", len(transcripts)),
			zap.Bool("has_context", strings.TrimSpace(projectContext) != ""),
		)
	}

	prompt := BuildAnalysisPrompt(transcripts, projectContext, aliases)
	raw, err := s.generators.Analysis.Generate(ctx, pkgai.CompletionRequest{
		SystemInstruction: prompt.SystemInstruction,
		UserInstruction:   prompt.UserInstruction,
		Temperature:       analysisTemperature,
		MaxTokens:         analysisMaxTokens,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Analysis generation failed",
				zap.String("project_id", idString(projectID)),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: %w", ucerrors.ErrUpstream, err)
	}

	parsed, err := s.parser.ParseAnalysis(raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to parse analysis response",
				zap.String("project_id", idString(projectID)),
				zap.String("raw_response", truncate(raw, rawLogLimit)),
				zap.Error(err),
			)
		}
		return nil, err
	}

	filtered := FilterExcludedSpeaker(*parsed, aliases)
	if s.logger != nil && (len(filtered.KeyThemes) != len(parsed.KeyThemes) || len(filtered.Disagreements) != len(parsed.Disagreements)) {
		s.logger.Info("🧹 Excluded speaker filter dropped entries",
			zap.String("project_id", idString(projectID)),
			zap.Int("themes_before", len(parsed.KeyThemes)),
			zap.Int("themes_after", len(filtered.KeyThemes)),
			zap.Int("disagreements_before", len(parsed.Disagreements)),
			zap.Int("disagreements_after", len(filtered.Disagreements)),
		)
	}

	result := entities.NewAnalysisResult(projectID, filtered, len(transcripts))
	if projectID == nil {
		return result, nil
	}

	if err := s.analysisRepo.Save(ctx, result); err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Failed to save analysis result",
				zap.String("project_id", projectID.String()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: failed to save analysis: %w", ucerrors.ErrPersistence, err)
	}

	s.afterAnalysis(ctx, *projectID, result, raw)

	if s.logger != nil {
		s.logger.Info("✅ Analysis saved",
			zap.String("project_id", projectID.String()),
			zap.String("analysis_id", result.ID.String()),
			zap.Int("themes", len(result.KeyThemes)),
			zap.Int("disagreements", len(result.Disagreements)),
		)
	}
	return result, nil
}

// afterAnalysis runs best-effort side effects of a persisted analysis
func (s *aiService) afterAnalysis(ctx context.Context, projectID uuid.UUID, result *entities.AnalysisResult, raw string) {
	if err := s.projectRepo.MarkAnalyzed(ctx, projectID, result.CreatedAt); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to update last_analyzed", zap.String("project_id", projectID.String()), zap.Error(err))
	}

	if s.cache != nil {
		s.refreshLatest(ctx, projectID, result)
	}

	if s.archiver != nil {
		object := fmt.Sprintf("analyses/%s/%s.txt", projectID, result.ID)
		if err := s.archiver.ArchiveText(ctx, object, raw); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to archive raw analysis output", zap.String("object", object), zap.Error(err))
		}
	}

	if s.publisher != nil {
		payload := map[string]interface{}{
			"project_id":         projectID.String(),
			"analysis_id":        result.ID.String(),
			"theme_count":        len(result.KeyThemes),
			"disagreement_count": len(result.Disagreements),
			"transcript_count":   result.TranscriptCount,
			"created_at":         result.CreatedAt.Format(time.RFC3339),
		}
		if err := s.publisher.Publish(ctx, SubjectAnalysisCompleted, payload); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to publish analysis event", zap.String("project_id", projectID.String()), zap.Error(err))
		}
	}
}

// refreshLatest writes the new result over any cached one so a concurrent
// read-through fill cannot bring back an older row. Without a TTL the key is dropped.
func (s *aiService) refreshLatest(ctx context.Context, projectID uuid.UUID, result *entities.AnalysisResult) {
	key := entities.LatestAnalysisKey(projectID)
	if s.cfg.CacheTTL > 0 {
		b, err := json.Marshal(result)
		if err == nil {
			err = s.cache.Set(ctx, key, string(b), s.cfg.CacheTTL)
		}
		if err == nil {
			return
		}
		if s.logger != nil {
			s.logger.Warn("⚠️ Failed to cache latest analysis", zap.String("project_id", projectID.String()), zap.Error(err))
		}
	}
	if err := s.cache.Delete(ctx, key); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to invalidate cached analysis", zap.String("project_id", projectID.String()), zap.Error(err))
	}
}

// AnswerQuestion answers one question against the project's transcripts
func (s *aiService) AnswerQuestion(ctx context.Context, in ChatInput) (*entities.ChatExchange, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, ucerrors.ErrMissingQuestion
	}
	if in.ProjectID == uuid.Nil {
		return nil, ucerrors.ErrMissingProject
	}

	transcripts, err := s.transcriptRepo.ListByProject(ctx, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load transcripts: %w", ucerrors.ErrPersistence, err)
	}
	if len(transcripts) == 0 {
		return nil, ucerrors.ErrNoTranscripts
	}

	project := s.loadProject(ctx, &in.ProjectID)
	aliases := s.aliasesFor(project)
	projectContext := ""
	if project != nil {
		projectContext = project.Context
	}

	prompt := BuildChatPrompt(transcripts, projectContext, question, aliases)
	raw, err := s.generators.Chat.Generate(ctx, pkgai.CompletionRequest{
		SystemInstruction: prompt.SystemInstruction,
		UserInstruction:   prompt.UserInstruction,
		Temperature:       chatTemperature,
		MaxTokens:         chatMaxTokens,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Chat generation failed", zap.String("project_id", in.ProjectID.String()), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %w", ucerrors.ErrUpstream, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: no response generated", ucerrors.ErrUpstream)
	}

	reply := s.parser.ParseChatReply(raw)
	quotes := FilterQuotes(reply.Quotes, aliases)

	exchange := entities.NewChatExchange(in.ProjectID, question, reply.Response, quotes, strings.TrimSpace(in.SessionID))
	if err := s.chatRepo.Save(ctx, exchange); err != nil {
		// the answer is still returned
		if s.logger != nil {
			s.logger.Error("❌ Failed to save chat exchange",
				zap.String("project_id", in.ProjectID.String()),
				zap.Error(err),
			)
		}
	}

	if s.publisher != nil {
		payload := map[string]interface{}{
			"project_id":  in.ProjectID.String(),
			"exchange_id": exchange.ID.String(),
			"quote_count": len(quotes),
		}
		if exchange.SessionID != nil {
			payload["session_id"] = *exchange.SessionID
		}
		if err := s.publisher.Publish(ctx, SubjectChatAnswered, payload); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to publish chat event", zap.Error(err))
		}
	}

	return exchange, nil
}

// CleanupQuote removes disfluencies from a single quote
func (s *aiService) CleanupQuote(ctx context.Context, in QuoteCleanupInput) (string, error) {
	if strings.TrimSpace(in.Text) == "" {
		return "", ucerrors.ErrMissingQuoteText
	}

	prompt := BuildCleanupPrompt(in)
	raw, err := s.generators.Cleanup.Generate(ctx, pkgai.CompletionRequest{
		SystemInstruction: prompt.SystemInstruction,
		UserInstruction:   prompt.UserInstruction,
		Temperature:       cleanupTemperature,
		MaxTokens:         cleanupMaxTokens,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Quote cleanup failed", zap.Error(err))
		}
		return "", fmt.Errorf("%w: %w", ucerrors.ErrUpstream, err)
	}
	return StripQuotes(raw), nil
}

// quoteMarks are stripped from the ends of cleaned quotes. The ASCII
// apostrophe is left alone since it legitimately ends words.
const quoteMarks = "\"“”‘’«»"

// StripQuotes trims whitespace and removes at most one leading and one
// trailing quotation mark.
func StripQuotes(s string) string {
	s = strings.TrimSpace(s)
	for _, r := range quoteMarks {
		if strings.HasPrefix(s, string(r)) {
			s = strings.TrimPrefix(s, string(r))
			break
		}
	}
	for _, r := range quoteMarks {
		if strings.HasSuffix(s, string(r)) {
			s = strings.TrimSuffix(s, string(r))
			break
		}
	}
	return strings.TrimSpace(s)
}

// loadProject fetches the project for context and moderator override.
// Failures are logged and treated as "no project".
func (s *aiService) loadProject(ctx context.Context, projectID *uuid.UUID) *entities.Project {
	if projectID == nil || s.projectRepo == nil {
		return nil
	}
	project, err := s.projectRepo.FindByID(ctx, *projectID)
	if err != nil {
		if s.logger != nil && !errors.Is(err, entities.ErrProjectNotFound) {
			s.logger.Warn("⚠️ Failed to load project context, continuing without it",
				zap.String("project_id", projectID.String()),
				zap.Error(err),
			)
		}
		return nil
	}
	return project
}

func (s *aiService) aliasesFor(project *entities.Project) []string {
	if project != nil && strings.TrimSpace(project.ModeratorName) != "" {
		return SpeakerAliases(project.ModeratorName, s.cfg.ExtraAliases)
	}
	return s.defaultAliases
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
