package project

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
)

const defaultAudioFilename = "audio-transcript.txt"

// ProjectService handles project, transcript, context and history logic
type ProjectService struct {
	projectRepo    repositories.ProjectRepository
	transcriptRepo repositories.TranscriptRepository
	analysisRepo   repositories.AnalysisRepository
	chatRepo       repositories.ChatRepository
	cache          Cache
	cacheTTL       time.Duration
	archiver       Archiver
	transcriber    Transcriber
	logger         *zap.Logger
}

// Dependencies groups the optional collaborators of ProjectService.
// Any of them may be nil.
type Dependencies struct {
	Cache       Cache
	CacheTTL    time.Duration
	Archiver    Archiver
	Transcriber Transcriber
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	transcriptRepo repositories.TranscriptRepository,
	analysisRepo repositories.AnalysisRepository,
	chatRepo repositories.ChatRepository,
	deps Dependencies,
	logger *zap.Logger,
) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		projectRepo:    projectRepo,
		transcriptRepo: transcriptRepo,
		analysisRepo:   analysisRepo,
		chatRepo:       chatRepo,
		cache:          deps.Cache,
		cacheTTL:       deps.CacheTTL,
		archiver:       deps.Archiver,
		transcriber:    deps.Transcriber,
		logger:         logger,
	}
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*entities.Project, error) {
	project, err := entities.NewProject(input.UserID, input.Name, input.Description, input.ModeratorName)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("📁 Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("name", project.Name),
	)
	return project, nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (*entities.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	// Projects without an owner are shared
	if callerID != nil && project.UserID != nil && *project.UserID != *callerID {
		return nil, entities.ErrForbidden
	}
	return project, nil
}

// ListProjects retrieves projects with filters
func (s *ProjectService) ListProjects(ctx context.Context, filters repositories.ProjectFilters) ([]*entities.Project, error) {
	projects, err := s.projectRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProject applies the non-nil fields of input
func (s *ProjectService) UpdateProject(ctx context.Context, input UpdateProjectInput) (*entities.Project, error) {
	project, err := s.GetProject(ctx, input.ProjectID, input.CallerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, entities.ErrInvalidName
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	if input.ModeratorName != nil {
		project.ModeratorName = strings.TrimSpace(*input.ModeratorName)
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// DeleteProject deletes a project; transcripts, analyses and chat rows cascade
func (s *ProjectService) DeleteProject(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) error {
	if _, err := s.GetProject(ctx, projectID, callerID); err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.invalidateAnalysis(ctx, projectID)

	s.logger.Info("🗑️ Project deleted", zap.String("project_id", projectID.String()))
	return nil
}

// GetContext returns the stored context
func (s *ProjectService) GetContext(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (string, error) {
	project, err := s.GetProject(ctx, projectID, callerID)
	if err != nil {
		return "", err
	}
	return project.Context, nil
}

// AppendContext joins text onto the existing context with a separator
func (s *ProjectService) AppendContext(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID, text string) (string, error) {
	project, err := s.GetProject(ctx, projectID, callerID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", entities.ErrInvalidRequest
	}

	project.AppendContext(text)
	if err := s.projectRepo.UpdateContext(ctx, projectID, project.Context); err != nil {
		return "", fmt.Errorf("failed to update context: %w", err)
	}
	return project.Context, nil
}

// ReplaceContext overwrites the context
func (s *ProjectService) ReplaceContext(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID, text string) (string, error) {
	if _, err := s.GetProject(ctx, projectID, callerID); err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if err := s.projectRepo.UpdateContext(ctx, projectID, text); err != nil {
		return "", fmt.Errorf("failed to update context: %w", err)
	}
	return text, nil
}

// ClearContext empties the context
func (s *ProjectService) ClearContext(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) error {
	_, err := s.ReplaceContext(ctx, projectID, callerID, "")
	return err
}

// AddTranscript stores a transcript and archives its text
func (s *ProjectService) AddTranscript(ctx context.Context, input AddTranscriptInput) (*entities.Transcript, error) {
	if _, err := s.GetProject(ctx, input.ProjectID, input.CallerID); err != nil {
		return nil, err
	}

	transcript, err := entities.NewTranscript(input.ProjectID, input.Filename, input.Content)
	if err != nil {
		return nil, err
	}
	if err := s.transcriptRepo.Create(ctx, transcript); err != nil {
		return nil, fmt.Errorf("failed to create transcript: %w", err)
	}

	if s.archiver != nil {
		object := fmt.Sprintf("transcripts/%s/%s/%s", transcript.ProjectID, transcript.ID, path.Base(transcript.Filename))
		if err := s.archiver.ArchiveText(ctx, object, transcript.Content); err != nil {
			s.logger.Warn("⚠️ Failed to archive transcript", zap.String("object", object), zap.Error(err))
		}
	}

	s.logger.Info("📄 Transcript added",
		zap.String("project_id", transcript.ProjectID.String()),
		zap.String("transcript_id", transcript.ID.String()),
		zap.Float64("size_kb", transcript.SizeKB),
	)
	return transcript, nil
}

// ImportAudio transcribes audio with speaker labels, then stores the text
func (s *ProjectService) ImportAudio(ctx context.Context, input ImportAudioInput) (*entities.Transcript, error) {
	audioURL := strings.TrimSpace(input.AudioURL)
	if audioURL == "" {
		return nil, usecaseErrors.ErrMissingAudioURL
	}
	if s.transcriber == nil {
		return nil, usecaseErrors.ErrTranscriptionUnavailable
	}
	if _, err := s.GetProject(ctx, input.ProjectID, input.CallerID); err != nil {
		return nil, err
	}

	s.logger.Info("🎙️ Transcribing audio", zap.String("project_id", input.ProjectID.String()))
	text, err := s.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		s.logger.Error("❌ Audio transcription failed", zap.String("project_id", input.ProjectID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrUpstream, err)
	}

	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		filename = audioFilename(audioURL)
	}
	return s.AddTranscript(ctx, AddTranscriptInput{
		ProjectID: input.ProjectID,
		CallerID:  input.CallerID,
		Filename:  filename,
		Content:   text,
	})
}

// audioFilename derives "<name>.txt" from the last URL path segment
func audioFilename(audioURL string) string {
	u, err := url.Parse(audioURL)
	if err != nil {
		return defaultAudioFilename
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return defaultAudioFilename
	}
	return strings.TrimSuffix(base, path.Ext(base)) + ".txt"
}

// ListTranscripts returns transcripts newest first
func (s *ProjectService) ListTranscripts(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) ([]*entities.Transcript, error) {
	if _, err := s.GetProject(ctx, projectID, callerID); err != nil {
		return nil, err
	}

	transcripts, err := s.transcriptRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}

	out := make([]*entities.Transcript, 0, len(transcripts))
	for i := len(transcripts) - 1; i >= 0; i-- {
		out = append(out, transcripts[i])
	}
	return out, nil
}

// DeleteTranscript removes a transcript that belongs to the project
func (s *ProjectService) DeleteTranscript(ctx context.Context, projectID, transcriptID uuid.UUID, callerID *uuid.UUID) error {
	if _, err := s.GetProject(ctx, projectID, callerID); err != nil {
		return err
	}

	transcript, err := s.transcriptRepo.FindByID(ctx, transcriptID)
	if err != nil {
		return fmt.Errorf("failed to get transcript: %w", err)
	}
	if transcript.ProjectID != projectID {
		return entities.ErrTranscriptNotFound
	}

	if err := s.transcriptRepo.Delete(ctx, transcriptID); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}

// LatestAnalysis reads through the cache. A nil result means no analysis has run yet.
// The fill never overwrites an entry written by a newer analysis run in the meantime.
func (s *ProjectService) LatestAnalysis(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (*entities.AnalysisResult, error) {
	if _, err := s.GetProject(ctx, projectID, callerID); err != nil {
		return nil, err
	}

	key := entities.LatestAnalysisKey(projectID)
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("⚠️ Cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			var result entities.AnalysisResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
		}
	}

	result, err := s.analysisRepo.Latest(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}
	if result == nil {
		return nil, nil
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if b, err := json.Marshal(result); err == nil {
			if _, err := s.cache.SetNX(ctx, key, string(b), s.cacheTTL); err != nil {
				s.logger.Warn("⚠️ Cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return result, nil
}

// ListConversations returns chat history oldest first
func (s *ProjectService) ListConversations(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID, sessionID string) ([]*entities.ChatExchange, error) {
	if _, err := s.GetProject(ctx, projectID, callerID); err != nil {
		return nil, err
	}

	exchanges, err := s.chatRepo.ListByProject(ctx, projectID, strings.TrimSpace(sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return exchanges, nil
}

// ClearConversations deletes all chat history and reports how many rows went
func (s *ProjectService) ClearConversations(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (int64, error) {
	if _, err := s.GetProject(ctx, projectID, callerID); err != nil {
		return 0, err
	}

	deleted, err := s.chatRepo.DeleteByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete conversations: %w", err)
	}
	return deleted, nil
}

func (s *ProjectService) invalidateAnalysis(ctx context.Context, projectID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, entities.LatestAnalysisKey(projectID)); err != nil {
		s.logger.Warn("⚠️ Cache delete failed", zap.String("project_id", projectID.String()), zap.Error(err))
	}
}
