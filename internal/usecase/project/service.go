package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/domain/repositories"
)

// Service defines the interface for project use case
type Service interface {
	// CreateProject creates a new project owned by the caller (if any)
	CreateProject(ctx context.Context, input CreateProjectInput) (*entities.Project, error)

	// GetProject retrieves a project the caller may access
	GetProject(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (*entities.Project, error)

	// ListProjects retrieves projects newest first with transcript counts
	ListProjects(ctx context.Context, filters repositories.ProjectFilters) ([]*entities.Project, error)

	// UpdateProject changes name, description or moderator
	UpdateProject(ctx context.Context, input UpdateProjectInput) (*entities.Project, error)

	// DeleteProject removes a project with its transcripts, analyses and chat history
	DeleteProject(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) error

	// GetContext returns the project's research context
	GetContext(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (string, error)

	// AppendContext adds text after the existing context
	AppendContext(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID, text string) (string, error)

	// ReplaceContext overwrites the context
	ReplaceContext(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID, text string) (string, error)

	// ClearContext empties the context
	ClearContext(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) error

	// AddTranscript stores an uploaded transcript
	AddTranscript(ctx context.Context, input AddTranscriptInput) (*entities.Transcript, error)

	// ImportAudio transcribes an audio file and stores it as a transcript
	ImportAudio(ctx context.Context, input ImportAudioInput) (*entities.Transcript, error)

	// ListTranscripts retrieves a project's transcripts newest first
	ListTranscripts(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) ([]*entities.Transcript, error)

	// DeleteTranscript removes one transcript from a project
	DeleteTranscript(ctx context.Context, projectID, transcriptID uuid.UUID, callerID *uuid.UUID) error

	// LatestAnalysis returns the most recent analysis, or nil when none exists
	LatestAnalysis(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (*entities.AnalysisResult, error)

	// ListConversations returns chat history oldest first, optionally for one session
	ListConversations(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID, sessionID string) ([]*entities.ChatExchange, error)

	// ClearConversations deletes all chat history of a project
	ClearConversations(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (int64, error)
}

// Ensure ProjectService implements Service interface
var _ Service = (*ProjectService)(nil)

// Cache stores serialized values with expiration
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Archiver keeps a copy of uploaded transcript text
type Archiver interface {
	ArchiveText(ctx context.Context, objectName, content string) error
}

// Transcriber turns a hosted audio file into speaker-labelled text
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	UserID        *uuid.UUID
	Name          string
	Description   string
	ModeratorName string
}

// UpdateProjectInput represents a partial project update. Nil fields are left unchanged.
type UpdateProjectInput struct {
	ProjectID     uuid.UUID
	CallerID      *uuid.UUID
	Name          *string
	Description   *string
	ModeratorName *string
}

// AddTranscriptInput represents an uploaded transcript
type AddTranscriptInput struct {
	ProjectID uuid.UUID
	CallerID  *uuid.UUID
	Filename  string
	Content   string
}

// ImportAudioInput represents an audio file to transcribe
type ImportAudioInput struct {
	ProjectID uuid.UUID
	CallerID  *uuid.UUID
	AudioURL  string
	Filename  string
}
