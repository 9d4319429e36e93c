package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
)

// ProjectFilters narrows project listing
type ProjectFilters struct {
	UserID *uuid.UUID
	Limit  int
	Offset int
}

// ProjectRepository defines persistence operations for projects
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	List(ctx context.Context, filters ProjectFilters) ([]*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateContext(ctx context.Context, id uuid.UUID, context string) error
	MarkAnalyzed(ctx context.Context, id uuid.UUID, at time.Time) error
}

// TranscriptRepository defines persistence operations for transcripts
type TranscriptRepository interface {
	Create(ctx context.Context, transcript *entities.Transcript) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	// ListByProject returns transcripts oldest first
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Transcript, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
