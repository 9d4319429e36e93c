package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
)

// AnalysisRepository persists analysis runs
type AnalysisRepository interface {
	Save(ctx context.Context, result *entities.AnalysisResult) error
	// Latest returns the most recent result, or nil when the project has none
	Latest(ctx context.Context, projectID uuid.UUID) (*entities.AnalysisResult, error)
}

// ChatRepository persists chat exchanges
type ChatRepository interface {
	Save(ctx context.Context, exchange *entities.ChatExchange) error
	// ListByProject returns exchanges oldest first, optionally for one session
	ListByProject(ctx context.Context, projectID uuid.UUID, sessionID string) ([]*entities.ChatExchange, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}
