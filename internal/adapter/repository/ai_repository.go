package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	repo "github.com/johnquangdev/transcript-iq/internal/domain/repositories"
)

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository backed by GORM
func NewAnalysisRepository(db *gorm.DB) repo.AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Save(ctx context.Context, result *entities.AnalysisResult) error {
	if result == nil {
		return errors.New("analysis result cannot be nil")
	}
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *analysisRepository) Latest(ctx context.Context, projectID uuid.UUID) (*entities.AnalysisResult, error) {
	var results []*entities.AnalysisResult
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(1).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat history repository backed by GORM
func NewChatRepository(db *gorm.DB) repo.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Save(ctx context.Context, exchange *entities.ChatExchange) error {
	if exchange == nil {
		return errors.New("chat exchange cannot be nil")
	}
	return r.db.WithContext(ctx).Create(exchange).Error
}

func (r *chatRepository) ListByProject(ctx context.Context, projectID uuid.UUID, sessionID string) ([]*entities.ChatExchange, error) {
	var exchanges []*entities.ChatExchange
	query := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if s := strings.TrimSpace(sessionID); s != "" {
		query = query.Where("session_id = ?", s)
	}
	if err := query.Order("created_at ASC").Find(&exchanges).Error; err != nil {
		return nil, err
	}
	return exchanges, nil
}

func (r *chatRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&entities.ChatExchange{})
	return result.RowsAffected, result.Error
}
