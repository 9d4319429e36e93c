package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/domain/repositories"
)

const transcriptCountSelect = "projects.*, (SELECT COUNT(*) FROM transcripts WHERE transcripts.project_id = projects.id) AS transcript_count"

// projectRepository implements the ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &projectRepository{db: db}
}

// Create creates a new project
func (r *projectRepository) Create(ctx context.Context, project *entities.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// FindByID retrieves a project by its ID with its transcript count
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var project entities.Project
	err := r.db.WithContext(ctx).
		Model(&entities.Project{}).
		Select(transcriptCountSelect).
		Where("projects.id = ?", id).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List retrieves projects newest first
func (r *projectRepository) List(ctx context.Context, filters repositories.ProjectFilters) ([]*entities.Project, error) {
	var projects []*entities.Project

	query := r.db.WithContext(ctx).Model(&entities.Project{}).Select(transcriptCountSelect)

	// Apply filters
	if filters.UserID != nil {
		query = query.Where("projects.user_id = ?", *filters.UserID)
	}

	query = query.Order("projects.created_at DESC")

	// Apply pagination
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates an existing project
func (r *projectRepository) Update(ctx context.Context, project *entities.Project) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":           project.Name,
			"description":    project.Description,
			"moderator_name": project.ModeratorName,
			"updated_at":     project.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project; dependent rows cascade in the database
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entities.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrProjectNotFound
	}
	return nil
}

// UpdateContext overwrites the project context
func (r *projectRepository) UpdateContext(ctx context.Context, id uuid.UUID, text string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"context":    text,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entities.ErrProjectNotFound
	}
	return nil
}

// MarkAnalyzed records when the project was last analyzed
func (r *projectRepository) MarkAnalyzed(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Project{}).
		Where("id = ?", id).
		Update("last_analyzed", at).Error
}
