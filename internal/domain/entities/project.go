package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContextSeparator joins appended project context
const ContextSeparator = "\n\n---\n\n"

// Project groups transcripts, their analyses and chat history
type Project struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID        *uuid.UUID `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Name          string     `json:"name" gorm:"type:varchar(255);not null"`
	Description   string     `json:"description" gorm:"type:text"`
	Context       string     `json:"context" gorm:"type:text"`
	ModeratorName string     `json:"moderator_name,omitempty" gorm:"type:varchar(255)"`
	LastAnalyzed  *time.Time `json:"last_analyzed,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Populated by list queries only
	TranscriptCount int64 `json:"transcript_count" gorm:"->"`
}

// TableName specifies the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new project
func NewProject(userID *uuid.UUID, name, description, moderatorName string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	now := time.Now().UTC()
	return &Project{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Description:   strings.TrimSpace(description),
		ModeratorName: strings.TrimSpace(moderatorName),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// AppendContext adds text to the existing context
func (p *Project) AppendContext(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if strings.TrimSpace(p.Context) == "" {
		p.Context = text
		return
	}
	p.Context = p.Context + ContextSeparator + text
}
