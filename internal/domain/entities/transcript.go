package entities

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transcript is an uploaded interview transcript. Immutable once created.
type Transcript struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;index"`
	Filename  string    `json:"filename" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text"`
	SizeKB    float64   `json:"size_kb" gorm:"column:size_kb"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript for a project
func NewTranscript(projectID uuid.UUID, filename, content string) (*Transcript, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, ErrInvalidFilename
	}
	return &Transcript{
		ID:        uuid.New(),
		ProjectID: projectID,
		Filename:  filename,
		Content:   content,
		SizeKB:    SizeKB(content),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SizeKB is the content length in kilobytes rounded to one decimal
func SizeKB(content string) float64 {
	return math.Round(float64(len(content))/1024*10) / 10
}
