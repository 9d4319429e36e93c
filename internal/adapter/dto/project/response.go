package project

import (
	"time"

	"github.com/johnquangdev/transcript-iq/internal/adapter/dto/common"
	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
)

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Context         string     `json:"context"`
	ModeratorName   string     `json:"moderatorName,omitempty"`
	TranscriptCount int64      `json:"transcriptCount"`
	LastAnalyzed    *time.Time `json:"lastAnalyzed,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ListProjectsResponse represents a page of projects
type ListProjectsResponse struct {
	Projects   []*ProjectResponse        `json:"projects"`
	Pagination common.PaginationResponse `json:"pagination"`
}

// TranscriptResponse represents a transcript in API responses
type TranscriptResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Filename  string    `json:"filename"`
	Content   string    `json:"content"`
	SizeKB    float64   `json:"sizeKb"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContextResponse carries the project context
type ContextResponse struct {
	Context string `json:"context"`
}

// ConversationsResponse lists a project's chat history
type ConversationsResponse struct {
	Conversations []*entities.ChatExchange `json:"conversations"`
}
