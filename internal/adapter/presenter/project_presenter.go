package presenter

import (
	"github.com/johnquangdev/transcript-iq/internal/adapter/dto/project"
	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
)

// ToProjectResponse converts a Project entity to ProjectResponse DTO
func ToProjectResponse(p *entities.Project) *project.ProjectResponse {
	if p == nil {
		return nil
	}

	return &project.ProjectResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Description:     p.Description,
		Context:         p.Context,
		ModeratorName:   p.ModeratorName,
		TranscriptCount: p.TranscriptCount,
		LastAnalyzed:    p.LastAnalyzed,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProjectListResponse converts a slice of Project entities
func ToProjectListResponse(projects []*entities.Project) []*project.ProjectResponse {
	responses := make([]*project.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, ToProjectResponse(p))
	}
	return responses
}

// ToTranscriptResponse converts a Transcript entity to TranscriptResponse DTO
func ToTranscriptResponse(t *entities.Transcript) *project.TranscriptResponse {
	if t == nil {
		return nil
	}

	return &project.TranscriptResponse{
		ID:        t.ID.String(),
		ProjectID: t.ProjectID.String(),
		Filename:  t.Filename,
		Content:   t.Content,
		SizeKB:    t.SizeKB,
		CreatedAt: t.CreatedAt,
	}
}

// ToTranscriptListResponse converts a slice of Transcript entities
func ToTranscriptListResponse(transcripts []*entities.Transcript) []*project.TranscriptResponse {
	responses := make([]*project.TranscriptResponse, 0, len(transcripts))
	for _, t := range transcripts {
		responses = append(responses, ToTranscriptResponse(t))
	}
	return responses
}
