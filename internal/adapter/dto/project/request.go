package project

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=255"`
	Description   string `json:"description,omitempty"`
	ModeratorName string `json:"moderatorName,omitempty" validate:"omitempty,max=255"`
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string `json:"description,omitempty"`
	ModeratorName *string `json:"moderatorName,omitempty" validate:"omitempty,max=255"`
}

// ListProjectsRequest represents query parameters for listing projects
type ListProjectsRequest struct {
	Page     int `query:"page" validate:"min=1"`
	PageSize int `query:"page_size" validate:"min=1,max=100"`
}

// AddTranscriptRequest represents an uploaded transcript
type AddTranscriptRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Content  string `json:"content"`
}

// ImportAudioRequest represents an audio file to transcribe
type ImportAudioRequest struct {
	AudioURL string `json:"audioUrl" validate:"required,url"`
	Filename string `json:"filename,omitempty" validate:"omitempty,max=255"`
}

// ContextRequest carries project context text
type ContextRequest struct {
	Context string `json:"context"`
}
