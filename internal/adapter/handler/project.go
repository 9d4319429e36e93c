package handler

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-iq/errors"
	"github.com/johnquangdev/transcript-iq/internal/adapter/dto/common"
	"github.com/johnquangdev/transcript-iq/internal/adapter/dto/project"
	"github.com/johnquangdev/transcript-iq/internal/adapter/presenter"
	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/http/middleware"
	aiUsecase "github.com/johnquangdev/transcript-iq/internal/usecase/ai"
	projectUsecase "github.com/johnquangdev/transcript-iq/internal/usecase/project"
)

// maxUploadBytes bounds multipart transcript uploads
const maxUploadBytes = 10 << 20

// Project handles project-related HTTP requests
type Project struct {
	projectService projectUsecase.Service
	aiService      aiUsecase.Service
	logger         *zap.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService projectUsecase.Service, aiService aiUsecase.Service, logger *zap.Logger) *Project {
	return &Project{
		projectService: projectService,
		aiService:      aiService,
		logger:         logger,
	}
}

// CreateProject handles POST /projects
// @Summary      Create a new project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      project.CreateProjectRequest  true  "Project creation request"
// @Success      201      {object}  project.ProjectResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Router       /projects [post]
func (h *Project) CreateProject(c echo.Context) error {
	var req project.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	p, err := h.projectService.CreateProject(c.Request().Context(), projectUsecase.CreateProjectInput{
		UserID:        middleware.UserID(c),
		Name:          req.Name,
		Description:   req.Description,
		ModeratorName: req.ModeratorName,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccessStatus(h.logger, c, http.StatusCreated, presenter.ToProjectResponse(p))
}

// ListProjects handles GET /projects
// @Summary      List projects
// @Description  Lists projects newest first with their transcript counts
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number"  default(1)
// @Param        page_size  query     int  false  "Page size"    default(20)
// @Success      200        {object}  project.ListProjectsResponse
// @Router       /projects [get]
func (h *Project) ListProjects(c echo.Context) error {
	req := project.ListProjectsRequest{
		Page:     GetQueryInt(c, "page", defaultPage),
		PageSize: GetQueryInt(c, "page_size", defaultPageSize),
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	projects, err := h.projectService.ListProjects(c.Request().Context(), buildFilters(&req, middleware.UserID(c)))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, project.ListProjectsResponse{
		Projects: presenter.ToProjectListResponse(projects),
		Pagination: common.PaginationResponse{
			Page:     req.Page,
			PageSize: req.PageSize,
			Count:    len(projects),
		},
	})
}

// GetProject handles GET /projects/:id
// @Summary      Get project details
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  project.ProjectResponse
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /projects/{id} [get]
func (h *Project) GetProject(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	p, err := h.projectService.GetProject(c.Request().Context(), projectID, middleware.UserID(c))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToProjectResponse(p))
}

// UpdateProject handles PUT /projects/:id
// @Summary      Update a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Project ID (UUID)"
// @Param        request  body      project.UpdateProjectRequest  true  "Fields to change"
// @Success      200      {object}  project.ProjectResponse
// @Failure      404      {object}  map[string]interface{}  "Project not found"
// @Router       /projects/{id} [put]
func (h *Project) UpdateProject(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req project.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	p, err := h.projectService.UpdateProject(c.Request().Context(), projectUsecase.UpdateProjectInput{
		ProjectID:     projectID,
		CallerID:      middleware.UserID(c),
		Name:          req.Name,
		Description:   req.Description,
		ModeratorName: req.ModeratorName,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToProjectResponse(p))
}

// DeleteProject handles DELETE /projects/:id
// @Summary      Delete a project
// @Description  Deletes a project with its transcripts, analyses and chat history
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /projects/{id} [delete]
func (h *Project) DeleteProject(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), projectID, middleware.UserID(c)); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"id": projectID.String()})
}

// ListTranscripts handles GET /projects/:id/transcripts
// @Summary      List transcripts
// @Description  Lists a project's transcripts newest first
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {array}   project.TranscriptResponse
// @Router       /projects/{id}/transcripts [get]
func (h *Project) ListTranscripts(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	transcripts, err := h.projectService.ListTranscripts(c.Request().Context(), projectID, middleware.UserID(c))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTranscriptListResponse(transcripts))
}

// AddTranscript handles POST /projects/:id/transcripts
// @Summary      Add a transcript
// @Description  Accepts JSON {filename, content} or a multipart form with a "file" field
// @Tags         Transcripts
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true   "Project ID (UUID)"
// @Param        request  body      project.AddTranscriptRequest  false  "Transcript"
// @Param        file     formData  file                          false  "Transcript file"
// @Success      201      {object}  project.TranscriptResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Router       /projects/{id}/transcripts [post]
func (h *Project) AddTranscript(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	req, err := h.readTranscript(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := c.Validate(req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	t, err := h.projectService.AddTranscript(c.Request().Context(), projectUsecase.AddTranscriptInput{
		ProjectID: projectID,
		CallerID:  middleware.UserID(c),
		Filename:  req.Filename,
		Content:   req.Content,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessStatus(h.logger, c, http.StatusCreated, presenter.ToTranscriptResponse(t))
}

// readTranscript reads either a multipart file or a JSON body
func (h *Project) readTranscript(c echo.Context) (*project.AddTranscriptRequest, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		var req project.AddTranscriptRequest
		if err := c.Bind(&req); err != nil {
			return nil, errors.ErrInvalidPayload()
		}
		return &req, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errors.ErrInvalidArgument("file is required")
	}
	if fh.Size > maxUploadBytes {
		return nil, errors.ErrInvalidArgument(fmt.Sprintf("file exceeds %d bytes", maxUploadBytes))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return &project.AddTranscriptRequest{Filename: fh.Filename, Content: string(content)}, nil
}

// ImportAudio handles POST /projects/:id/transcripts/audio
// @Summary      Import an audio interview
// @Description  Transcribes a hosted audio file with speaker labels and stores it as a transcript
// @Tags         Transcripts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Project ID (UUID)"
// @Param        request  body      project.ImportAudioRequest  true  "Audio location"
// @Success      201      {object}  project.TranscriptResponse
// @Failure      503      {object}  map[string]interface{}  "Transcription not configured"
// @Router       /projects/{id}/transcripts/audio [post]
func (h *Project) ImportAudio(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req project.ImportAudioRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	t, err := h.projectService.ImportAudio(c.Request().Context(), projectUsecase.ImportAudioInput{
		ProjectID: projectID,
		CallerID:  middleware.UserID(c),
		AudioURL:  req.AudioURL,
		Filename:  req.Filename,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessStatus(h.logger, c, http.StatusCreated, presenter.ToTranscriptResponse(t))
}

// DeleteTranscript handles DELETE /projects/:id/transcripts/:transcriptId
// @Summary      Delete a transcript
// @Tags         Transcripts
// @Produce      json
// @Security     BearerAuth
// @Param        id            path      string  true  "Project ID (UUID)"
// @Param        transcriptId  path      string  true  "Transcript ID (UUID)"
// @Success      200           {object}  map[string]interface{}
// @Failure      404           {object}  map[string]interface{}  "Transcript not found"
// @Router       /projects/{id}/transcripts/{transcriptId} [delete]
func (h *Project) DeleteTranscript(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	transcriptID, err := parseUUIDParam(c, "transcriptId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.projectService.DeleteTranscript(c.Request().Context(), projectID, transcriptID, middleware.UserID(c)); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"id": transcriptID.String()})
}

// GetContext handles GET /projects/:id/context
// @Summary      Get project context
// @Tags         Context
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  project.ContextResponse
// @Router       /projects/{id}/context [get]
func (h *Project) GetContext(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	text, err := h.projectService.GetContext(c.Request().Context(), projectID, middleware.UserID(c))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, project.ContextResponse{Context: text})
}

// AppendContext handles POST /projects/:id/context
// @Summary      Append to project context
// @Tags         Context
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Project ID (UUID)"
// @Param        request  body      project.ContextRequest  true  "Text to append"
// @Success      200      {object}  project.ContextResponse
// @Router       /projects/{id}/context [post]
func (h *Project) AppendContext(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req project.ContextRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	text, err := h.projectService.AppendContext(c.Request().Context(), projectID, middleware.UserID(c), req.Context)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, project.ContextResponse{Context: text})
}

// ReplaceContext handles PUT /projects/:id/context
// @Summary      Replace project context
// @Tags         Context
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Project ID (UUID)"
// @Param        request  body      project.ContextRequest  true  "New context"
// @Success      200      {object}  project.ContextResponse
// @Router       /projects/{id}/context [put]
func (h *Project) ReplaceContext(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req project.ContextRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	text, err := h.projectService.ReplaceContext(c.Request().Context(), projectID, middleware.UserID(c), req.Context)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, project.ContextResponse{Context: text})
}

// ClearContext handles DELETE /projects/:id/context
// @Summary      Clear project context
// @Tags         Context
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  project.ContextResponse
// @Router       /projects/{id}/context [delete]
func (h *Project) ClearContext(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.projectService.ClearContext(c.Request().Context(), projectID, middleware.UserID(c)); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, project.ContextResponse{Context: ""})
}

// RunAnalysis handles POST /projects/:id/analysis
// @Summary      Analyze a project's transcripts
// @Description  Runs one analysis over every transcript of the project and saves the result
// @Tags         Analysis
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  entities.AnalysisResult
// @Failure      500  {object}  common.ErrorResponse
// @Router       /projects/{id}/analysis [post]
func (h *Project) RunAnalysis(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleFunctionError(h.logger, c, http.StatusInternalServerError, err)
	}

	ctx := c.Request().Context()
	if _, err := h.projectService.GetProject(ctx, projectID, middleware.UserID(c)); err != nil {
		return HandleFunctionError(h.logger, c, http.StatusInternalServerError, err)
	}

	result, err := h.aiService.RunAnalysis(ctx, projectID)
	if err != nil {
		return HandleFunctionError(h.logger, c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, result)
}

// LatestAnalysis handles GET /projects/:id/analysis
// @Summary      Get the latest analysis
// @Description  Returns the most recent analysis, or null data when the project has none
// @Tags         Analysis
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  entities.AnalysisResult
// @Router       /projects/{id}/analysis [get]
func (h *Project) LatestAnalysis(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.projectService.LatestAnalysis(c.Request().Context(), projectID, middleware.UserID(c))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// ListConversations handles GET /projects/:id/conversations
// @Summary      List chat history
// @Tags         Conversations
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true   "Project ID (UUID)"
// @Param        sessionId  query     string  false  "Only this chat session"
// @Success      200        {object}  project.ConversationsResponse
// @Router       /projects/{id}/conversations [get]
func (h *Project) ListConversations(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	exchanges, err := h.projectService.ListConversations(c.Request().Context(), projectID, middleware.UserID(c), c.QueryParam("sessionId"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if exchanges == nil {
		exchanges = []*entities.ChatExchange{}
	}
	return HandleSuccess(h.logger, c, project.ConversationsResponse{Conversations: exchanges})
}

// ClearConversations handles DELETE /projects/:id/conversations
// @Summary      Delete chat history
// @Tags         Conversations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID (UUID)"
// @Success      200  {object}  common.DeletedResponse
// @Router       /projects/{id}/conversations [delete]
func (h *Project) ClearConversations(c echo.Context) error {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	deleted, err := h.projectService.ClearConversations(c.Request().Context(), projectID, middleware.UserID(c))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, common.DeletedResponse{Deleted: deleted})
}
