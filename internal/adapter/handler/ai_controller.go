package handler

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-iq/internal/adapter/dto/function"
	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/infrastructure/http/middleware"
	aiuse "github.com/johnquangdev/transcript-iq/internal/usecase/ai"
	usecaseErrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
)

// ProjectAccess resolves a project for a caller, rejecting foreign owners
type ProjectAccess interface {
	GetProject(ctx context.Context, projectID uuid.UUID, callerID *uuid.UUID) (*entities.Project, error)
}

// AIController handles the transcript function endpoints
type AIController struct {
	svc      aiuse.Service
	projects ProjectAccess
	logger   *zap.Logger
}

// NewAIController creates a new AI controller
func NewAIController(svc aiuse.Service, projects ProjectAccess, logger *zap.Logger) *AIController {
	return &AIController{svc: svc, projects: projects, logger: logger}
}

// authorizeProject checks that the caller may read and write the project.
// Owned projects are closed to anonymous callers.
func (ac *AIController) authorizeProject(c echo.Context, projectID uuid.UUID) error {
	callerID := middleware.UserID(c)
	project, err := ac.projects.GetProject(c.Request().Context(), projectID, callerID)
	if err != nil {
		return err
	}
	if project.UserID != nil && callerID == nil {
		return entities.ErrUnauthorized
	}
	return nil
}

// accessStatus maps project access failures; anything else is a 500
func accessStatus(err error) int {
	switch {
	case stdErrors.Is(err, entities.ErrProjectNotFound):
		return http.StatusNotFound
	case stdErrors.Is(err, entities.ErrForbidden):
		return http.StatusForbidden
	case stdErrors.Is(err, entities.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// AnalyzeTranscripts handles POST /functions/analyze-transcripts
// @Summary      Analyze transcripts
// @Description  Extracts key themes and disagreements from interview transcripts. When projectId is set the result is saved to the project.
// @Tags         Functions
// @Accept       json
// @Produce      json
// @Param        request  body      function.AnalyzeTranscriptsRequest  true  "Transcripts to analyze"
// @Success      200      {object}  entities.AnalysisResult
// @Failure      401      {object}  common.ErrorResponse  "Project belongs to another user"
// @Failure      403      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse  "Project not found"
// @Failure      500      {object}  common.ErrorResponse
// @Router       /functions/analyze-transcripts [post]
func (ac *AIController) AnalyzeTranscripts(c echo.Context) error {
	var req function.AnalyzeTranscriptsRequest
	if err := c.Bind(&req); err != nil {
		return HandleFunctionError(ac.logger, c, http.StatusInternalServerError, fmt.Errorf("invalid request body: %w", err))
	}

	var projectID *uuid.UUID
	if s := strings.TrimSpace(req.ProjectID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return HandleFunctionError(ac.logger, c, http.StatusInternalServerError, fmt.Errorf("invalid projectId: %w", err))
		}
		if err := ac.authorizeProject(c, id); err != nil {
			return HandleFunctionError(ac.logger, c, accessStatus(err), err)
		}
		projectID = &id
	}

	transcripts := make([]*entities.Transcript, 0, len(req.Transcripts))
	for _, t := range req.Transcripts {
		transcripts = append(transcripts, &entities.Transcript{
			Filename: t.Filename,
			Content:  t.Content,
			SizeKB:   entities.SizeKB(t.Content),
		})
	}

	result, err := ac.svc.AnalyzeTranscripts(c.Request().Context(), transcripts, projectID)
	if err != nil {
		return HandleFunctionError(ac.logger, c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ChatWithTranscripts handles POST /functions/chat-with-transcripts
// @Summary      Ask a question about a project's transcripts
// @Tags         Functions
// @Accept       json
// @Produce      json
// @Param        request  body      function.ChatRequest  true  "Question"
// @Success      200      {object}  function.ChatResponse
// @Failure      400      {object}  common.ErrorResponse  "Missing question or projectId"
// @Failure      401      {object}  common.ErrorResponse
// @Failure      403      {object}  common.ErrorResponse  "Project belongs to another user"
// @Failure      404      {object}  common.ErrorResponse  "Project not found"
// @Failure      500      {object}  common.ErrorResponse
// @Router       /functions/chat-with-transcripts [post]
func (ac *AIController) ChatWithTranscripts(c echo.Context) error {
	var req function.ChatRequest
	if err := c.Bind(&req); err != nil {
		return HandleFunctionError(ac.logger, c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
	}

	projectID := uuid.Nil
	if s := strings.TrimSpace(req.ProjectID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return HandleFunctionError(ac.logger, c, http.StatusBadRequest, fmt.Errorf("invalid projectId: %w", err))
		}
		if err := ac.authorizeProject(c, id); err != nil {
			return HandleFunctionError(ac.logger, c, accessStatus(err), err)
		}
		projectID = id
	}

	exchange, err := ac.svc.AnswerQuestion(c.Request().Context(), aiuse.ChatInput{
		ProjectID: projectID,
		Question:  req.Question,
		SessionID: req.SessionID,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if stdErrors.Is(err, usecaseErrors.ErrMissingQuestion) || stdErrors.Is(err, usecaseErrors.ErrMissingProject) {
			status = http.StatusBadRequest
		}
		return HandleFunctionError(ac.logger, c, status, err)
	}

	return c.JSON(http.StatusOK, function.ChatResponse{
		Response: exchange.AIResponse,
		Quotes:   exchange.Quotes(),
	})
}

// CleanupQuote handles POST /functions/cleanup-quote
// @Summary      Clean up a transcript quote
// @Description  Removes filler words and false starts while keeping the speaker's meaning
// @Tags         Functions
// @Accept       json
// @Produce      json
// @Param        request  body      function.CleanupQuoteRequest  true  "Quote"
// @Success      200      {object}  function.CleanupQuoteResponse
// @Failure      500      {object}  common.ErrorResponse
// @Router       /functions/cleanup-quote [post]
func (ac *AIController) CleanupQuote(c echo.Context) error {
	var req function.CleanupQuoteRequest
	if err := c.Bind(&req); err != nil {
		return HandleFunctionError(ac.logger, c, http.StatusInternalServerError, fmt.Errorf("invalid request body: %w", err))
	}

	cleaned, err := ac.svc.CleanupQuote(c.Request().Context(), aiuse.QuoteCleanupInput{
		Text:        req.QuoteText(),
		Participant: req.Participant,
		Context:     req.Context,
	})
	if err != nil {
		return HandleFunctionError(ac.logger, c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, function.CleanupQuoteResponse{
		CleanedText:  cleaned,
		CleanedQuote: cleaned,
	})
}
