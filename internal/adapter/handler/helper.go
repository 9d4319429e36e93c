package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-iq/errors"
	"github.com/johnquangdev/transcript-iq/internal/adapter/dto/common"
	"github.com/johnquangdev/transcript-iq/internal/adapter/dto/project"
	"github.com/johnquangdev/transcript-iq/internal/domain/entities"
	"github.com/johnquangdev/transcript-iq/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/transcript-iq/internal/usecase/errors"
)

// Pagination defaults for list endpoints
const (
	defaultPage     = 1
	defaultPageSize = 20
)

// GetQueryInt reads an integer query parameter with a default value
func GetQueryInt(c echo.Context, key string, defaultValue int) int {
	value := c.QueryParam(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// buildFilters converts ListProjectsRequest to repository filters
func buildFilters(req *project.ListProjectsRequest, userID *uuid.UUID) repositories.ProjectFilters {
	return repositories.ProjectFilters{
		UserID: userID,
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	}
}

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(name + " must be a valid UUID")
	}
	return id, nil
}

// toAppError maps domain and use case errors onto AppError
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, entities.ErrProjectNotFound):
		return errors.ErrProjectNotFound(c.Param("id"))
	case stdErrors.Is(err, entities.ErrTranscriptNotFound):
		return errors.ErrTranscriptNotFound(c.Param("transcriptId"))
	case stdErrors.Is(err, entities.ErrForbidden):
		return errors.ErrPermissionDenied("project belongs to another user")
	case stdErrors.Is(err, entities.ErrUnauthorized):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, entities.ErrInvalidName),
		stdErrors.Is(err, entities.ErrInvalidFilename),
		stdErrors.Is(err, entities.ErrInvalidRequest):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrNoTranscripts):
		return errors.ErrNoTranscripts()
	case stdErrors.Is(err, usecaseErrors.ErrValidation):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionUnavailable):
		return errors.ErrAIServiceUnavailable("transcription")
	case stdErrors.Is(err, usecaseErrors.ErrUpstream):
		return errors.ErrAITranscriptionFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrPersistence):
		return errors.ErrDBQueryFailed("", err)
	}
	return errors.ErrInternal(err)
}

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type errs struct {
	Error   string      `json:"error"`
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    string      `json:"info,omitempty"`

	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleSuccessStatus(logger, c, http.StatusOK, data)
}

// HandleSuccessStatus writes a standardized success response with a custom status
func HandleSuccessStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(c, err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// HandleFunctionError writes the bare {error} body used by function endpoints
func HandleFunctionError(logger *zap.Logger, c echo.Context, status int, err error) error {
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return c.JSON(status, common.ErrorResponse{Error: err.Error()})
}
