package errors

import (
	"fmt"
	"net/http"
)

// AppError là custom error type cho application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

func newError(status int, code ErrorCode, message string, raw error) AppError {
	return AppError{Raw: raw, HTTPCode: status, Code: code, Message: message}
}

func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the raw cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail returns a copy carrying one more detail entry
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General

func ErrInternal(err error) AppError {
	return newError(http.StatusInternalServerError, ErrorCode_INTERNAL, "Internal server error", err)
}

func ErrInvalidArgument(message string) AppError {
	return newError(http.StatusBadRequest, ErrorCode_INVALID_ARGUMENT, message, nil)
}

func ErrInvalidPayload() AppError {
	return newError(http.StatusBadRequest, ErrorCode_INVALID_PAYLOAD, "Invalid payload", nil)
}

func ErrPermissionDenied(action string) AppError {
	return newError(http.StatusForbidden, ErrorCode_PERMISSION_DENIED, "Permission denied: "+action, nil)
}

// Auth

func ErrUnauthenticated() AppError {
	return newError(http.StatusUnauthorized, ErrorCode_UNAUTHENTICATED, "Authentication required", nil)
}

func ErrInvalidToken() AppError {
	return newError(http.StatusUnauthorized, ErrorCode_AUTH_INVALID_TOKEN, "Invalid authentication token", nil)
}

// Projects

func ErrProjectNotFound(projectID string) AppError {
	return newError(http.StatusNotFound, ErrorCode_PROJECT_NOT_FOUND, "Project not found", nil).
		WithDetail("project_id", projectID)
}

func ErrTranscriptNotFound(transcriptID string) AppError {
	return newError(http.StatusNotFound, ErrorCode_TRANSCRIPT_NOT_FOUND, "Transcript not found", nil).
		WithDetail("transcript_id", transcriptID)
}

func ErrNoTranscripts() AppError {
	return newError(http.StatusBadRequest, ErrorCode_NO_TRANSCRIPTS, "No transcripts provided", nil)
}

// AI and integrations

func ErrAITranscriptionFailed(err error) AppError {
	return newError(http.StatusInternalServerError, ErrorCode_AI_TRANSCRIPTION_FAILED, "Audio transcription failed", err)
}

func ErrAIServiceUnavailable(service string) AppError {
	return newError(http.StatusServiceUnavailable, ErrorCode_AI_SERVICE_UNAVAILABLE, "AI service temporarily unavailable", nil).
		WithDetail("service", service)
}

func ErrDBQueryFailed(query string, err error) AppError {
	return newError(http.StatusInternalServerError, ErrorCode_DB_QUERY_FAILED, "Database query failed", err).
		WithDetail("query", query)
}
