package errors

import "errors"

// Common errors
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternalError = errors.New("internal server error")
)

// Pipeline errors
var (
	ErrUpstream    = errors.New("generation request failed")
	ErrParse       = errors.New("no JSON object recoverable from model output")
	ErrSchema      = errors.New("model output does not match the analysis schema")
	ErrPersistence = errors.New("persistence failed")

	ErrTranscriptionUnavailable = errors.New("audio transcription is not configured")
)

// Validation errors; all wrap ErrValidation
var (
	ErrNoTranscripts    = wrapValidation("no transcripts provided")
	ErrMissingQuestion  = wrapValidation("question is required")
	ErrMissingProject   = wrapValidation("projectId is required")
	ErrMissingQuoteText = wrapValidation("quote text is required")
	ErrInvalidEmailType = wrapValidation("unsupported email type")
	ErrMissingAudioURL  = wrapValidation("audio URL is required")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

func wrapValidation(msg string) error {
	return &validationError{msg: msg}
}
