package entities

import "errors"

// Domain errors
var (
	// Project errors
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidName     = errors.New("invalid name")

	// Transcript errors
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrInvalidFilename    = errors.New("invalid filename")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
