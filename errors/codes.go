package errors

// ErrorCode identifies an application error independently of its HTTP status
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_PERMISSION_DENIED ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1004
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1005

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000

	// Projects
	ErrorCode_PROJECT_NOT_FOUND    ErrorCode = 3000
	ErrorCode_TRANSCRIPT_NOT_FOUND ErrorCode = 3001
	ErrorCode_NO_TRANSCRIPTS       ErrorCode = 3002

	// AI
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4003
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 4004

	// Integrations
	ErrorCode_DB_QUERY_FAILED ErrorCode = 5001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                 "HTTP_OK",
	ErrorCode_INTERNAL:                "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:        "INVALID_ARGUMENT",
	ErrorCode_PERMISSION_DENIED:       "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:         "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:         "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:      "AUTH_INVALID_TOKEN",
	ErrorCode_PROJECT_NOT_FOUND:       "PROJECT_NOT_FOUND",
	ErrorCode_TRANSCRIPT_NOT_FOUND:    "TRANSCRIPT_NOT_FOUND",
	ErrorCode_NO_TRANSCRIPTS:          "NO_TRANSCRIPTS",
	ErrorCode_AI_TRANSCRIPTION_FAILED: "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:  "AI_SERVICE_UNAVAILABLE",
	ErrorCode_DB_QUERY_FAILED:         "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
