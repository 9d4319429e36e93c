package common

// ErrorResponse is the body returned by function endpoints on failure
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code,omitempty"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Count    int `json:"count"`
}

// DeletedResponse reports how many rows a delete removed
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
