package auth

// SendAuthEmailResponse represents a delivered auth email
type SendAuthEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}
