package auth

// SendAuthEmailRequest is the payload of the auth email hook
type SendAuthEmailRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Type       string `json:"type" validate:"required"`
	Token      string `json:"token" validate:"required"`
	RedirectTo string `json:"redirectTo,omitempty"`
}
