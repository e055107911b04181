package nats

import "strings"

// Wire DTOs for the request/reply subjects. Field names are part of the
// protocol and must stay stable across clients.

type SaveMessageRequest struct {
	Message string `json:"message"`
}

type SaveMessageResponse struct {
	ID           string `json:"id,omitempty"`
	Password     string `json:"password,omitempty"`
	AesKey       string `json:"aesKey,omitempty"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type ReceiveMessageRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	AesKey   string `json:"aesKey"`
}

// Normalize strips accidental whitespace from credentials pasted by
// interactive clients.
func (r *ReceiveMessageRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Password = strings.TrimSpace(r.Password)
	r.AesKey = strings.TrimSpace(r.AesKey)
}

type ReceiveMessageResponse struct {
	Message        string `json:"message,omitempty"`
	Success        bool   `json:"success"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
	RemainingTries *int   `json:"remainingTries,omitempty"`
	Deleted        bool   `json:"deleted"`
}
