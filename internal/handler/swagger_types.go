package handler

import (
	"bridge/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ChatMessageRequest represents one chat question.
type ChatMessageRequest struct {
	Message string `json:"message" example:"When is the form due?"`
}

// LanguageRequest carries a language code.
type LanguageRequest struct {
	Language domain.LanguageCode `json:"language" binding:"required" example:"es"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"preference store not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// ToggleResponse reports an action's done state after a toggle.
type ToggleResponse struct {
	Index int  `json:"index" example:"0"`
	Done  bool `json:"done" example:"true"`
}

// TranslationResponse wraps the rendered translation markup.
type TranslationResponse struct {
	HTML string `json:"html" example:"<p>Firme en la <span class=\"action-highlight active\" id=\"action-ref-0\">Firma</span></p>"`
}

// Chat frame types sent over the websocket.
const (
	FrameReply = "reply"
	FrameError = "error"
)

// ChatFrame is one websocket reply.
type ChatFrame struct {
	Type     string               `json:"type" example:"reply"`
	Reply    string               `json:"reply,omitempty" example:"The form is due on March 3."`
	Messages []domain.ChatMessage `json:"messages,omitempty"`
	Error    *APIError            `json:"error,omitempty"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
