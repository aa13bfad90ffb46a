package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"bridge/internal/domain"
	"bridge/internal/parser"
	"bridge/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 success response for work continuing in the background.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var vErr *domain.ValidationError
	var rlErr *parser.RateLimitError
	var stErr *parser.StatusError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, "VALIDATION_ERROR", vErr.Message
	case errors.As(err, &rlErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", service.FailureMessage(err)
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusInternalServerError, "MISSING_CREDENTIAL", service.FailureMessage(err)
	case errors.Is(err, domain.ErrMalformedResponse), errors.Is(err, domain.ErrEmptyResponse),
		errors.Is(err, domain.ErrCollaboratorFailed), errors.As(err, &stErr):
		return http.StatusBadGateway, "PROCESSING_FAILED", service.FailureMessage(err)
	case errors.Is(err, domain.ErrWorkspaceNotFound):
		return http.StatusNotFound, "WORKSPACE_NOT_FOUND", "workspace not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrNotIdle):
		return http.StatusConflict, "NOT_IDLE", "a document is already being processed or shown; reset first"
	case errors.Is(err, domain.ErrNoResult):
		return http.StatusConflict, "NO_RESULT", "no processed document available"
	case errors.Is(err, domain.ErrChatBusy):
		return http.StatusConflict, "CHAT_BUSY", "please wait for the current answer"
	case errors.Is(err, domain.ErrInvalidLanguage):
		return http.StatusBadRequest, "INVALID_LANGUAGE", "unsupported language code"
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest, "EMPTY_MESSAGE", "message must not be empty"
	case errors.Is(err, domain.ErrActionOutOfRange):
		return http.StatusBadRequest, "ACTION_OUT_OF_RANGE", "action index out of range"
	case errors.Is(err, domain.ErrUnsupportedExport):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT", "unsupported export format; allowed: csv, xlsx"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	var rlErr *parser.RateLimitError
	if errors.As(err, &rlErr) {
		c.Header("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
	}
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.WithField("request_id", requestID).Errorf("internal error: %v", err)
	}
	RespondError(c, status, code, msg)
}

// parseWorkspaceID reads the :id path parameter. Returns false if it is not a
// UUID (error response already written).
func parseWorkspaceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid workspace ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseActionIndex reads the :index path parameter.
func parseActionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "action index must be a non-negative integer")
		return 0, false
	}
	return index, true
}
