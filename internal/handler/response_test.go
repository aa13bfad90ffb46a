package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bridge/internal/domain"
	"bridge/internal/handler"
	"bridge/internal/parser"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.NewValidationError(domain.ReasonTooLarge, "file exceeds the 10 MiB limit"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{fmt.Errorf("wrapped: %w", domain.ErrMissingCredential), http.StatusInternalServerError, "MISSING_CREDENTIAL"},
		{&domain.MalformedResponseError{Field: "summary"}, http.StatusBadGateway, "PROCESSING_FAILED"},
		{domain.ErrEmptyResponse, http.StatusBadGateway, "PROCESSING_FAILED"},
		{fmt.Errorf("calling: %w: %w", domain.ErrCollaboratorFailed, errors.New("eof")), http.StatusBadGateway, "PROCESSING_FAILED"},
		{&parser.RateLimitError{Provider: "gemini", RetryAfter: time.Minute}, http.StatusTooManyRequests, "RATE_LIMITED"},
		{domain.ErrWorkspaceNotFound, http.StatusNotFound, "WORKSPACE_NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrNotIdle, http.StatusConflict, "NOT_IDLE"},
		{domain.ErrChatBusy, http.StatusConflict, "CHAT_BUSY"},
		{domain.ErrNoResult, http.StatusConflict, "NO_RESULT"},
		{domain.ErrInvalidLanguage, http.StatusBadRequest, "INVALID_LANGUAGE"},
		{domain.ErrEmptyMessage, http.StatusBadRequest, "EMPTY_MESSAGE"},
		{domain.ErrActionOutOfRange, http.StatusBadRequest, "ACTION_OUT_OF_RANGE"},
		{domain.ErrUnsupportedExport, http.StatusBadRequest, "UNSUPPORTED_EXPORT"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_ValidationMessage(t *testing.T) {
	_, _, msg := handler.MapDomainError(domain.NewValidationError(domain.ReasonTooLarge, "file exceeds the %d MiB limit", 10))
	assert.Equal(t, "file exceeds the 10 MiB limit", msg)
}
