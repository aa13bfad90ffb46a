// Package gemini talks to Google's generateContent API for both the
// translate + summarize call and follow-up chat turns.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bridge/internal/config"
	"bridge/internal/domain"
	"bridge/internal/parser"
	"bridge/internal/port"
)

const (
	providerName   = "gemini"
	apiBaseURL     = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 120 * time.Second
)

func init() {
	parser.RegisterTranslator(providerName, func(cfg *config.CollaboratorConfig) (port.DocumentTranslator, error) {
		return NewTranslator(cfg), nil
	})
	parser.RegisterChatModel(providerName, func(cfg *config.CollaboratorConfig) (port.ChatModel, error) {
		return NewChat(cfg), nil
	})
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

// generateResponse models the parts of the API response Bridge reads.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// client holds the HTTP plumbing shared by Translator and Chat.
type client struct {
	apiKey   string
	model    string
	endpoint string
	http     *http.Client
}

func newClient(cfg *config.CollaboratorConfig, endpoint string) client {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if endpoint == "" {
		base := cfg.Endpoint
		if base == "" {
			base = apiBaseURL
		}
		endpoint = fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(base, "/"), model)
	}
	return client{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

// generate sends one request and returns the concatenated candidate text.
// An absent credential fails before any network traffic.
func (c *client) generate(ctx context.Context, reqBody *generateRequest) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingCredential
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini API: %w: %w", domain.ErrCollaboratorFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parser.NewStatusError(providerName, resp, respBody)
	}

	return extractText(respBody)
}

func extractText(body []byte) (string, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &domain.MalformedResponseError{Cause: fmt.Errorf("unmarshaling response envelope: %w", err)}
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: request blocked (%s)", domain.ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return "", domain.ErrEmptyResponse
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
