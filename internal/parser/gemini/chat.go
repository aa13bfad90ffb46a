package gemini

import (
	"context"

	"bridge/internal/config"
	"bridge/internal/port"
)

// Chat implements port.ChatModel. Every call is stateless: the caller
// supplies the full history each turn.
type Chat struct {
	client
}

// NewChat creates a Gemini-backed chat model.
func NewChat(cfg *config.CollaboratorConfig) *Chat {
	return &Chat{client: newClient(cfg, "")}
}

// NewChatWithEndpoint creates a chat model pointing at a custom URL (for testing).
func NewChatWithEndpoint(cfg *config.CollaboratorConfig, endpoint string) *Chat {
	return &Chat{client: newClient(cfg, endpoint)}
}

func (c *Chat) Chat(ctx context.Context, input port.ChatInput) (string, error) {
	contents := make([]content, 0, len(input.History)+1)
	for _, msg := range input.History {
		contents = append(contents, content{Role: string(msg.Role), Parts: []part{{Text: msg.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: input.Message}}})

	reqBody := &generateRequest{Contents: contents}
	if input.SystemInstruction != "" {
		reqBody.SystemInstruction = &content{Parts: []part{{Text: input.SystemInstruction}}}
	}

	return c.generate(ctx, reqBody)
}
