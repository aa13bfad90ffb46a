package gemini

import (
	"context"

	"bridge/internal/config"
	"bridge/internal/parser"
	"bridge/internal/port"
)

// Translator implements port.DocumentTranslator with a schema-constrained
// generateContent call.
type Translator struct {
	client
}

// NewTranslator creates a Gemini-backed translator.
func NewTranslator(cfg *config.CollaboratorConfig) *Translator {
	return &Translator{client: newClient(cfg, "")}
}

// NewTranslatorWithEndpoint creates a translator pointing at a custom URL (for testing).
func NewTranslatorWithEndpoint(cfg *config.CollaboratorConfig, endpoint string) *Translator {
	return &Translator{client: newClient(cfg, endpoint)}
}

// Translate sends the encoded document with the fixed system instruction and
// response schema, then decodes the reply through the result contract.
func (t *Translator) Translate(ctx context.Context, input port.TranslateInput) (*port.TranslateOutput, error) {
	prompt := parser.BuildUserPrompt(input.TargetName)

	reqBody := &generateRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{InlineData: &inlineData{MimeType: string(input.Document.MediaType), Data: input.Document.Data}},
					{Text: prompt},
				},
			},
		},
		SystemInstruction: &content{Parts: []part{{Text: parser.SystemInstruction}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   parser.ResponseSchema(),
		},
	}

	text, err := t.generate(ctx, reqBody)
	if err != nil {
		return nil, err
	}

	result, err := parser.DecodeBridgeResult(text)
	if err != nil {
		return nil, err
	}

	return &port.TranslateOutput{
		Result:     result,
		ModelUsed:  t.model,
		PromptUsed: prompt,
	}, nil
}
