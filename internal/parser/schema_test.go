package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge/internal/parser"
)

func TestResponseSchema_RequiresEveryField(t *testing.T) {
	schema := parser.ResponseSchema()

	assert.Equal(t, "OBJECT", schema["type"])
	assert.ElementsMatch(t, parser.RequiredResultFields, schema["required"])

	props := schema["properties"].(map[string]interface{})
	for _, field := range parser.RequiredResultFields {
		assert.Contains(t, props, field)
	}

	summary := props[parser.FieldSummary].(map[string]interface{})
	assert.ElementsMatch(t, parser.RequiredSummaryFields, summary["required"])

	summaryProps := summary["properties"].(map[string]interface{})
	for _, field := range []string{parser.FieldActions, parser.FieldDueDates, parser.FieldCosts, parser.FieldImportantInfo} {
		prop := summaryProps[field].(map[string]interface{})
		assert.Equal(t, "ARRAY", prop["type"], field)
	}
}

func TestResponseSchema_DescribesMarker(t *testing.T) {
	props := parser.ResponseSchema()["properties"].(map[string]interface{})
	translation := props[parser.FieldTranslationHTML].(map[string]interface{})

	desc, ok := translation["description"].(string)
	require.True(t, ok)
	assert.Contains(t, desc, parser.MarkerClass)
	assert.Contains(t, desc, parser.MarkerIDPrefix)
}

func TestPrompts(t *testing.T) {
	assert.Equal(t, "Please process this document. Target Language: Spanish.", parser.BuildUserPrompt("Spanish"))
	assert.True(t, strings.Contains(parser.SystemInstruction, parser.NoCostsSentinel))

	instr := parser.ChatInstruction("Tiếng Việt")
	assert.Contains(t, instr, parser.DeclinePhrase)
	assert.Contains(t, instr, "Tiếng Việt")
}
