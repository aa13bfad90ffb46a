package parser

// Field names of the result contract.
const (
	FieldDetectedLanguage = "detected_language"
	FieldTargetLanguage   = "target_language"
	FieldTranslationHTML  = "translation_html"
	FieldSummary          = "summary"
	FieldPurpose          = "purpose"
	FieldActions          = "actions"
	FieldDueDates         = "due_dates"
	FieldCosts            = "costs"
	FieldImportantInfo    = "important_info"
)

// RequiredResultFields lists the top-level fields of the contract.
var RequiredResultFields = []string{FieldDetectedLanguage, FieldTargetLanguage, FieldTranslationHTML, FieldSummary}

// RequiredSummaryFields lists the nested summary fields of the contract.
var RequiredSummaryFields = []string{FieldPurpose, FieldActions, FieldDueDates, FieldCosts, FieldImportantInfo}

// ResponseSchema returns the structured-output schema for the translate +
// summarize call, in the OpenAPI subset accepted by generateContent.
// Every field is required.
func ResponseSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			FieldDetectedLanguage: stringProp("ISO-639-1 code of the source language"),
			FieldTargetLanguage:   stringProp("ISO-639-1 code of the target language actually used"),
			FieldTranslationHTML: stringProp("Full translated document as HTML. Wrap ONLY the exact label or header for each action with " +
				"<span class='" + MarkerClass + "' id='" + MarkerIDPrefix + "N'>. If no precise match exists, do not wrap anything."),
			FieldSummary: map[string]interface{}{
				"type": "OBJECT",
				"properties": map[string]interface{}{
					FieldPurpose:       stringProp("1-3 sentences in simple language about what this document is about"),
					FieldActions:       stringArrayProp("Concrete form-filling steps. Plain text only, no HTML tags."),
					FieldDueDates:      stringArrayProp("Important dates and deadlines in plain language"),
					FieldCosts:         stringArrayProp("Fees or money amounts the recipient needs to pay"),
					FieldImportantInfo: stringArrayProp("Warnings, penalties or key clauses"),
				},
				"required": RequiredSummaryFields,
			},
		},
		"required": RequiredResultFields,
	}
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "STRING", "description": description}
}

func stringArrayProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "ARRAY",
		"items":       map[string]interface{}{"type": "STRING"},
		"description": description,
	}
}
