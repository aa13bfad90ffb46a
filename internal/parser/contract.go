package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"bridge/internal/domain"
)

// DecodeBridgeResult parses collaborator output into a BridgeResult.
// Empty text yields domain.ErrEmptyResponse; invalid JSON or any absent
// required field yields a *domain.MalformedResponseError. Nothing is repaired.
func DecodeBridgeResult(text string) (*domain.BridgeResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, domain.ErrEmptyResponse
	}

	top, err := decodeObject([]byte(trimmed), "")
	if err != nil {
		return nil, err
	}

	var result domain.BridgeResult
	if err := decodeString(top, FieldDetectedLanguage, "", &result.DetectedLanguage); err != nil {
		return nil, err
	}
	if err := decodeString(top, FieldTargetLanguage, "", &result.TargetLanguage); err != nil {
		return nil, err
	}
	if err := decodeString(top, FieldTranslationHTML, "", &result.TranslationHTML); err != nil {
		return nil, err
	}

	raw, ok := top[FieldSummary]
	if !ok || isNull(raw) {
		return nil, &domain.MalformedResponseError{Field: FieldSummary}
	}
	summary, err := decodeObject(raw, FieldSummary)
	if err != nil {
		return nil, err
	}

	prefix := FieldSummary + "."
	s := &result.Summary
	if err := decodeString(summary, FieldPurpose, prefix, &s.Purpose); err != nil {
		return nil, err
	}
	if err := decodeStrings(summary, FieldActions, prefix, &s.Actions); err != nil {
		return nil, err
	}
	if err := decodeStrings(summary, FieldDueDates, prefix, &s.DueDates); err != nil {
		return nil, err
	}
	if err := decodeStrings(summary, FieldCosts, prefix, &s.Costs); err != nil {
		return nil, err
	}
	if err := decodeStrings(summary, FieldImportantInfo, prefix, &s.ImportantInfo); err != nil {
		return nil, err
	}

	for i, action := range s.Actions {
		plain := PlainText(action)
		if plain != action {
			log.Warnf("parser.DecodeBridgeResult: stripped markup from action %d", i)
			s.Actions[i] = plain
		}
	}

	return &result, nil
}

func decodeObject(data []byte, field string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		if field != "" {
			return nil, &domain.MalformedResponseError{Field: field, Cause: err}
		}
		return nil, &domain.MalformedResponseError{Cause: err}
	}
	if obj == nil {
		return nil, &domain.MalformedResponseError{Field: field, Cause: errors.New("null object")}
	}
	return obj, nil
}

func decodeString(obj map[string]json.RawMessage, field, prefix string, dst *string) error {
	raw, ok := obj[field]
	if !ok || isNull(raw) {
		return &domain.MalformedResponseError{Field: prefix + field}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &domain.MalformedResponseError{Field: prefix + field, Cause: err}
	}
	return nil
}

func decodeStrings(obj map[string]json.RawMessage, field, prefix string, dst *[]string) error {
	raw, ok := obj[field]
	if !ok || isNull(raw) {
		return &domain.MalformedResponseError{Field: prefix + field}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return &domain.MalformedResponseError{Field: prefix + field, Cause: err}
	}
	if items == nil {
		items = []string{}
	}
	*dst = items
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// PlainText strips markup from s and decodes entities. Text without tags is
// returned unchanged.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return strings.TrimSpace(b.String())
			}
			return s
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}

// Sections derives structural emptiness for each summary list. This is the
// only place sentinel strings are interpreted.
func Sections(s domain.Summary) domain.SummarySections {
	return domain.SummarySections{
		Actions:       section(s.Actions, "none"),
		DueDates:      section(s.DueDates, "no explicit", "no deadline"),
		Costs:         section(s.Costs, "no costs", "no cost"),
		ImportantInfo: section(s.ImportantInfo),
	}
}

func section(items []string, sentinels ...string) domain.SummarySection {
	return domain.SummarySection{Items: items, IsEmpty: DetectEmpty(items, sentinels...)}
}

// DetectEmpty reports whether items is empty or is a single sentinel entry
// containing one of the given lower-case markers.
func DetectEmpty(items []string, sentinels ...string) bool {
	if len(items) == 0 {
		return true
	}
	if len(items) != 1 {
		return false
	}
	only := strings.ToLower(strings.TrimSpace(items[0]))
	if only == "" {
		return true
	}
	for _, marker := range sentinels {
		if strings.Contains(only, marker) {
			return true
		}
	}
	return false
}
