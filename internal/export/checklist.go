// Package export renders a processed document's summary as a downloadable
// checklist in CSV or XLSX form.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bridge/internal/domain"
	"bridge/internal/parser"
)

// Format is a supported export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name. Empty selects CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", domain.ErrUnsupportedExport
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// columns is the checklist header row.
var columns = []string{"Section", "#", "Item", "Done"}

// Section titles in output order.
const (
	SectionPurpose       = "Purpose"
	SectionActions       = "Actions"
	SectionDueDates      = "Due Dates"
	SectionCosts         = "Costs"
	SectionImportantInfo = "Important Info"
)

// Checklist is the export input: a summary plus the done flags of its actions.
type Checklist struct {
	FileName string
	Summary  domain.Summary
	Done     []bool
}

// Rows flattens the checklist into table rows, header excluded. Empty
// sections produce no item rows.
func (c Checklist) Rows() [][]string {
	sections := parser.Sections(c.Summary)
	rows := [][]string{{SectionPurpose, "", c.Summary.Purpose, ""}}

	if !sections.Actions.IsEmpty {
		for i, item := range sections.Actions.Items {
			done := "No"
			if i < len(c.Done) && c.Done[i] {
				done = "Yes"
			}
			rows = append(rows, []string{SectionActions, strconv.Itoa(i + 1), item, done})
		}
	}

	rows = appendSection(rows, SectionDueDates, sections.DueDates)
	rows = appendSection(rows, SectionCosts, sections.Costs)
	rows = appendSection(rows, SectionImportantInfo, sections.ImportantInfo)
	return rows
}

func appendSection(rows [][]string, title string, s domain.SummarySection) [][]string {
	if s.IsEmpty {
		return rows
	}
	for i, item := range s.Items {
		rows = append(rows, []string{title, strconv.Itoa(i + 1), item, ""})
	}
	return rows
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "document"
	}
	return s
}

// BuildFilename returns {sanitized_name}_checklist_{YYYY-MM-DD}.{ext}. The
// original extension of name is dropped.
func BuildFilename(name string, f Format, now time.Time) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return fmt.Sprintf("%s_checklist_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), f)
}
