package domain

import "time"

// Document is an uploaded file held in memory for one processing cycle.
type Document struct {
	FileName  string    `json:"file_name"`
	MediaType MediaType `json:"media_type"`
	Size      int64     `json:"size"`
	Bytes     []byte    `json:"-"`
}

// EncodedDocument is the transport-safe form of a Document.
type EncodedDocument struct {
	MediaType MediaType
	Data      string // base64, standard encoding
}

// Summary is the plain-language digest of a document.
type Summary struct {
	Purpose       string   `json:"purpose"`
	Actions       []string `json:"actions"`
	DueDates      []string `json:"due_dates"`
	Costs         []string `json:"costs"`
	ImportantInfo []string `json:"important_info"`
}

// BridgeResult is the structured payload returned by the collaborator.
type BridgeResult struct {
	DetectedLanguage string  `json:"detected_language"`
	TargetLanguage   string  `json:"target_language"`
	TranslationHTML  string  `json:"translation_html"`
	Summary          Summary `json:"summary"`
}

// SummarySection is one summary category with an explicit empty flag.
type SummarySection struct {
	Items   []string `json:"items"`
	IsEmpty bool     `json:"is_empty"`
}

// SummarySections exposes each list category with structural emptiness
// instead of the sentinel strings used on the wire.
type SummarySections struct {
	Actions       SummarySection `json:"actions"`
	DueDates      SummarySection `json:"due_dates"`
	Costs         SummarySection `json:"costs"`
	ImportantInfo SummarySection `json:"important_info"`
}

// ChatMessage is one entry of a chat transcript.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
