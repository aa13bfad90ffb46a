package domain

// LanguageCode is an ISO-639-1 code from the supported language set.
type LanguageCode string

const (
	LangEnglish    LanguageCode = "en"
	LangSpanish    LanguageCode = "es"
	LangChinese    LanguageCode = "zh"
	LangTagalog    LanguageCode = "tl"
	LangVietnamese LanguageCode = "vi"
	LangArabic     LanguageCode = "ar"
	LangFrench     LanguageCode = "fr"
	LangKorean     LanguageCode = "ko"
	LangRussian    LanguageCode = "ru"
	LangHaitian    LanguageCode = "ht"
	LangPortuguese LanguageCode = "pt"
	LangHindi      LanguageCode = "hi"
)

// DefaultLanguage is used when no preference has been saved.
const DefaultLanguage = LangEnglish

// SupportedLanguages lists every accepted target language in display order.
var SupportedLanguages = []LanguageCode{
	LangEnglish, LangSpanish, LangChinese, LangTagalog, LangVietnamese, LangArabic,
	LangFrench, LangKorean, LangRussian, LangHaitian, LangPortuguese, LangHindi,
}

// IsSupported reports whether code belongs to the supported language set.
func (c LanguageCode) IsSupported() bool {
	for _, l := range SupportedLanguages {
		if l == c {
			return true
		}
	}
	return false
}

// ParseLanguage validates a raw language code.
func ParseLanguage(raw string) (LanguageCode, error) {
	code := LanguageCode(raw)
	if !code.IsSupported() {
		return "", ErrInvalidLanguage
	}
	return code, nil
}

// MediaType is the declared content type of an uploaded document.
type MediaType string

const (
	MediaTypePDF  MediaType = "application/pdf"
	MediaTypeJPEG MediaType = "image/jpeg"
	MediaTypePNG  MediaType = "image/png"
	MediaTypeWEBP MediaType = "image/webp"
	MediaTypeHEIC MediaType = "image/heic"
)

// AllowedMediaTypes is the document upload allow-list.
var AllowedMediaTypes = map[MediaType]bool{
	MediaTypePDF:  true,
	MediaTypeJPEG: true,
	MediaTypePNG:  true,
	MediaTypeWEBP: true,
	MediaTypeHEIC: true,
}

// LifecycleStatus represents the state of one document processing cycle.
type LifecycleStatus string

const (
	StatusIdle       LifecycleStatus = "idle"
	StatusProcessing LifecycleStatus = "processing"
	StatusSuccess    LifecycleStatus = "success"
	StatusError      LifecycleStatus = "error"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)
