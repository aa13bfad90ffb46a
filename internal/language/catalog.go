// Package language holds the supported-language catalog: display names,
// chat greetings and quick prompts, loaded from an embedded YAML table.
package language

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"bridge/internal/domain"
)

//go:embed languages.yaml
var catalogYAML []byte

// QuickPrompt is a canned chat question offered as a shortcut.
type QuickPrompt struct {
	Label  string `yaml:"label" json:"label"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

// Option describes one supported language.
type Option struct {
	Code        domain.LanguageCode `yaml:"code" json:"code"`
	Name        string              `yaml:"name" json:"name"`
	Country     string              `yaml:"country" json:"country_code"`
	Greeting    string              `yaml:"greeting" json:"-"`
	Placeholder string              `yaml:"placeholder" json:"-"`
	Prompts     []QuickPrompt       `yaml:"prompts" json:"-"`
}

// Catalog indexes language options by code. English is the fallback for
// any missing greeting, placeholder or prompt set.
type Catalog struct {
	options []Option
	byCode  map[domain.LanguageCode]*Option
}

// Default returns the embedded catalog. It panics if the embedded table is broken.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("language: embedded catalog: %v", err))
	}
	return c
}

// Parse builds a Catalog from YAML. Every code must be a supported language
// and English must be present.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Languages []Option `yaml:"languages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{options: doc.Languages, byCode: make(map[domain.LanguageCode]*Option, len(doc.Languages))}
	for i := range c.options {
		opt := &c.options[i]
		if !opt.Code.IsSupported() {
			return nil, fmt.Errorf("catalog entry %q: %w", opt.Code, domain.ErrInvalidLanguage)
		}
		if _, dup := c.byCode[opt.Code]; dup {
			return nil, fmt.Errorf("catalog entry %q is duplicated", opt.Code)
		}
		c.byCode[opt.Code] = opt
	}
	if _, ok := c.byCode[domain.LangEnglish]; !ok {
		return nil, fmt.Errorf("catalog has no %q entry", domain.LangEnglish)
	}
	return c, nil
}

// Options returns all language options in display order.
func (c *Catalog) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Lookup returns the option for code.
func (c *Catalog) Lookup(code domain.LanguageCode) (Option, bool) {
	opt, ok := c.byCode[code]
	if !ok {
		return Option{}, false
	}
	return *opt, true
}

// DisplayName resolves a code to its display name, or returns the code itself
// when it is not in the catalog.
func (c *Catalog) DisplayName(code domain.LanguageCode) string {
	if opt, ok := c.byCode[code]; ok {
		return opt.Name
	}
	return string(code)
}

// Greeting returns the chat greeting for code.
func (c *Catalog) Greeting(code domain.LanguageCode) string {
	if opt, ok := c.byCode[code]; ok && opt.Greeting != "" {
		return opt.Greeting
	}
	return c.byCode[domain.LangEnglish].Greeting
}

// Placeholder returns the chat input hint for code.
func (c *Catalog) Placeholder(code domain.LanguageCode) string {
	if opt, ok := c.byCode[code]; ok && opt.Placeholder != "" {
		return opt.Placeholder
	}
	return c.byCode[domain.LangEnglish].Placeholder
}

// QuickPrompts returns the canned questions for code.
func (c *Catalog) QuickPrompts(code domain.LanguageCode) []QuickPrompt {
	opt, ok := c.byCode[code]
	if !ok || len(opt.Prompts) == 0 {
		opt = c.byCode[domain.LangEnglish]
	}
	out := make([]QuickPrompt, len(opt.Prompts))
	copy(out, opt.Prompts)
	return out
}
