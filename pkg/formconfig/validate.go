package formconfig

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Validate checks the structural invariants of a loaded config: a submit
// endpoint, unique non-empty field ids, ShowWhen references that resolve to a
// declared field, and at least one translation bundle.
//
// Translation completeness (every field id present in every language's fields
// map) is only enforced when strict is true. The lenient default preserves the
// historical behaviour where a field missing from a bundle is silently skipped
// at render time; Problems exposes the gaps either way so callers can log them.
func (c *FormConfig) Validate(strict bool) error {
	if c == nil {
		return errors.New("formconfig: config is nil")
	}
	if strings.TrimSpace(c.SubmitEndpoint) == "" {
		return errors.New("formconfig: submitEndpoint is required")
	}
	if len(c.Fields) == 0 {
		return errors.New("formconfig: at least one field is required")
	}
	if len(c.Translations) == 0 {
		return errors.New("formconfig: at least one translation bundle is required")
	}
	if c.DefaultLanguage != "" {
		if _, ok := c.Translations[c.DefaultLanguage]; !ok {
			return fmt.Errorf("formconfig: defaultLanguage %q has no translation bundle", c.DefaultLanguage)
		}
	}

	seen := make(map[string]struct{}, len(c.Fields))
	for _, field := range c.Fields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return errors.New("formconfig: field with empty id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("formconfig: duplicate field id %q", id)
		}
		seen[id] = struct{}{}
	}

	for _, field := range c.Fields {
		if field.ShowWhen == nil {
			continue
		}
		target := strings.TrimSpace(field.ShowWhen.FieldID)
		if target == "" {
			return fmt.Errorf("formconfig: field %q showWhen is missing fieldId", field.ID)
		}
		if _, ok := seen[target]; !ok {
			return fmt.Errorf("formconfig: field %q showWhen references unknown field %q", field.ID, target)
		}
	}

	if strict {
		if problems := c.Problems(); len(problems) > 0 {
			return fmt.Errorf("formconfig: %s", strings.Join(problems, "; "))
		}
	}
	return nil
}

// Problems reports non-fatal config/translation gaps: field ids that one or
// more language bundles do not carry text for. Such fields are skipped when
// rendering in that language.
func (c *FormConfig) Problems() []string {
	var problems []string
	for _, lang := range sortedLanguages(c.Translations) {
		bundle := c.Translations[lang]
		for _, field := range c.Fields {
			if _, ok := bundle.Fields[field.ID]; !ok {
				problems = append(problems, fmt.Sprintf("translation %q missing field %q", lang, field.ID))
			}
		}
	}
	return problems
}

func sortedLanguages(translations map[string]Translation) []string {
	langs := make([]string, 0, len(translations))
	for lang := range translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
