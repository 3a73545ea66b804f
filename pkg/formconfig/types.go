package formconfig

// FieldType enumerates the input kinds a form document may declare. The set
// mirrors HTML input types; unknown values are passed through so renderers can
// decide how to degrade.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeTel    FieldType = "tel"
	FieldTypeSelect FieldType = "select"
	FieldTypeEmail  FieldType = "email"
	FieldTypeDate   FieldType = "date"
)

// ShowWhen describes a conditional-visibility rule: the field is shown only
// while the controlling field currently holds HasValue.
type ShowWhen struct {
	FieldID  string `json:"fieldId" yaml:"fieldId"`
	HasValue string `json:"hasValue" yaml:"hasValue"`
}

// FieldSpec declares the structure of one form input. Display text lives in
// the per-language Translation bundles, keyed by ID.
type FieldSpec struct {
	ID       string    `json:"id" yaml:"id"`
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Min      *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64  `json:"max,omitempty" yaml:"max,omitempty"`
	ShowWhen *ShowWhen `json:"showWhen,omitempty" yaml:"showWhen,omitempty"`
}

// Option is one selectable choice for a select-typed field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FieldText carries the localized display text for a single field.
type FieldText struct {
	Label       string   `json:"label" yaml:"label"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// Link is an auxiliary hyperlink rendered under the form.
type Link struct {
	Text string `json:"text" yaml:"text"`
	URL  string `json:"url" yaml:"url"`
}

// Translation bundles every piece of display text for one language.
type Translation struct {
	PageTitle           string               `json:"pageTitle" yaml:"pageTitle"`
	PageSubtitle        string               `json:"pageSubtitle" yaml:"pageSubtitle"`
	CardTitle           string               `json:"cardTitle" yaml:"cardTitle"`
	SubmitButtonText    string               `json:"submitButtonText" yaml:"submitButtonText"`
	SubmittingButtonText string              `json:"submittingButtonText" yaml:"submittingButtonText"`
	LoadingText         string               `json:"loadingText" yaml:"loadingText"`
	Fields              map[string]FieldText `json:"fields" yaml:"fields"`
	Links               []Link               `json:"links,omitempty" yaml:"links,omitempty"`
}

// FormConfig is the full declarative descriptor for one registration form
// session. It is immutable once loaded.
type FormConfig struct {
	SubmitEndpoint  string                 `json:"submitEndpoint" yaml:"submitEndpoint"`
	RedirectURL     string                 `json:"redirectUrl" yaml:"redirectUrl"`
	DefaultLanguage string                 `json:"defaultLanguage,omitempty" yaml:"defaultLanguage,omitempty"`
	Fields          []FieldSpec            `json:"fields" yaml:"fields"`
	Translations    map[string]Translation `json:"translations" yaml:"translations"`
}

// Field returns the FieldSpec with the given id.
func (c *FormConfig) Field(id string) (FieldSpec, bool) {
	for _, field := range c.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// FieldIDs returns every declared field id in config order.
func (c *FormConfig) FieldIDs() []string {
	ids := make([]string, 0, len(c.Fields))
	for _, field := range c.Fields {
		ids = append(ids, field.ID)
	}
	return ids
}

// Languages lists the language codes the config carries translations for. The
// default language, when declared, sorts first; the rest keep map iteration
// order stabilised alphabetically by the caller if needed.
func (c *FormConfig) Languages() []string {
	langs := make([]string, 0, len(c.Translations))
	if c.DefaultLanguage != "" {
		if _, ok := c.Translations[c.DefaultLanguage]; ok {
			langs = append(langs, c.DefaultLanguage)
		}
	}
	for lang := range c.Translations {
		if lang == c.DefaultLanguage {
			continue
		}
		langs = append(langs, lang)
	}
	return langs
}

// Bundle resolves the Translation for lang, falling back to the default
// language and then to any bundle present so callers always render something.
func (c *FormConfig) Bundle(lang string) (Translation, bool) {
	if t, ok := c.Translations[lang]; ok {
		return t, true
	}
	if c.DefaultLanguage != "" {
		if t, ok := c.Translations[c.DefaultLanguage]; ok {
			return t, true
		}
	}
	for _, t := range c.Translations {
		return t, true
	}
	return Translation{}, false
}
