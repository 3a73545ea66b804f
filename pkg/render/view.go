package render

import (
	"errors"

	"github.com/goliatone/go-regform/pkg/formconfig"
	"github.com/goliatone/go-regform/pkg/visibility"
)

// FieldView pairs a field's structure with its localized text and current
// value, ready for a renderer to emit.
type FieldView struct {
	Spec  formconfig.FieldSpec
	Text  formconfig.FieldText
	Value string
}

// FormView is the renderer input: the localized, visibility-filtered snapshot
// of one form in one language.
type FormView struct {
	Language       string
	Text           formconfig.Translation
	SubmitEndpoint string
	Fields         []FieldView
	Links          []formconfig.Link
	Disabled       bool
}

// BuildView assembles a FormView for the given language and state. Fields
// whose ShowWhen condition is unmet are excluded, as are fields the selected
// translation bundle carries no text for (they are silently skipped, matching
// the original client's behaviour).
func BuildView(cfg *formconfig.FormConfig, lang string, state map[string]string, eval visibility.Evaluator, disabled bool) (FormView, error) {
	if cfg == nil {
		return FormView{}, errors.New("render: config is nil")
	}
	if eval == nil {
		eval = visibility.Default()
	}

	bundle, ok := cfg.Bundle(lang)
	if !ok {
		return FormView{}, errors.New("render: no translation bundle available")
	}

	view := FormView{
		Language:       lang,
		Text:           bundle,
		SubmitEndpoint: cfg.SubmitEndpoint,
		Links:          append([]formconfig.Link(nil), bundle.Links...),
		Disabled:       disabled,
	}

	for _, field := range cfg.Fields {
		if !eval.Visible(field, state) {
			continue
		}
		text, ok := bundle.Fields[field.ID]
		if !ok {
			continue
		}
		view.Fields = append(view.Fields, FieldView{
			Spec:  field,
			Text:  text,
			Value: state[field.ID],
		})
	}
	return view, nil
}
