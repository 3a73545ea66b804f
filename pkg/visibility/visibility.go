// Package visibility decides whether a conditionally-shown field is currently
// visible. A hidden field is skipped at render time and exempt from
// validation entirely.
package visibility

import "github.com/goliatone/go-regform/pkg/formconfig"

// Evaluator determines whether a field should be visible given the current
// form values. The default equality evaluator implements the ShowWhen
// contract; callers can inject richer rules.
type Evaluator interface {
	Visible(field formconfig.FieldSpec, values map[string]string) bool
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(field formconfig.FieldSpec, values map[string]string) bool

// Visible delegates to the underlying function.
func (fn EvaluatorFunc) Visible(field formconfig.FieldSpec, values map[string]string) bool {
	return fn(field, values)
}

// Default returns the equality evaluator: a field without a ShowWhen rule is
// always visible; one with a rule is visible only while the controlling
// field's current value equals the required value.
func Default() Evaluator {
	return EvaluatorFunc(func(field formconfig.FieldSpec, values map[string]string) bool {
		if field.ShowWhen == nil {
			return true
		}
		return values[field.ShowWhen.FieldID] == field.ShowWhen.HasValue
	})
}
