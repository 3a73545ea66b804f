package visibility

import (
	"testing"

	"github.com/goliatone/go-regform/pkg/formconfig"
)

func TestDefault_NoRuleAlwaysVisible(t *testing.T) {
	eval := Default()
	field := formconfig.FieldSpec{ID: "name"}

	if !eval.Visible(field, nil) {
		t.Fatalf("field without showWhen should be visible")
	}
}

func TestDefault_EqualityRule(t *testing.T) {
	eval := Default()
	field := formconfig.FieldSpec{
		ID:       "gender_other",
		ShowWhen: &formconfig.ShowWhen{FieldID: "gender", HasValue: "other"},
	}

	if eval.Visible(field, map[string]string{"gender": "female"}) {
		t.Fatalf("should be hidden while controlling value differs")
	}
	if !eval.Visible(field, map[string]string{"gender": "other"}) {
		t.Fatalf("should be visible when controlling value matches")
	}
	if eval.Visible(field, map[string]string{}) {
		t.Fatalf("unset controlling value should hide the field")
	}
}

func TestEvaluatorFunc(t *testing.T) {
	calls := 0
	eval := EvaluatorFunc(func(formconfig.FieldSpec, map[string]string) bool {
		calls++
		return false
	})
	if eval.Visible(formconfig.FieldSpec{}, nil) {
		t.Fatalf("expected false")
	}
	if calls != 1 {
		t.Fatalf("function not invoked")
	}
}
