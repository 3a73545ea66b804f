package formconfig

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validConfig() *FormConfig {
	return &FormConfig{
		SubmitEndpoint:  "https://api.example.com/register",
		DefaultLanguage: "en",
		Fields: []FieldSpec{
			{ID: "name", Type: FieldTypeText, Required: true},
			{ID: "gender", Type: FieldTypeSelect},
			{ID: "gender_other", Type: FieldTypeText, ShowWhen: &ShowWhen{FieldID: "gender", HasValue: "other"}},
		},
		Translations: map[string]Translation{
			"en": {
				Fields: map[string]FieldText{
					"name":         {Label: "Name"},
					"gender":       {Label: "Gender"},
					"gender_other": {Label: "Please specify"},
				},
			},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(true); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidate_MissingEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.SubmitEndpoint = "  "
	if err := cfg.Validate(false); err == nil {
		t.Fatalf("expected error for missing submitEndpoint")
	}
}

func TestValidate_NoFields(t *testing.T) {
	cfg := validConfig()
	cfg.Fields = nil
	if err := cfg.Validate(false); err == nil {
		t.Fatalf("expected error for empty fields")
	}
}

func TestValidate_NoTranslations(t *testing.T) {
	cfg := validConfig()
	cfg.Translations = nil
	if err := cfg.Validate(false); err == nil {
		t.Fatalf("expected error for empty translations")
	}
}

func TestValidate_DefaultLanguageWithoutBundle(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultLanguage = "fr"
	err := cfg.Validate(false)
	if err == nil || !strings.Contains(err.Error(), "fr") {
		t.Fatalf("expected defaultLanguage error, got %v", err)
	}
}

func TestValidate_DuplicateFieldID(t *testing.T) {
	cfg := validConfig()
	cfg.Fields = append(cfg.Fields, FieldSpec{ID: "name", Type: FieldTypeText})
	err := cfg.Validate(false)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestValidate_EmptyFieldID(t *testing.T) {
	cfg := validConfig()
	cfg.Fields[0].ID = " "
	if err := cfg.Validate(false); err == nil {
		t.Fatalf("expected error for empty field id")
	}
}

func TestValidate_DanglingShowWhen(t *testing.T) {
	cfg := validConfig()
	cfg.Fields[2].ShowWhen.FieldID = "missing"
	err := cfg.Validate(false)
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("expected dangling showWhen error, got %v", err)
	}
}

func TestProblems_ReportsTranslationGaps(t *testing.T) {
	cfg := validConfig()
	cfg.Translations["hi"] = Translation{Fields: map[string]FieldText{"name": {Label: "नाम"}}}

	got := cfg.Problems()
	want := []string{
		`translation "hi" missing field "gender"`,
		`translation "hi" missing field "gender_other"`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("problems mismatch (-want +got):\n%s", diff)
	}
}

func TestProblems_CompleteConfig(t *testing.T) {
	if problems := validConfig().Problems(); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}
