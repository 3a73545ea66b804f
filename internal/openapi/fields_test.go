package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/formconfig"
)

const registrationSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "Registration", "version": "1.0.0"},
  "paths": {
    "/register": {
      "post": {
        "operationId": "registerVisitor",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["name", "phone"],
                "properties": {
                  "name": {"type": "string"},
                  "phone": {"type": "string", "format": "tel"},
                  "email": {"type": "string", "format": "email"},
                  "dob": {"type": "string", "format": "date"},
                  "guests": {"type": "integer", "minimum": 0, "maximum": 10},
                  "gender": {"type": "string", "enum": ["female", "male", "other"]},
                  "gender_other": {
                    "type": "string",
                    "x-regform-show-when": {"fieldId": "gender", "hasValue": "other"}
                  }
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func float(v float64) *float64 { return &v }

func TestFields_FromRequestBody(t *testing.T) {
	got, err := Fields(context.Background(), []byte(registrationSpec), "registerVisitor")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}

	want := []formconfig.FieldSpec{
		{ID: "dob", Type: formconfig.FieldTypeDate},
		{ID: "email", Type: formconfig.FieldTypeEmail},
		{ID: "gender", Type: formconfig.FieldTypeSelect},
		{ID: "gender_other", Type: formconfig.FieldTypeText, ShowWhen: &formconfig.ShowWhen{FieldID: "gender", HasValue: "other"}},
		{ID: "guests", Type: formconfig.FieldTypeNumber, Min: float(0), Max: float(10)},
		{ID: "name", Type: formconfig.FieldTypeText, Required: true},
		{ID: "phone", Type: formconfig.FieldTypeTel, Required: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_UnknownOperation(t *testing.T) {
	if _, err := Fields(context.Background(), []byte(registrationSpec), "nope"); err == nil {
		t.Fatalf("expected error for unknown operation")
	}
}

func TestFields_MissingOperationID(t *testing.T) {
	if _, err := Fields(context.Background(), []byte(registrationSpec), ""); err == nil {
		t.Fatalf("expected error for empty operation id")
	}
}

func TestFields_EmptyDocument(t *testing.T) {
	if _, err := Fields(context.Background(), nil, "registerVisitor"); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestFields_NestedSchemaRejected(t *testing.T) {
	nested := `{
  "openapi": "3.0.3",
  "info": {"title": "Registration", "version": "1.0.0"},
  "paths": {
    "/register": {
      "post": {
        "operationId": "registerVisitor",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "address": {"type": "object", "properties": {"line1": {"type": "string"}}}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`
	if _, err := Fields(context.Background(), []byte(nested), "registerVisitor"); err == nil {
		t.Fatalf("nested objects must be rejected")
	}
}

func TestFields_ShowWhenMissingFieldID(t *testing.T) {
	broken := `{
  "openapi": "3.0.3",
  "info": {"title": "Registration", "version": "1.0.0"},
  "paths": {
    "/register": {
      "post": {
        "operationId": "registerVisitor",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "extra": {"type": "string", "x-regform-show-when": {"hasValue": "other"}}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`
	if _, err := Fields(context.Background(), []byte(broken), "registerVisitor"); err == nil {
		t.Fatalf("showWhen without fieldId must be rejected")
	}
}
