package regform

import (
	"testing"

	"github.com/goliatone/go-regform/pkg/formconfig"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func TestNewConfigLoader_LoadsFixture(t *testing.T) {
	loader := NewConfigLoader()

	cfg, err := loader.Load(testsupport.Context(), formconfig.SourceFromFile("testdata/form.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := testsupport.LoadConfig(t, "testdata/form.json")
	if diff := testsupport.CompareGolden(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.DefaultLanguage != "en" {
		t.Fatalf("unexpected default language: %s", cfg.DefaultLanguage)
	}
	if len(cfg.Languages()) != 2 {
		t.Fatalf("unexpected languages: %v", cfg.Languages())
	}
}

func TestFieldsFromOpenAPI(t *testing.T) {
	document := []byte(`{
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
                "required": ["name"],
                "properties": {
                  "name": {"type": "string"},
                  "phone": {"type": "string", "format": "tel"}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`)

	fields, err := FieldsFromOpenAPI(testsupport.Context(), document, "registerVisitor")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].ID != "name" || !fields[0].Required {
		t.Fatalf("unexpected first field: %+v", fields[0])
	}
	if fields[1].Type != formconfig.FieldTypeTel {
		t.Fatalf("unexpected second field: %+v", fields[1])
	}
}
