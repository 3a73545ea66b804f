// Package openapi derives regform field specs from an OpenAPI operation's
// request body, so teams can author the field list in a schema they already
// maintain while keeping translations in the regform config document.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/formconfig"
)

// showWhenExtensionKey marks a property with a conditional-visibility rule:
// `x-regform-show-when: {fieldId: gender, hasValue: other}`.
const showWhenExtensionKey = "x-regform-show-when"

// Fields extracts the FieldSpec list for operationID from a raw OpenAPI
// document. Properties are flattened in name order; nested objects and arrays
// are rejected; the registration form model is flat.
func Fields(ctx context.Context, raw []byte, operationID string) ([]formconfig.FieldSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	if operationID == "" {
		return nil, errors.New("openapi: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	schema := requestBodySchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}

	return fieldsFromSchema(schema)
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Patch,
		} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestBodySchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldsFromSchema(schema *openapi3.Schema) ([]formconfig.FieldSpec, error) {
	if schema == nil || len(schema.Properties) == 0 {
		return nil, errors.New("openapi: request body schema has no properties")
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]formconfig.FieldSpec, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("openapi: property %q has no resolved schema", name)
		}
		field, err := fieldFromProperty(name, ref.Value)
		if err != nil {
			return nil, err
		}
		_, field.Required = required[name]
		fields = append(fields, field)
	}
	return fields, nil
}

func fieldFromProperty(name string, prop *openapi3.Schema) (formconfig.FieldSpec, error) {
	field := formconfig.FieldSpec{ID: name}

	switch {
	case len(prop.Enum) > 0:
		field.Type = formconfig.FieldTypeSelect
	case prop.Type.Is(openapi3.TypeInteger) || prop.Type.Is(openapi3.TypeNumber):
		field.Type = formconfig.FieldTypeNumber
	case prop.Type.Is(openapi3.TypeString):
		field.Type = fieldTypeFromFormat(prop.Format)
	case prop.Type.Is(openapi3.TypeObject) || prop.Type.Is(openapi3.TypeArray):
		return formconfig.FieldSpec{}, fmt.Errorf("openapi: property %q: nested schemas are not supported", name)
	default:
		field.Type = formconfig.FieldTypeText
	}

	if prop.Min != nil {
		value := *prop.Min
		field.Min = &value
	}
	if prop.Max != nil {
		value := *prop.Max
		field.Max = &value
	}

	showWhen, err := showWhenFromExtensions(name, prop.Extensions)
	if err != nil {
		return formconfig.FieldSpec{}, err
	}
	field.ShowWhen = showWhen

	return field, nil
}

func fieldTypeFromFormat(format string) formconfig.FieldType {
	switch format {
	case "email":
		return formconfig.FieldTypeEmail
	case "date":
		return formconfig.FieldTypeDate
	case "tel", "phone":
		return formconfig.FieldTypeTel
	default:
		return formconfig.FieldTypeText
	}
}

func showWhenFromExtensions(name string, extensions map[string]any) (*formconfig.ShowWhen, error) {
	raw, ok := extensions[showWhenExtensionKey]
	if !ok {
		return nil, nil
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("openapi: property %q: %s must be an object", name, showWhenExtensionKey)
	}

	fieldID, _ := payload["fieldId"].(string)
	hasValue, _ := payload["hasValue"].(string)
	if fieldID == "" {
		return nil, fmt.Errorf("openapi: property %q: %s is missing fieldId", name, showWhenExtensionKey)
	}
	return &formconfig.ShowWhen{FieldID: fieldID, HasValue: hasValue}, nil
}
