// Package regform assembles a localized, multi-step registration form flow: a
// declaratively configured form gated behind terms acceptance, enriched with
// device geolocation, persisted as a local draft, and posted to a backend with
// a conditional post-submit redirect. The root package exposes convenience
// constructors; the pieces live under pkg/.
package regform

import (
	"context"

	configloader "github.com/goliatone/go-regform/internal/config/loader"
	internalopenapi "github.com/goliatone/go-regform/internal/openapi"
	"github.com/goliatone/go-regform/pkg/formconfig"
)

// NewConfigLoader constructs a config loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewConfigLoader(options ...formconfig.LoaderOption) formconfig.Loader {
	cfg := formconfig.NewLoaderOptions(options...)
	return configloader.New(cfg)
}

// FieldsFromOpenAPI derives the field list for a config from an OpenAPI
// operation's request body, so the structure can be authored in a schema a
// team already maintains. Translations still come from the regform config
// document.
func FieldsFromOpenAPI(ctx context.Context, document []byte, operationID string) ([]formconfig.FieldSpec, error) {
	return internalopenapi.Fields(ctx, document, operationID)
}
