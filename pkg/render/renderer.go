package render

import (
	"context"

	theme "github.com/goliatone/go-theme"
)

// Renderer converts a FormView into a byte representation (HTML for the
// built-in renderer).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view FormView, options RenderOptions) ([]byte, error)
}

// RenderOptions describe per-request data renderers can use to customise
// output without mutating the view pipeline.
type RenderOptions struct {
	// HiddenFields are emitted as hidden inputs alongside the visible fields;
	// the session identifier travels this way.
	HiddenFields map[string]string

	// Theme carries resolved theme tokens and CSS variables. Nil renders with
	// the renderer's defaults.
	Theme *theme.RendererConfig
}
