// Package render turns a loaded form config plus current session state into
// renderer-agnostic views. BuildView applies the language bundle and the
// visibility rules; a Registry maps output format names to Renderer
// implementations such as the HTML renderer under pkg/renderers.
package render
