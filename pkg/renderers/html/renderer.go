// Package html renders a localized form view to a standalone HTML document.
// It is a preview/static surface: the interactive flow lives in pkg/tui, but
// config authors use this output to see exactly what a language bundle
// produces.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

const templateName = "form.html"

// Option customises the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits HTML for a FormView.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS), gotemplate.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("html renderer: template engine: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates: templates,
		// Translation bundles are remote content; strip any markup before it
		// reaches the page.
		policy: bluemonday.StrictPolicy(),
	}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "html" }

// ContentType reports the output MIME type.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render produces the HTML document for the supplied view.
func (r *Renderer) Render(ctx context.Context, view render.FormView, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]any{
		"language":           view.Language,
		"page_title":         r.sanitize(view.Text.PageTitle),
		"page_subtitle":      r.sanitize(view.Text.PageSubtitle),
		"card_title":         r.sanitize(view.Text.CardTitle),
		"submit_button_text": r.sanitize(view.Text.SubmitButtonText),
		"submit_endpoint":    view.SubmitEndpoint,
		"disabled":           view.Disabled,
		"fields":             r.fieldContexts(view),
		"links":              r.linkContexts(view),
		"hidden_fields":      hiddenContexts(options.HiddenFields),
		"css_vars":           cssVarsStyle(options.Theme),
	}

	output, err := r.templates.Render(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render form: %w", err)
	}
	return []byte(output), nil
}

func (r *Renderer) fieldContexts(view render.FormView) []map[string]any {
	fields := make([]map[string]any, 0, len(view.Fields))
	for _, field := range view.Fields {
		entry := map[string]any{
			"id":          field.Spec.ID,
			"type":        string(field.Spec.Type),
			"required":    field.Spec.Required,
			"label":       r.sanitize(field.Text.Label),
			"placeholder": r.sanitize(field.Text.Placeholder),
			"value":       field.Value,
		}
		if field.Spec.Min != nil {
			entry["min"] = *field.Spec.Min
		}
		if field.Spec.Max != nil {
			entry["max"] = *field.Spec.Max
		}
		if len(field.Text.Options) > 0 {
			options := make([]map[string]string, 0, len(field.Text.Options))
			for _, option := range field.Text.Options {
				options = append(options, map[string]string{
					"value": option.Value,
					"label": r.sanitize(option.Label),
				})
			}
			entry["options"] = options
		}
		fields = append(fields, entry)
	}
	return fields
}

func (r *Renderer) linkContexts(view render.FormView) []map[string]string {
	if len(view.Links) == 0 {
		return nil
	}
	links := make([]map[string]string, 0, len(view.Links))
	for _, link := range view.Links {
		links = append(links, map[string]string{
			"text": r.sanitize(link.Text),
			"url":  link.URL,
		})
	}
	return links
}

func (r *Renderer) sanitize(text string) string {
	return strings.TrimSpace(r.policy.Sanitize(text))
}

func hiddenContexts(fields map[string]string) []map[string]string {
	sorted := render.SortedHiddenFields(fields)
	if len(sorted) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
