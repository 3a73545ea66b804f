// Package gotemplate adapts a pongo2-backed template set to the
// template.TemplateRenderer seam.
package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-regform/pkg/render/template"
)

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	baseDir    string
	templates  fs.FS
	extension  string
	globalData map[string]any
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobalData seeds global context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// WithGoTemplateOptions exists for backward compatibility with earlier
// versions of this adapter but is currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

// Engine satisfies template.TemplateRenderer using a pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	globals     pongo2.Context
	tplExt      string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		extension: ".tpl",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("regform", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
	}

	if err := engine.GlobalContext(cfg.globalData); err != nil {
		return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
	}
	return engine, nil
}

// Render resolves and executes a named template.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	return e.execute(tpl, data, out...)
}

// RenderString executes an inline template.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tpl, data, out...)
}

// RegisterFilter exposes a custom filter to every template in the set.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if name = strings.TrimSpace(name); name == "" {
		return errors.New("gotemplate: filter name is required")
	}
	if fn == nil {
		return errors.New("gotemplate: filter func is required")
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		result, err := fn(in.Interface(), param.Interface())
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges values into the context shared by every render.
func (e *Engine) GlobalContext(data any) error {
	if data == nil {
		return nil
	}
	values, ok := data.(map[string]any)
	if !ok {
		return errors.New("gotemplate: global context must be a map[string]any")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.globals == nil {
		e.globals = make(pongo2.Context, len(values))
	}
	for key, value := range values {
		e.globals[key] = value
	}
	return nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	if !strings.HasSuffix(name, e.tplExt) {
		name += e.tplExt
	}

	e.mu.RLock()
	tpl, ok := e.templates[name]
	e.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := e.templateSet.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", name, err)
	}

	e.mu.Lock()
	e.templates[name] = tpl
	e.mu.Unlock()
	return tpl, nil
}

func (e *Engine) execute(tpl *pongo2.Template, data any, out ...io.Writer) (string, error) {
	ctx := make(pongo2.Context)

	e.mu.RLock()
	for key, value := range e.globals {
		ctx[key] = value
	}
	e.mu.RUnlock()

	switch typed := data.(type) {
	case nil:
	case pongo2.Context:
		for key, value := range typed {
			ctx[key] = value
		}
	case map[string]any:
		for key, value := range typed {
			ctx[key] = value
		}
	default:
		ctx["data"] = typed
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute template: %w", err)
	}

	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}
