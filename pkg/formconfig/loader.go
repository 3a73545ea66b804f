package formconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader fetches and decodes form config documents from different sources
// (filesystem, fs.FS, HTTP). The document is fetched once per session: there
// is no retry and no cross-session caching.
type Loader interface {
	Load(ctx context.Context, src Source) (*FormConfig, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading from an abstract filesystem; defaults to the
	// operating system if nil.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Nil means HTTP sources are disabled unless AllowHTTPFallback
	// is true.
	HTTPClient *http.Client

	// AllowHTTPFallback toggles a default HTTP client when none is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// Strict makes the loader fail on translation bundles that are missing
	// entries for declared fields. The lenient default logs nothing here and
	// leaves renderers to silently skip such fields.
	Strict bool
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote config documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading using a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithStrictValidation makes missing translation entries a load error instead
// of a silently skipped field.
func WithStrictValidation() LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Strict = true
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Parse decodes a raw config document. JSON is attempted first, then YAML, so
// a single loader path serves both formats.
func Parse(data []byte, strict bool) (*FormConfig, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formconfig: document is empty")
	}

	var cfg FormConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			return nil, fmt.Errorf("formconfig: parse document: invalid JSON or YAML")
		}
	}

	if err := cfg.Validate(strict); err != nil {
		return nil, err
	}
	return &cfg, nil
}
