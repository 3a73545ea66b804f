package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-regform/pkg/formconfig"
)

// Loader implements formconfig.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level regform package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	strict    bool
}

// Ensure the implementation satisfies the public interface.
var _ formconfig.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options formconfig.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		strict:    options.Strict,
	}
}

// Load fetches a config document from the provided source and decodes it.
func (l *Loader) Load(ctx context.Context, src formconfig.Source) (*formconfig.FormConfig, error) {
	if src == nil {
		return nil, errors.New("config loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case formconfig.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case formconfig.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case formconfig.SourceKindURL:
		if !l.allowHTTP {
			return nil, errors.New("config loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("config loader: unsupported source kind")
	}
	if err != nil {
		return nil, err
	}

	return formconfig.Parse(data, l.strict)
}
