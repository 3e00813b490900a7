// Package schemaloader fetches and decodes template documents from files,
// fs.FS entries, or HTTP endpoints. Documents may be JSON or YAML, either a
// bare template list or the listing collaborator's {"forms": [...]} envelope.
package schemaloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Options configures a Loader.
type Options struct {
	FileSystem fs.FS
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Loader resolves schema.Source values into decoded template lists.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// New constructs a Loader. An absent HTTP client disables URL sources.
func New(opts Options) *Loader {
	client := opts.HTTPClient
	if client != nil && opts.Timeout > 0 && client.Timeout == 0 {
		clone := *client
		clone.Timeout = opts.Timeout
		client = &clone
	}
	return &Loader{
		fs:      opts.FileSystem,
		http:    client,
		timeout: opts.Timeout,
	}
}

// Load fetches the document behind src and decodes it into templates. The
// templates are returned as-is; validation belongs to schema.NewRegistry.
func (l *Loader) Load(ctx context.Context, src schema.Source) ([]schema.Template, error) {
	if src == nil {
		return nil, errors.New("schemaloader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindURL:
		if l.http == nil {
			return nil, errors.New("schemaloader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("schemaloader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// listingEnvelope mirrors the template listing response shape.
type listingEnvelope struct {
	Forms []schema.Template `json:"forms" yaml:"forms"`
}

// Decode parses a template document. JSON is tried first, then YAML; both
// accept the {"forms": [...]} envelope or a bare template array.
func Decode(data []byte) ([]schema.Template, error) {
	if len(data) == 0 {
		return nil, errors.New("schemaloader: empty document")
	}

	var envelope listingEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Forms) > 0 {
		return envelope.Forms, nil
	}
	var jsonList []schema.Template
	if err := json.Unmarshal(data, &jsonList); err == nil && len(jsonList) > 0 {
		return jsonList, nil
	}

	if err := yaml.Unmarshal(data, &envelope); err == nil && len(envelope.Forms) > 0 {
		return envelope.Forms, nil
	}
	var yamlList []schema.Template
	if err := yaml.Unmarshal(data, &yamlList); err != nil {
		return nil, fmt.Errorf("schemaloader: decode document: %w", err)
	}
	if len(yamlList) == 0 {
		return nil, errors.New("schemaloader: document contains no templates")
	}
	return yamlList, nil
}
