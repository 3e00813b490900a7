// Package formflow re-exports the pieces of the form pipeline most callers
// need: template schemas, the session controller, the collaborator client, and
// the sanitized output renderer. Subpackages under pkg/ remain importable
// directly when finer control is needed.
package formflow

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/goliatone/go-formflow/internal/schemaloader"
	"github.com/goliatone/go-formflow/pkg/client"
	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/output"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Template aliases the schema template type for convenience.
type Template = schema.Template

// Field aliases the schema field type.
type Field = schema.Field

// Formula aliases the calculated-field formula descriptor.
type Formula = schema.Formula

// Result aliases the generation result consumed by the output renderer.
type Result = output.Result

// Controller aliases the form session controller.
type Controller = controller.Controller

// NewClient constructs a collaborator client; an empty base URL selects the
// local development address.
func NewClient(baseURL string, options ...client.Option) *client.Client {
	return client.New(baseURL, options...)
}

// NewController constructs a form controller over the given collaborator.
func NewController(api controller.Service, options ...controller.Option) *controller.Controller {
	return controller.New(api, options...)
}

// LoadTemplates reads and decodes a template document from a file or URL
// source. Validation happens in schema.NewRegistry; this only fetches and
// parses.
func LoadTemplates(ctx context.Context, src schema.Source) ([]schema.Template, error) {
	loader := schemaloader.New(schemaloader.Options{HTTPClient: http.DefaultClient})
	return loader.Load(ctx, src)
}

// LoadTemplatesFS reads and decodes a template document embedded in an fs.FS.
func LoadTemplatesFS(ctx context.Context, fsys fs.FS, name string) ([]schema.Template, error) {
	loader := schemaloader.New(schemaloader.Options{FileSystem: fsys})
	return loader.Load(ctx, schema.SourceFromFS(name))
}

// RenderResult produces the sanitized HTML view of a generation result.
func RenderResult(result output.Result) (string, error) {
	return output.Render(result)
}
