package controller

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/client"
	"github.com/goliatone/go-formflow/pkg/formula"
	"github.com/goliatone/go-formflow/pkg/output"
	"github.com/goliatone/go-formflow/pkg/payload"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/values"
)

// Service is the collaborator surface the controller depends on. *client.Client
// satisfies it; tests substitute fakes.
type Service interface {
	ListTemplates(ctx context.Context) ([]schema.Template, error)
	Generate(ctx context.Context, request client.GenerateRequest) (*output.Result, error)
}

// Phase is the controller's lifecycle state.
type Phase string

const (
	PhaseNoTemplate     Phase = "no_template"
	PhaseTemplateActive Phase = "template_active"
	PhaseSubmitting     Phase = "submitting"
	PhaseResultReady    Phase = "result_ready"
	PhaseSubmitFailed   Phase = "submit_failed"
)

// Controller orchestrates the flat two-step flow: template selection, field
// editing with reactive calculated values, and submission to the generation
// collaborator. All methods run on the owner's goroutine; there is no internal
// locking because there is no concurrent writer.
type Controller struct {
	api     Service
	reg     *schema.Registry
	issues  []error
	store   *values.Store
	current *schema.Template

	phase   Phase
	result  *output.Result
	message string

	inFlight context.CancelFunc
}

// New constructs a controller around the collaborator service.
func New(api Service, options ...Option) *Controller {
	c := &Controller{
		api:   api,
		phase: PhaseNoTemplate,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Phase reports the current lifecycle state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Result returns the latest generation result, if any.
func (c *Controller) Result() *output.Result {
	return c.result
}

// Message returns the human-readable error message attached to the current
// state, empty when the last operation succeeded.
func (c *Controller) Message() string {
	return c.message
}

// SchemaIssues lists the *schema.SchemaError values for templates excluded
// during loading.
func (c *Controller) SchemaIssues() []error {
	return c.issues
}

// Templates returns the selectable templates. Empty until LoadTemplates
// succeeds.
func (c *Controller) Templates() []schema.Template {
	return c.reg.Templates()
}

// LoadTemplates fetches and validates the template listing. A transport
// failure leaves the controller in PhaseNoTemplate with a user-facing message;
// malformed templates are dropped individually and reported via SchemaIssues.
func (c *Controller) LoadTemplates(ctx context.Context) error {
	templates, err := c.api.ListTemplates(ctx)
	if err != nil {
		if client.IsAborted(err) {
			return nil
		}
		c.message = "Could not load form templates. Check the service address and try again."
		return err
	}

	c.reg, c.issues = schema.NewRegistry(templates)
	c.message = ""
	return nil
}

// SelectTemplate activates a template with a freshly initialized value store.
// Re-selecting (even the same id) never merges stale values; distinct
// templates may reuse field keys with different semantics. Any in-flight
// submission is aborted first.
func (c *Controller) SelectTemplate(id string) error {
	template, err := c.reg.TemplateByID(id)
	if err != nil {
		return err
	}
	c.Abort()
	c.current = &template
	c.store = values.NewStore(template)
	c.result = nil
	c.message = ""
	c.phase = PhaseTemplateActive
	return nil
}

// Template returns the active template, if one is selected.
func (c *Controller) Template() (schema.Template, bool) {
	if c.current == nil {
		return schema.Template{}, false
	}
	return *c.current, true
}

// Store exposes the active value store for read access; mutate through the
// controller so state transitions stay consistent.
func (c *Controller) Store() *values.Store {
	return c.store
}

// SetField writes one field value and re-enters PhaseTemplateActive when the
// user edits after a result or a failed submit.
func (c *Controller) SetField(key string, value any) error {
	if err := c.requireTemplate(); err != nil {
		return err
	}
	if err := c.store.Set(key, value); err != nil {
		return err
	}
	c.touch()
	return nil
}

// SetItemField updates a sub-field of one repeater item in place.
func (c *Controller) SetItemField(key string, index int, subKey string, value any) error {
	if err := c.requireTemplate(); err != nil {
		return err
	}
	if err := c.store.SetItemField(key, index, subKey, value); err != nil {
		return err
	}
	c.touch()
	return nil
}

// AppendItem adds a default-populated repeater item and returns its index.
func (c *Controller) AppendItem(key string) (int, error) {
	if err := c.requireTemplate(); err != nil {
		return 0, err
	}
	index, err := c.store.AppendItem(key)
	if err != nil {
		return 0, err
	}
	c.touch()
	return index, nil
}

// RemoveItem drops one repeater item by index.
func (c *Controller) RemoveItem(key string, index int) error {
	if err := c.requireTemplate(); err != nil {
		return err
	}
	if err := c.store.RemoveItem(key, index); err != nil {
		return err
	}
	c.touch()
	return nil
}

// AddTypedItem creates the chip-driven item for typeValue; at most one item
// per type value exists.
func (c *Controller) AddTypedItem(key, typeValue string) error {
	if err := c.requireTemplate(); err != nil {
		return err
	}
	if err := c.store.AddTypedItem(key, typeValue); err != nil {
		return err
	}
	c.touch()
	return nil
}

// RemoveTypedItem removes the item whose type matches typeValue.
func (c *Controller) RemoveTypedItem(key, typeValue string) error {
	if err := c.requireTemplate(); err != nil {
		return err
	}
	if err := c.store.RemoveTypedItem(key, typeValue); err != nil {
		return err
	}
	c.touch()
	return nil
}

// CalculatedValue derives a calculated field's display string on demand.
// Values are recomputed on every read rather than cached, so the display can
// never go stale.
func (c *Controller) CalculatedValue(key string) string {
	if c.store == nil {
		return ""
	}
	field, ok := c.store.Field(key)
	if !ok || field.Kind != schema.FieldKindCalculated {
		return ""
	}
	return formula.Evaluate(field.Formula, c.store.Get)
}

// Payload produces the submission payload: calculated fields are evaluated
// into the snapshot, then the whole map is sanitized.
func (c *Controller) Payload() map[string]any {
	if c.current == nil || c.store == nil {
		return nil
	}
	snapshot := c.store.Snapshot()
	for _, field := range c.current.Fields() {
		if field.Kind == schema.FieldKindCalculated {
			snapshot[field.Key] = formula.Evaluate(field.Formula, c.store.Get)
		}
	}
	return payload.Sanitize(snapshot, c.current.FieldKinds())
}

// Submit sanitizes the current values and sends them to the generation
// collaborator. Requires an active template (*ValidationError otherwise) and
// refuses to start while another submission is in flight (ErrSubmitInFlight).
// A cancelled request is a no-op: the controller returns to
// PhaseTemplateActive without an error message. Transport failures and non-2xx
// responses move to PhaseSubmitFailed with a generic message; entered values
// survive for retry.
func (c *Controller) Submit(ctx context.Context) error {
	if c.phase == PhaseSubmitting {
		return ErrSubmitInFlight
	}
	if c.current == nil {
		c.message = "Select a form template before submitting."
		return &ValidationError{Message: c.message}
	}

	body := client.GenerateRequest{
		FormType:   c.current.ID,
		FormData:   c.Payload(),
		Applicants: []client.Applicant{},
	}

	reqCtx, cancel := context.WithCancel(ctx)
	c.inFlight = cancel
	c.phase = PhaseSubmitting
	c.message = ""

	result, err := c.api.Generate(reqCtx, body)
	cancel()
	c.inFlight = nil

	if err != nil {
		if client.IsAborted(err) {
			c.phase = PhaseTemplateActive
			return nil
		}
		c.phase = PhaseSubmitFailed
		c.message = "Document generation failed. Your entries were kept; please try again."
		return fmt.Errorf("controller: submit: %w", err)
	}

	c.result = result
	c.phase = PhaseResultReady
	return nil
}

// Abort cancels any in-flight submission. Safe to call at any time; used when
// the form is dismissed or a new submission supersedes a stale one.
func (c *Controller) Abort() {
	if c.inFlight != nil {
		c.inFlight()
		c.inFlight = nil
	}
	if c.phase == PhaseSubmitting {
		c.phase = PhaseTemplateActive
	}
}

func (c *Controller) requireTemplate() error {
	if c.current == nil {
		return &ValidationError{Message: "no template selected"}
	}
	return nil
}

// touch re-enters the editing state after edits that follow a result or a
// failure, keeping the state machine honest without clearing entered values.
func (c *Controller) touch() {
	if c.phase == PhaseResultReady || c.phase == PhaseSubmitFailed {
		c.phase = PhaseTemplateActive
	}
}
