package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"carepulse/internal/domain"
	"carepulse/internal/form"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
)

var (
	ErrSubmitInFlight = errors.New("form is already being submitted")
	ErrClosed         = errors.New("form has already been submitted")
	ErrSubmitFailed   = errors.New("form submission failed")
	ErrMissingContext = errors.New("form instance is missing required context")
)

const (
	msgFieldNotEditable = "This field cannot be edited."
	msgUnknownField     = "Unknown field."
	msgInvalidValue     = "Invalid value."
)

type UserBoundary interface {
	CreateUser(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)
	FindUsersByEmail(ctx context.Context, email string) ([]domain.User, error)
}

type PatientBoundary interface {
	RegisterPatient(ctx context.Context, params domain.RegisterPatientParams) (*domain.Patient, error)
}

type AppointmentBoundary interface {
	CreateAppointment(ctx context.Context, params domain.CreateAppointmentParams) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) (*domain.Appointment, error)
}

type Deps struct {
	Registry     *form.Registry
	Validator    *form.Validator
	Users        UserBoundary
	Patients     PatientBoundary
	Appointments AppointmentBoundary
	Logger       *zap.Logger
}

// Options fix what a form instance works on. They cannot change after New.
type Options struct {
	Form      form.Form
	Mode      form.Mode
	UserID    string
	PatientID string
	Existing  *domain.Appointment
	OnSuccess func(Result)
}

type Result struct {
	Navigation Navigation `json:"navigation"`
	Record     any        `json:"record"`
}

// Controller drives one form instance from editing to a terminal submit.
// At most one submit is in flight at a time.
type Controller struct {
	mu sync.Mutex

	opts      Options
	registry  *form.Registry
	ruleset   form.Ruleset
	fields    []form.Descriptor
	renderer  *form.Renderer
	validator *form.Validator
	submit    submitFunc
	logger    *zap.Logger

	initial      form.Values
	values       form.Values
	errors       form.FieldErrors
	state        State
	notification string
	result       *Result
}

func New(opts Options, deps Deps) (*Controller, error) {
	if owner, ok := opts.Mode.Form(); !ok || owner != opts.Form {
		return nil, fmt.Errorf("%w: %q for form %q", form.ErrUnknownMode, opts.Mode, opts.Form)
	}

	ruleset, err := form.SelectRuleset(opts.Mode)
	if err != nil {
		return nil, err
	}

	fields, err := deps.Registry.FieldsFor(opts.Mode)
	if err != nil {
		return nil, err
	}

	submit, err := submitterFor(opts, deps)
	if err != nil {
		return nil, err
	}

	initial, err := deps.Registry.Defaults(opts.Mode)
	if err != nil {
		return nil, err
	}
	if opts.Existing != nil {
		for name, v := range existingValues(opts.Existing) {
			if ruleset.Visible(name) {
				initial[name] = v
			}
		}
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		opts:      opts,
		registry:  deps.Registry,
		ruleset:   ruleset,
		fields:    fields,
		renderer:  form.NewRenderer(deps.Registry),
		validator: deps.Validator,
		submit:    submit,
		logger:    logger.With(zap.String("form", string(opts.Form)), zap.String("mode", string(opts.Mode))),
		initial:   initial,
		values:    initial.Clone(),
		state:     StateEditing,
	}, nil
}

func existingValues(a *domain.Appointment) form.Values {
	values := form.Values{
		"primaryPhysician":   a.PrimaryPhysician,
		"reason":             a.Reason,
		"note":               a.Note,
		"cancellationReason": a.CancellationReason,
	}
	if !a.Schedule.IsZero() {
		values["schedule"] = a.Schedule
	}
	return values
}

func (c *Controller) Mode() form.Mode {
	return c.opts.Mode
}

func (c *Controller) Form() form.Form {
	return c.opts.Form
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Edit sets one field. Only fields editable in the mode are accepted. Editing
// clears the notification of a failed submit.
func (c *Controller) Edit(field string, raw any) error {
	return c.EditMany(map[string]any{field: raw})
}

// EditMany applies every acceptable value and reports the rejected ones.
func (c *Controller) EditMany(raw map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateSucceeded:
		return ErrClosed
	}

	rejected := make(form.FieldErrors)
	for name, value := range raw {
		d, ok := c.registry.Find(c.opts.Form, name)
		if !ok {
			rejected[name] = msgUnknownField
			continue
		}
		if !c.ruleset.Editable(name) {
			rejected[name] = msgFieldNotEditable
			continue
		}

		v, err := form.Coerce(d, value)
		if err != nil {
			c.logger.Debug("rejected field value", zap.String("field", name), zap.Error(err))
			rejected[name] = msgInvalidValue
			continue
		}

		if v == nil {
			delete(c.values, name)
		} else {
			c.values[name] = v
		}
		delete(c.errors, name)
	}

	c.notification = ""

	if len(rejected) > 0 {
		return rejected
	}
	return nil
}

// Submit validates the values with the ruleset of the mode and, when they
// hold, hands them to the boundary. Invalid values never reach the boundary.
// A boundary failure returns the form to editing with the values untouched
// and a notification; it is not retried.
func (c *Controller) Submit(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	case StateSucceeded:
		c.mu.Unlock()
		return nil, ErrClosed
	}

	if errs := c.validator.Validate(c.ruleset, c.values); errs != nil {
		c.errors = errs
		c.state = StateEditing
		c.notification = ""
		c.mu.Unlock()
		return nil, errs
	}

	snapshot := c.values.Clone()
	c.errors = nil
	c.notification = ""
	c.state = StateSubmitting
	c.mu.Unlock()

	result, err := c.submit(ctx, snapshot)

	c.mu.Lock()
	if err != nil {
		msg := notificationFor(err)
		c.state = StateEditing
		c.notification = msg
		c.mu.Unlock()
		c.logger.Error("form submission failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrSubmitFailed, msg)
	}

	c.state = StateSucceeded
	c.values = c.initial.Clone()
	c.result = result
	onSuccess := c.opts.OnSuccess
	c.mu.Unlock()

	c.logger.Info("form submitted", zap.String("navigation", result.Navigation.String()))
	if onSuccess != nil {
		onSuccess(*result)
	}
	return result, nil
}

func (c *Controller) Notification() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notification
}

func notificationFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "The record could not be found. Please try again."
	case errors.Is(err, domain.ErrInvalidFile):
		return "The identification document must be an image or a PDF."
	default:
		return "Something went wrong while saving. Please try again."
	}
}

type Snapshot struct {
	Form         form.Form        `json:"form"`
	Mode         form.Mode        `json:"mode"`
	State        State            `json:"state"`
	Values       form.Values      `json:"values"`
	Errors       form.FieldErrors `json:"errors,omitempty"`
	Notification string           `json:"notification,omitempty"`
	Result       *Result          `json:"result,omitempty"`
	Fields       []*form.Fragment `json:"fields"`
}

// Snapshot copies the observable state and renders every visible field.
func (c *Controller) Snapshot() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := &Snapshot{
		Form:         c.opts.Form,
		Mode:         c.opts.Mode,
		State:        c.state,
		Values:       c.values.Clone(),
		Notification: c.notification,
	}
	if len(c.errors) > 0 {
		snap.Errors = make(form.FieldErrors, len(c.errors))
		for k, v := range c.errors {
			snap.Errors[k] = v
		}
	}
	if c.result != nil {
		r := *c.result
		snap.Result = &r
	}

	for _, d := range c.fields {
		frag, err := c.renderer.Render(d, c.opts.Mode, c.values[d.Name], c.changeFunc(d.Name))
		if err != nil {
			return nil, err
		}
		if frag != nil {
			snap.Fields = append(snap.Fields, frag)
		}
	}

	return snap, nil
}

func (c *Controller) changeFunc(field string) form.ChangeFunc {
	return func(value any) {
		if err := c.Edit(field, value); err != nil {
			c.logger.Debug("change rejected", zap.String("field", field), zap.Error(err))
		}
	}
}
