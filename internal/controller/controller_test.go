package controller

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"carepulse/internal/domain"
	"carepulse/internal/form"
)

type fakeUsers struct {
	mu        sync.Mutex
	byEmail   map[string]domain.User
	createErr error
	calls     int
}

func (f *fakeUsers) CreateUser(_ context.Context, p domain.CreateUserParams) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[p.Email]; ok {
		return nil, domain.ErrConflict
	}
	u := domain.User{ID: "user-new", Name: p.Name, Email: p.Email, Phone: p.Phone}
	f.byEmail[p.Email] = u
	return &u, nil
}

func (f *fakeUsers) FindUsersByEmail(_ context.Context, email string) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return []domain.User{u}, nil
	}
	return nil, nil
}

type fakePatients struct {
	calls []domain.RegisterPatientParams
	err   error
}

func (f *fakePatients) RegisterPatient(_ context.Context, p domain.RegisterPatientParams) (*domain.Patient, error) {
	f.calls = append(f.calls, p)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Patient{ID: "patient-1", UserID: p.UserID, Name: p.Name}, nil
}

type fakeAppointments struct {
	mu      sync.Mutex
	created []domain.CreateAppointmentParams
	updates []map[string]any
	err     error
	emptyID bool
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeAppointments) CreateAppointment(_ context.Context, p domain.CreateAppointmentParams) (*domain.Appointment, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	if f.err != nil {
		return nil, f.err
	}
	if f.emptyID {
		return &domain.Appointment{}, nil
	}
	return &domain.Appointment{ID: "appt-42", Status: p.Status, PrimaryPhysician: p.PrimaryPhysician}, nil
}

func (f *fakeAppointments) UpdateAppointment(_ context.Context, id string, u domain.AppointmentUpdate) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u.Payload())
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Appointment{ID: id}, nil
}

func (f *fakeAppointments) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created) + len(f.updates)
}

type fixture struct {
	users        *fakeUsers
	patients     *fakePatients
	appointments *fakeAppointments
	deps         Deps
}

func newFixture() *fixture {
	reg := form.Default()
	f := &fixture{
		users:        &fakeUsers{byEmail: map[string]domain.User{}},
		patients:     &fakePatients{},
		appointments: &fakeAppointments{},
	}
	f.deps = Deps{
		Registry:     reg,
		Validator:    form.NewValidator(reg),
		Users:        f.users,
		Patients:     f.patients,
		Appointments: f.appointments,
		Logger:       zap.NewNop(),
	}
	return f
}

func (f *fixture) controller(t *testing.T, opts Options) *Controller {
	t.Helper()
	c, err := New(opts, f.deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func mustEdit(t *testing.T, c *Controller, values map[string]any) {
	t.Helper()
	if err := c.EditMany(values); err != nil {
		t.Fatalf("EditMany: %v", err)
	}
}

func createOptions() Options {
	return Options{Form: form.FormAppointment, Mode: form.ModeCreate, UserID: "user-1", PatientID: "patient-1"}
}

func existing() *domain.Appointment {
	return &domain.Appointment{
		ID:               "appt-7",
		PrimaryPhysician: "Jane Powell",
		Schedule:         time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC),
		Reason:           "Annual monthly check-up",
		Status:           domain.AppointmentStatusPending,
	}
}

func TestNew_RejectsBadOptions(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name string
		opts Options
		want error
	}{
		{"unknown mode", Options{Form: form.FormAppointment, Mode: "edit"}, form.ErrUnknownMode},
		{"cross form mode", Options{Form: form.FormPatient, Mode: form.ModeCreate, UserID: "u", PatientID: "p"}, form.ErrUnknownMode},
		{"create without patient", Options{Form: form.FormAppointment, Mode: form.ModeCreate, UserID: "u"}, ErrMissingContext},
		{"cancel without appointment", Options{Form: form.FormAppointment, Mode: form.ModeCancel}, ErrMissingContext},
		{"registration without user", Options{Form: form.FormPatient, Mode: form.ModeFullRegistration}, ErrMissingContext},
	}
	for _, tc := range cases {
		if _, err := New(tc.opts, f.deps); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestSubmit_CreateAppointment(t *testing.T) {
	f := newFixture()

	var onSuccess *Result
	opts := createOptions()
	opts.OnSuccess = func(r Result) { onSuccess = &r }
	c := f.controller(t, opts)

	schedule := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	mustEdit(t, c, map[string]any{
		"primaryPhysician": "John Green",
		"schedule":         schedule.Format(time.RFC3339),
		"reason":           "check-up",
	})

	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(f.appointments.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(f.appointments.created))
	}
	got := f.appointments.created[0]
	want := domain.CreateAppointmentParams{
		UserID:           "user-1",
		PatientID:        "patient-1",
		PrimaryPhysician: "John Green",
		Schedule:         schedule,
		Reason:           "check-up",
		Status:           domain.AppointmentStatusPending,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("payload = %+v, want %+v", got, want)
	}

	if c.State() != StateSucceeded {
		t.Errorf("expected succeeded, got %s", c.State())
	}
	wantPath := "/patients/user-1/new-appointment/success?appointmentId=appt-42"
	if result.Navigation.Path != wantPath {
		t.Errorf("navigation = %q, want %q", result.Navigation.Path, wantPath)
	}
	if onSuccess == nil || onSuccess.Navigation.Path != wantPath {
		t.Errorf("OnSuccess not called with the result: %+v", onSuccess)
	}

	snap, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Values) != 0 {
		t.Errorf("values must be reset after success, got %v", snap.Values)
	}

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after success, got %v", err)
	}
	if err := c.Edit("reason", "again"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on edit after success, got %v", err)
	}
}

func TestSubmit_InvalidNeverReachesBoundary(t *testing.T) {
	f := newFixture()
	c := f.controller(t, createOptions())

	mustEdit(t, c, map[string]any{"primaryPhysician": "John Green", "reason": "x"})

	_, err := c.Submit(context.Background())
	var fieldErrs form.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fieldErrs["schedule"] == "" || fieldErrs["reason"] == "" {
		t.Errorf("expected schedule and reason errors, got %v", fieldErrs)
	}
	if f.appointments.calls() != 0 {
		t.Error("invalid submission reached the boundary")
	}
	if c.State() != StateEditing {
		t.Errorf("expected editing, got %s", c.State())
	}

	snap, _ := c.Snapshot()
	if snap.Errors["reason"] == "" {
		t.Error("snapshot must carry field errors")
	}
}

func TestSubmit_FailurePreservesInput(t *testing.T) {
	f := newFixture()
	f.appointments.err = errors.New("connection reset")
	c := f.controller(t, createOptions())

	mustEdit(t, c, map[string]any{
		"primaryPhysician": "John Green",
		"schedule":         "2026-11-03T14:30:00Z",
		"reason":           "check-up",
		"note":             "bring results",
	})
	before, _ := c.Snapshot()

	_, err := c.Submit(context.Background())
	if !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("expected ErrSubmitFailed, got %v", err)
	}
	if strings.Contains(err.Error(), "connection reset") {
		t.Error("raw boundary error must not be surfaced to the user")
	}

	after, _ := c.Snapshot()
	if !reflect.DeepEqual(before.Values, after.Values) {
		t.Errorf("values changed after failure:\nbefore %v\nafter  %v", before.Values, after.Values)
	}
	if after.State != StateEditing || after.Notification == "" {
		t.Errorf("expected editing with a notification, got %s %q", after.State, after.Notification)
	}

	// No automatic retry: one call, and a second submit is a fresh attempt.
	if f.appointments.calls() != 1 {
		t.Errorf("expected exactly one boundary call, got %d", f.appointments.calls())
	}
	f.appointments.err = nil
	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit after failure: %v", err)
	}
	if f.appointments.calls() != 2 {
		t.Errorf("expected resubmission to call the boundary again, got %d", f.appointments.calls())
	}
}

func TestSubmit_EmptyResultFails(t *testing.T) {
	f := newFixture()
	f.appointments.emptyID = true
	c := f.controller(t, createOptions())
	mustEdit(t, c, map[string]any{"primaryPhysician": "John Green", "schedule": "2026-11-03T14:30:00Z", "reason": "check-up"})

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("expected ErrSubmitFailed for a record without id, got %v", err)
	}
	if c.State() != StateEditing || c.Notification() == "" {
		t.Errorf("expected editing with a notification, got %s %q", c.State(), c.Notification())
	}
}

func TestEdit_AfterFailureReturnsToEditing(t *testing.T) {
	f := newFixture()
	f.appointments.err = domain.ErrNotFound
	c := f.controller(t, createOptions())
	mustEdit(t, c, map[string]any{"primaryPhysician": "John Green", "schedule": "2026-11-03T14:30:00Z", "reason": "check-up"})
	c.Submit(context.Background())

	if c.Notification() != "The record could not be found. Please try again." {
		t.Errorf("unexpected notification %q", c.Notification())
	}
	mustEdit(t, c, map[string]any{"reason": "follow-up"})
	if c.State() != StateEditing || c.Notification() != "" {
		t.Errorf("expected editing without notification, got %s %q", c.State(), c.Notification())
	}
}

func TestSubmit_CancelPayloadIsExact(t *testing.T) {
	f := newFixture()
	c := f.controller(t, Options{Form: form.FormAppointment, Mode: form.ModeCancel, Existing: existing()})

	mustEdit(t, c, map[string]any{"cancellationReason": "patient request"})

	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := map[string]any{"status": "cancelled", "cancellationReason": "patient request"}
	if len(f.appointments.updates) != 1 || !reflect.DeepEqual(f.appointments.updates[0], want) {
		t.Errorf("payload = %v, want %v", f.appointments.updates, want)
	}
	if !result.Navigation.CloseModal || result.Navigation.String() != "close-modal" {
		t.Errorf("cancel closes the modal, got %+v", result.Navigation)
	}
}

func TestSubmit_SchedulePayload(t *testing.T) {
	f := newFixture()
	c := f.controller(t, Options{Form: form.FormAppointment, Mode: form.ModeSchedule, Existing: existing()})

	if err := c.Edit("reason", "something else"); err == nil {
		t.Fatal("schedule mode must reject reason edits")
	}
	if err := c.Edit("cancellationReason", "nope"); err == nil {
		t.Fatal("schedule mode must reject cancellation reason edits")
	}
	mustEdit(t, c, map[string]any{"primaryPhysician": "Leila Cameron"})

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := map[string]any{
		"primaryPhysician": "Leila Cameron",
		"schedule":         "2026-12-01T09:00:00Z",
		"status":           "scheduled",
	}
	if !reflect.DeepEqual(f.appointments.updates[0], want) {
		t.Errorf("payload = %v, want %v", f.appointments.updates[0], want)
	}
}

func TestEdit_RejectsFieldsOutsideTheMode(t *testing.T) {
	f := newFixture()
	c := f.controller(t, createOptions())

	err := c.EditMany(map[string]any{"cancellationReason": "x", "bogus": 1, "reason": 42, "note": "fine"})
	var fieldErrs form.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fieldErrs["cancellationReason"] != msgFieldNotEditable {
		t.Errorf("cancellationReason: %q", fieldErrs["cancellationReason"])
	}
	if fieldErrs["bogus"] != msgUnknownField {
		t.Errorf("bogus: %q", fieldErrs["bogus"])
	}
	if fieldErrs["reason"] != msgInvalidValue {
		t.Errorf("reason: %q", fieldErrs["reason"])
	}

	snap, _ := c.Snapshot()
	if snap.Values["note"] != "fine" {
		t.Error("valid values of the same edit are applied")
	}
	if _, ok := snap.Values["cancellationReason"]; ok {
		t.Error("rejected field must not be stored")
	}
}

func TestSubmit_QuickCreateConflictFallsBack(t *testing.T) {
	f := newFixture()
	f.users.byEmail["johndoe@gmail.com"] = domain.User{ID: "user-existing", Email: "johndoe@gmail.com", Name: "John Doe"}
	c := f.controller(t, Options{Form: form.FormPatient, Mode: form.ModeQuickCreate})

	mustEdit(t, c, map[string]any{"name": "John Doe", "email": "johndoe@gmail.com", "phone": "+32471234567"})

	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("conflict must not surface as an error: %v", err)
	}
	user, ok := result.Record.(*domain.User)
	if !ok || user.ID != "user-existing" {
		t.Fatalf("expected existing user record, got %#v", result.Record)
	}
	if result.Navigation.Path != "/patients/user-existing/register" {
		t.Errorf("unexpected navigation %q", result.Navigation.Path)
	}
}

func TestSubmit_QuickCreateConflictWithoutMatchFails(t *testing.T) {
	f := newFixture()
	f.users.createErr = domain.ErrConflict
	c := f.controller(t, Options{Form: form.FormPatient, Mode: form.ModeQuickCreate})
	mustEdit(t, c, map[string]any{"name": "John Doe", "email": "johndoe@gmail.com", "phone": "+32471234567"})

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitFailed) {
		t.Errorf("expected ErrSubmitFailed, got %v", err)
	}
}

func TestSubmit_QuickCreateNewUser(t *testing.T) {
	f := newFixture()
	c := f.controller(t, Options{Form: form.FormPatient, Mode: form.ModeQuickCreate})
	mustEdit(t, c, map[string]any{"name": "Jane Doe", "email": "jane@example.com", "phone": "+32 471 23 45 67"})

	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Navigation.Path != "/patients/user-new/register" {
		t.Errorf("unexpected navigation %q", result.Navigation.Path)
	}
	if f.users.byEmail["jane@example.com"].Phone != "+32471234567" {
		t.Error("phone must be normalised before it is stored")
	}
}

func registrationValues() map[string]any {
	return map[string]any{
		"name":                   "John Doe",
		"email":                  "johndoe@gmail.com",
		"phone":                  "+32471234567",
		"birthDate":              "1990-04-02",
		"gender":                 "Male",
		"address":                "Passtraat 14, 9100 Sint-Niklaas",
		"occupation":             "Software Developer",
		"emergencyContactName":   "Jane Doe",
		"emergencyContactNumber": "+32471234568",
		"primaryPhysician":       "John Green",
		"insuranceProvider":      "DKV",
		"insurancePolicyNumber":  "ABC123456789",
		"identificationType":     "Passport",
		"identificationNumber":   "123456789",
		"identificationDocument": domain.NewAttachment("passport.png", "image/png", []byte{0x89, 'P', 'N', 'G'}),
		"treatmentConsent":       true,
		"disclosureConsent":      true,
		"privacyConsent":         true,
	}
}

func TestSubmit_FullRegistration(t *testing.T) {
	f := newFixture()
	c := f.controller(t, Options{Form: form.FormPatient, Mode: form.ModeFullRegistration, UserID: "user-1"})
	mustEdit(t, c, registrationValues())

	result, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Navigation.Path != "/patients/user-1/new-appointment" {
		t.Errorf("unexpected navigation %q", result.Navigation.Path)
	}

	if len(f.patients.calls) != 1 {
		t.Fatalf("expected one registration, got %d", len(f.patients.calls))
	}
	p := f.patients.calls[0]
	if p.UserID != "user-1" || p.Gender != domain.GenderMale || !p.PrivacyConsent {
		t.Errorf("unexpected params %+v", p)
	}
	if p.Attachment == nil || p.Attachment.FileName != "passport.png" {
		t.Errorf("expected the document as attachment, got %+v", p.Attachment)
	}
	if !p.BirthDate.Equal(time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected birth date %v", p.BirthDate)
	}
}

func TestSubmit_FullRegistrationRequiresConsent(t *testing.T) {
	f := newFixture()
	c := f.controller(t, Options{Form: form.FormPatient, Mode: form.ModeFullRegistration, UserID: "user-1"})
	values := registrationValues()
	values["privacyConsent"] = false
	mustEdit(t, c, values)

	_, err := c.Submit(context.Background())
	var fieldErrs form.FieldErrors
	if !errors.As(err, &fieldErrs) || fieldErrs["privacyConsent"] == "" {
		t.Fatalf("expected privacy consent error, got %v", err)
	}
	if len(f.patients.calls) != 0 {
		t.Error("invalid registration reached the boundary")
	}
}

func TestRegistrationParams_AttachmentOnlyWhenProvided(t *testing.T) {
	values := form.Values{"name": "John Doe", "identificationType": "Passport"}

	if p := RegistrationParams("user-1", values); p.Attachment != nil {
		t.Errorf("expected no attachment, got %+v", p.Attachment)
	}

	values["identificationDocument"] = domain.NewAttachment("empty.png", "image/png", nil)
	if p := RegistrationParams("user-1", values); p.Attachment != nil {
		t.Error("an empty upload is not a document")
	}

	doc := domain.NewAttachment("id.pdf", "application/pdf", []byte("%PDF-1.7"))
	values["identificationDocument"] = doc
	if p := RegistrationParams("user-1", values); p.Attachment != doc {
		t.Error("expected the provided document as attachment")
	}
}

func TestSubmit_SecondSubmitWhileInFlight(t *testing.T) {
	f := newFixture()
	f.appointments.block = make(chan struct{})
	f.appointments.entered = make(chan struct{}, 1)
	c := f.controller(t, createOptions())
	mustEdit(t, c, map[string]any{"primaryPhysician": "John Green", "schedule": "2026-11-03T14:30:00Z", "reason": "check-up"})

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-f.appointments.entered

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight, got %v", err)
	}
	if err := c.Edit("reason", "changed"); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("expected edits to be refused while submitting, got %v", err)
	}
	if c.State() != StateSubmitting {
		t.Errorf("expected submitting, got %s", c.State())
	}

	close(f.appointments.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if f.appointments.calls() != 1 {
		t.Errorf("expected exactly one boundary call, got %d", f.appointments.calls())
	}
}

func TestSnapshot_RendersModeFields(t *testing.T) {
	f := newFixture()
	c := f.controller(t, Options{Form: form.FormAppointment, Mode: form.ModeSchedule, Existing: existing()})

	snap, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, frag := range snap.Fields {
		names = append(names, frag.Name)
	}
	if strings.Join(names, ",") != "primaryPhysician,schedule,reason,note" {
		t.Errorf("unexpected fields %v", names)
	}
	if snap.Values["primaryPhysician"] != "Jane Powell" {
		t.Errorf("schedule mode starts from the existing appointment, got %v", snap.Values)
	}

	// Fragments carry a change callback bound to the controller.
	snap.Fields[0].Change("Hardik Sharma")
	after, _ := c.Snapshot()
	if after.Values["primaryPhysician"] != "Hardik Sharma" {
		t.Errorf("fragment change was not applied: %v", after.Values["primaryPhysician"])
	}
}
