package controller

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"carepulse/internal/domain"
	"carepulse/internal/form"
)

// Navigation is where the client goes after a successful submit: a page path
// or, for the admin modal, closing the modal.
type Navigation struct {
	Path       string `json:"path,omitempty"`
	CloseModal bool   `json:"closeModal,omitempty"`
}

func (n Navigation) String() string {
	if n.CloseModal {
		return "close-modal"
	}
	return n.Path
}

var errEmptyResult = errors.New("store returned no identifier")

type submitFunc func(ctx context.Context, values form.Values) (*Result, error)

func submitterFor(opts Options, deps Deps) (submitFunc, error) {
	switch opts.Mode {
	case form.ModeQuickCreate:
		if deps.Users == nil {
			return nil, fmt.Errorf("%w: user boundary", ErrMissingContext)
		}
		return quickCreate(deps.Users), nil
	case form.ModeFullRegistration:
		if opts.UserID == "" || deps.Patients == nil {
			return nil, fmt.Errorf("%w: registration needs a user id", ErrMissingContext)
		}
		return registerPatient(opts.UserID, deps.Patients), nil
	case form.ModeCreate:
		if opts.UserID == "" || opts.PatientID == "" || deps.Appointments == nil {
			return nil, fmt.Errorf("%w: appointment request needs user and patient ids", ErrMissingContext)
		}
		return createAppointment(opts.UserID, opts.PatientID, deps.Appointments), nil
	case form.ModeSchedule, form.ModeCancel:
		if opts.Existing == nil || opts.Existing.ID == "" || deps.Appointments == nil {
			return nil, fmt.Errorf("%w: %s needs an existing appointment", ErrMissingContext, opts.Mode)
		}
		return updateAppointment(opts.Mode, opts.Existing.ID, deps.Appointments), nil
	}
	return nil, fmt.Errorf("%w: %q", form.ErrUnknownMode, opts.Mode)
}

// quickCreate creates the user behind a new patient. An email that is already
// registered is not a failure: the existing user is picked up instead.
func quickCreate(users UserBoundary) submitFunc {
	return func(ctx context.Context, values form.Values) (*Result, error) {
		params := domain.CreateUserParams{
			Name:  values.String("name"),
			Email: values.String("email"),
			Phone: values.String("phone"),
		}

		user, err := users.CreateUser(ctx, params)
		if errors.Is(err, domain.ErrConflict) {
			existing, lookupErr := users.FindUsersByEmail(ctx, params.Email)
			if lookupErr != nil {
				return nil, fmt.Errorf("look up existing user: %w", lookupErr)
			}
			if len(existing) == 0 {
				return nil, fmt.Errorf("email conflict without a matching user: %w", err)
			}
			user, err = &existing[0], nil
		}
		if err != nil {
			return nil, err
		}
		if user == nil || user.ID == "" {
			return nil, errEmptyResult
		}

		return &Result{
			Navigation: Navigation{Path: fmt.Sprintf("/patients/%s/register", url.PathEscape(user.ID))},
			Record:     user,
		}, nil
	}
}

func registerPatient(userID string, patients PatientBoundary) submitFunc {
	return func(ctx context.Context, values form.Values) (*Result, error) {
		patient, err := patients.RegisterPatient(ctx, RegistrationParams(userID, values))
		if err != nil {
			return nil, err
		}
		if patient == nil || patient.ID == "" {
			return nil, errEmptyResult
		}

		return &Result{
			Navigation: Navigation{Path: fmt.Sprintf("/patients/%s/new-appointment", url.PathEscape(userID))},
			Record:     patient,
		}, nil
	}
}

// RegistrationParams builds the registration payload. The identification
// document travels as a separate attachment and only when one was provided.
func RegistrationParams(userID string, values form.Values) domain.RegisterPatientParams {
	params := domain.RegisterPatientParams{
		UserID:                 userID,
		Name:                   values.String("name"),
		Email:                  values.String("email"),
		Phone:                  values.String("phone"),
		BirthDate:              values.Time("birthDate"),
		Gender:                 domain.Gender(values.String("gender")),
		Address:                values.String("address"),
		Occupation:             values.String("occupation"),
		EmergencyContactName:   values.String("emergencyContactName"),
		EmergencyContactNumber: values.String("emergencyContactNumber"),
		PrimaryPhysician:       values.String("primaryPhysician"),
		InsuranceProvider:      values.String("insuranceProvider"),
		InsurancePolicyNumber:  values.String("insurancePolicyNumber"),
		Allergies:              values.String("allergies"),
		CurrentMedication:      values.String("currentMedication"),
		FamilyMedicalHistory:   values.String("familyMedicalHistory"),
		PastMedicalHistory:     values.String("pastMedicalHistory"),
		IdentificationType:     values.String("identificationType"),
		IdentificationNumber:   values.String("identificationNumber"),
		TreatmentConsent:       values.Bool("treatmentConsent"),
		DisclosureConsent:      values.Bool("disclosureConsent"),
		PrivacyConsent:         values.Bool("privacyConsent"),
	}
	if doc := values.Attachment("identificationDocument"); doc != nil && len(doc.Data) > 0 {
		params.Attachment = doc
	}
	return params
}

func createAppointment(userID, patientID string, appointments AppointmentBoundary) submitFunc {
	return func(ctx context.Context, values form.Values) (*Result, error) {
		appointment, err := appointments.CreateAppointment(ctx, CreateParams(userID, patientID, values))
		if err != nil {
			return nil, err
		}
		if appointment == nil || appointment.ID == "" {
			return nil, errEmptyResult
		}

		return &Result{
			Navigation: Navigation{Path: fmt.Sprintf(
				"/patients/%s/new-appointment/success?appointmentId=%s",
				url.PathEscape(userID), url.QueryEscape(appointment.ID),
			)},
			Record: appointment,
		}, nil
	}
}

func CreateParams(userID, patientID string, values form.Values) domain.CreateAppointmentParams {
	return domain.CreateAppointmentParams{
		UserID:           userID,
		PatientID:        patientID,
		PrimaryPhysician: values.String("primaryPhysician"),
		Schedule:         values.Time("schedule"),
		Reason:           values.String("reason"),
		Note:             values.String("note"),
		Status:           domain.AppointmentStatusPending,
	}
}

func updateAppointment(mode form.Mode, id string, appointments AppointmentBoundary) submitFunc {
	return func(ctx context.Context, values form.Values) (*Result, error) {
		appointment, err := appointments.UpdateAppointment(ctx, id, UpdateFor(mode, values))
		if err != nil {
			return nil, err
		}
		if appointment == nil || appointment.ID == "" {
			return nil, errEmptyResult
		}

		return &Result{Navigation: Navigation{CloseModal: true}, Record: appointment}, nil
	}
}

// UpdateFor builds the partial update of the admin modes. Schedule confirms
// doctor and time; cancel only records the reason.
func UpdateFor(mode form.Mode, values form.Values) domain.AppointmentUpdate {
	switch mode {
	case form.ModeSchedule:
		physician := values.String("primaryPhysician")
		schedule := values.Time("schedule")
		status := domain.AppointmentStatusScheduled
		return domain.AppointmentUpdate{PrimaryPhysician: &physician, Schedule: &schedule, Status: &status}
	case form.ModeCancel:
		reason := values.String("cancellationReason")
		status := domain.AppointmentStatusCancelled
		return domain.AppointmentUpdate{Status: &status, CancellationReason: &reason}
	}
	return domain.AppointmentUpdate{}
}
