package form

import (
	"errors"
	"fmt"
)

type Form string

const (
	FormPatient     Form = "patient"
	FormAppointment Form = "appointment"
)

type Mode string

const (
	ModeQuickCreate      Mode = "quick-create"
	ModeFullRegistration Mode = "full-registration"
	ModeCreate           Mode = "create"
	ModeSchedule         Mode = "schedule"
	ModeCancel           Mode = "cancel"
)

var ErrUnknownMode = errors.New("unknown form mode")

var modeForms = map[Mode]Form{
	ModeQuickCreate:      FormPatient,
	ModeFullRegistration: FormPatient,
	ModeCreate:           FormAppointment,
	ModeSchedule:         FormAppointment,
	ModeCancel:           FormAppointment,
}

// Form reports which form m belongs to.
func (m Mode) Form() (Form, bool) {
	f, ok := modeForms[m]
	return f, ok
}

// ParseMode accepts only the modes of f. Anything else, including a valid
// mode of the other form, is rejected.
func ParseMode(f Form, raw string) (Mode, error) {
	m := Mode(raw)
	owner, ok := modeForms[m]
	if !ok || owner != f {
		return "", fmt.Errorf("%w: %q for form %q", ErrUnknownMode, raw, f)
	}
	return m, nil
}
