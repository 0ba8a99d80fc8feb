package form

import "fmt"

// Rule checks one field with a validator tag. When, if set, gates the rule
// on the other values of the form.
type Rule struct {
	Field   string
	Tag     string
	Message string
	When    func(Values) bool
}

// Ruleset is the complete set of constraints of one mode. Fields without a
// rule are not part of the mode: they are neither validated nor submitted.
type Ruleset struct {
	Mode     Mode
	Rules    []Rule
	ReadOnly []string
}

// Fields returns the editable fields of the mode in rule order.
func (rs Ruleset) Fields() []string {
	seen := make(map[string]bool, len(rs.Rules))
	fields := make([]string, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		if !seen[r.Field] {
			seen[r.Field] = true
			fields = append(fields, r.Field)
		}
	}
	return fields
}

func (rs Ruleset) Editable(field string) bool {
	for _, r := range rs.Rules {
		if r.Field == field {
			return true
		}
	}
	return false
}

// Displayed reports fields shown to the user but not editable in the mode.
func (rs Ruleset) Displayed(field string) bool {
	for _, f := range rs.ReadOnly {
		if f == field {
			return true
		}
	}
	return false
}

func (rs Ruleset) Visible(field string) bool {
	return rs.Editable(field) || rs.Displayed(field)
}

const (
	nameMin    = "Name must be at least 2 characters."
	nameMax    = "Name has a maximum of 50 characters."
	emailBad   = "Invalid email address."
	phoneBad   = "Phone number must be a valid international number after the country code."
	doctorMin  = "Select at least one doctor."
	doctorBad  = "Select a doctor from the list."
	scheduleNo = "Select an appointment date."
	reasonMin  = "Reason must be at least 2 characters."
	reasonMax  = "Reason has a maximum of 500 characters."
)

// SelectRuleset returns the ruleset of m. It fails closed: an unknown mode is
// an error, never an empty ruleset.
func SelectRuleset(m Mode) (Ruleset, error) {
	switch m {
	case ModeQuickCreate:
		return Ruleset{Mode: m, Rules: userRules()}, nil
	case ModeFullRegistration:
		return Ruleset{Mode: m, Rules: append(userRules(), registrationRules()...)}, nil
	case ModeCreate:
		return Ruleset{Mode: m, Rules: []Rule{
			{Field: "primaryPhysician", Tag: "min=2", Message: doctorMin},
			{Field: "primaryPhysician", Tag: "doctor", Message: doctorBad},
			{Field: "schedule", Tag: "required", Message: scheduleNo},
			{Field: "reason", Tag: "min=2", Message: reasonMin},
			{Field: "reason", Tag: "max=500", Message: reasonMax},
			{Field: "note", Tag: "omitempty,max=500", Message: "Note has a maximum of 500 characters."},
		}}, nil
	case ModeSchedule:
		return Ruleset{
			Mode: m,
			Rules: []Rule{
				{Field: "primaryPhysician", Tag: "min=2", Message: doctorMin},
				{Field: "primaryPhysician", Tag: "doctor", Message: doctorBad},
				{Field: "schedule", Tag: "required", Message: scheduleNo},
			},
			ReadOnly: []string{"reason", "note"},
		}, nil
	case ModeCancel:
		return Ruleset{Mode: m, Rules: []Rule{
			{Field: "cancellationReason", Tag: "min=2", Message: reasonMin},
			{Field: "cancellationReason", Tag: "max=500", Message: reasonMax},
		}}, nil
	default:
		return Ruleset{}, fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
}

func userRules() []Rule {
	return []Rule{
		{Field: "name", Tag: "min=2", Message: nameMin},
		{Field: "name", Tag: "max=50", Message: nameMax},
		{Field: "email", Tag: "mailbox", Message: emailBad},
		{Field: "phone", Tag: "intlphone", Message: phoneBad},
	}
}

func identificationSelected(v Values) bool {
	return v.String("identificationType") != ""
}

func registrationRules() []Rule {
	return []Rule{
		{Field: "birthDate", Tag: "required", Message: "Date of birth is required."},
		{Field: "gender", Tag: "gender", Message: "Select a gender."},
		{Field: "address", Tag: "min=5", Message: "Address must be at least 5 characters."},
		{Field: "address", Tag: "max=500", Message: "Address has a maximum of 500 characters."},
		{Field: "occupation", Tag: "min=2", Message: "Occupation must be at least 2 characters."},
		{Field: "occupation", Tag: "max=500", Message: "Occupation has a maximum of 500 characters."},
		{Field: "emergencyContactName", Tag: "min=2", Message: "Contact name must be at least 2 characters."},
		{Field: "emergencyContactName", Tag: "max=50", Message: "Contact name has a maximum of 50 characters."},
		{Field: "emergencyContactNumber", Tag: "intlphone", Message: phoneBad},
		{Field: "primaryPhysician", Tag: "min=2", Message: doctorMin},
		{Field: "primaryPhysician", Tag: "doctor", Message: doctorBad},
		{Field: "insuranceProvider", Tag: "min=2", Message: "Insurance name must be at least 2 characters."},
		{Field: "insuranceProvider", Tag: "max=50", Message: "Insurance name has a maximum of 50 characters."},
		{Field: "insurancePolicyNumber", Tag: "min=2", Message: "Policy number must be at least 2 characters."},
		{Field: "insurancePolicyNumber", Tag: "max=50", Message: "Policy number has a maximum of 50 characters."},
		{Field: "allergies", Tag: "omitempty,max=500", Message: "Allergies has a maximum of 500 characters."},
		{Field: "currentMedication", Tag: "omitempty,max=500", Message: "Current medication has a maximum of 500 characters."},
		{Field: "familyMedicalHistory", Tag: "omitempty,max=500", Message: "Family medical history has a maximum of 500 characters."},
		{Field: "pastMedicalHistory", Tag: "omitempty,max=500", Message: "Past medical history has a maximum of 500 characters."},
		{Field: "identificationType", Tag: "identificationtype", Message: "Select an identification type."},
		{Field: "identificationNumber", Tag: "required", Message: "Identification number is required.", When: identificationSelected},
		{Field: "identificationNumber", Tag: "max=50", Message: "Identification number has a maximum of 50 characters.", When: identificationSelected},
		{Field: "identificationDocument", Tag: "required", Message: "Upload a scanned copy of the identification document.", When: identificationSelected},
		{Field: "treatmentConsent", Tag: "eq=true", Message: "You must consent to treatment in order to proceed."},
		{Field: "disclosureConsent", Tag: "eq=true", Message: "You must consent to disclosure in order to proceed."},
		{Field: "privacyConsent", Tag: "eq=true", Message: "You must consent to privacy in order to proceed."},
	}
}
