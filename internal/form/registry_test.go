package form

import (
	"errors"
	"testing"
)

func TestDefault_LoadsEmbeddedRegistry(t *testing.T) {
	reg := Default()

	if got := len(reg.Doctors()); got != 9 {
		t.Errorf("expected 9 doctors, got %d", got)
	}
	if got := len(reg.IdentificationTypes()); got != 11 {
		t.Errorf("expected 11 identification types, got %d", got)
	}
	if got := reg.GenderOptions(); len(got) != 3 || got[0] != "Male" {
		t.Errorf("unexpected gender options: %v", got)
	}
	if d, ok := reg.Doctor("John Green"); !ok || d.Specialization != "Lungs" {
		t.Errorf("expected John Green in Lungs, got %+v ok=%v", d, ok)
	}
	if Default() != reg {
		t.Error("Default must return the same registry")
	}
}

func TestRegistry_CustomFieldsAreBound(t *testing.T) {
	reg := Default()

	for _, f := range []Form{FormPatient, FormAppointment} {
		for _, d := range reg.Fields(f) {
			if (d.Kind == KindCustom) != (d.RenderOverride != nil) {
				t.Errorf("%s.%s: kind %q with override=%v", f, d.Name, d.Kind, d.RenderOverride != nil)
			}
		}
	}
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	reg := Default()

	doctors := reg.Doctors()
	doctors[0].Name = "Mallory"
	if reg.Doctors()[0].Name == "Mallory" {
		t.Error("Doctors must return a copy")
	}

	fields := reg.Fields(FormAppointment)
	fields[0].Label = "changed"
	if reg.Fields(FormAppointment)[0].Label == "changed" {
		t.Error("Fields must return a copy")
	}
}

func TestRegistry_LookupMissPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Lookup of a missing field to panic")
		}
	}()
	Default().Lookup(FormAppointment, "birthDate")
}

func TestRegistry_FieldsFor(t *testing.T) {
	reg := Default()

	tests := []struct {
		mode Mode
		want []string
	}{
		{ModeQuickCreate, []string{"name", "email", "phone"}},
		{ModeCreate, []string{"primaryPhysician", "schedule", "reason", "note"}},
		{ModeSchedule, []string{"primaryPhysician", "schedule", "reason", "note"}},
		{ModeCancel, []string{"cancellationReason"}},
	}

	for _, tt := range tests {
		fields, err := reg.FieldsFor(tt.mode)
		if err != nil {
			t.Fatalf("%s: %v", tt.mode, err)
		}
		if len(fields) != len(tt.want) {
			t.Fatalf("%s: expected %d fields, got %d", tt.mode, len(tt.want), len(fields))
		}
		for i, name := range tt.want {
			if fields[i].Name != name {
				t.Errorf("%s: field %d = %q, want %q", tt.mode, i, fields[i].Name, name)
			}
		}
	}

	full, err := reg.FieldsFor(ModeFullRegistration)
	if err != nil {
		t.Fatal(err)
	}
	if len(full) != len(reg.Fields(FormPatient)) {
		t.Errorf("full registration must show every patient field, got %d", len(full))
	}

	if _, err := reg.FieldsFor(Mode("edit")); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestRegistry_Defaults(t *testing.T) {
	reg := Default()

	values, err := reg.Defaults(ModeFullRegistration)
	if err != nil {
		t.Fatal(err)
	}
	if values.String("gender") != "Male" {
		t.Errorf("expected gender default Male, got %v", values["gender"])
	}
	if values.String("identificationType") != "Birth Certificate" {
		t.Errorf("expected identification type default, got %v", values["identificationType"])
	}
	for _, consent := range []string{"treatmentConsent", "disclosureConsent", "privacyConsent"} {
		if v, ok := values[consent]; !ok || v != false {
			t.Errorf("expected %s default false, got %v", consent, v)
		}
	}

	quick, err := reg.Defaults(ModeQuickCreate)
	if err != nil {
		t.Fatal(err)
	}
	if len(quick) != 0 {
		t.Errorf("quick-create has no defaults, got %v", quick)
	}
}

func TestLoad_RejectsBrokenSchemas(t *testing.T) {
	tests := map[string]string{
		"duplicate name": `
forms:
  appointment:
    - {kind: text, name: reason, label: A}
    - {kind: textarea, name: reason, label: B}
`,
		"custom without override": `
forms:
  patient:
    - {kind: custom, name: gender, label: Gender}
`,
		"unknown override": `
forms:
  patient:
    - {kind: custom, name: gender, label: Gender, custom: slider}
`,
		"override on plain field": `
forms:
  patient:
    - {kind: text, name: name, label: Name, custom: radio-group}
`,
		"unknown kind": `
forms:
  patient:
    - {kind: color, name: name, label: Name}
`,
		"unknown option list": `
forms:
  appointment:
    - {kind: select, name: primaryPhysician, label: Doctor, options: nurses}
`,
		"unknown form": `
forms:
  billing:
    - {kind: text, name: amount, label: Amount}
`,
		"unknown key": `
forms:
  patient:
    - {kind: text, name: name, label: Name, colour: red}
`,
		"duplicate doctor": `
doctors:
  - {name: John Green}
  - {name: John Green}
`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load([]byte(doc)); !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestNewRegistry_KeepsGoOverride(t *testing.T) {
	override := func(value any, onChange ChangeFunc) *Fragment {
		return &Fragment{Control: "stars", Value: value}
	}

	reg, err := NewRegistry(Schema{Forms: map[Form][]Descriptor{
		FormAppointment: {{Kind: KindCustom, Name: "rating", Label: "Rating", RenderOverride: override}},
	}})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if reg.Lookup(FormAppointment, "rating").RenderOverride == nil {
		t.Error("expected override to be kept")
	}

	_, err = NewRegistry(Schema{Forms: map[Form][]Descriptor{
		FormAppointment: {{Kind: KindText, Name: "reason", Label: "Reason", RenderOverride: override}},
	}})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for text field with override, got %v", err)
	}
}
