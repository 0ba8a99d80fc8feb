package form

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	ListDoctors             = "doctors"
	ListIdentificationTypes = "identificationTypes"
	ListGenders             = "genders"
)

//go:embed registry.yaml
var embeddedRegistry []byte

// Schema is the source document of a Registry.
type Schema struct {
	Doctors             []Doctor              `yaml:"doctors"`
	IdentificationTypes []string              `yaml:"identificationTypes"`
	GenderOptions       []string              `yaml:"genderOptions"`
	Forms               map[Form][]Descriptor `yaml:"forms"`
}

// Registry holds the field descriptors of every form and the reference
// lists. It is immutable once built and safe for concurrent readers.
type Registry struct {
	forms               map[Form][]Descriptor
	index               map[Form]map[string]int
	doctors             []Doctor
	identificationTypes []string
	genderOptions       []string
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry built from the embedded schema.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(embeddedRegistry)
		if err != nil {
			panic(fmt.Sprintf("form: embedded registry: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

func Load(data []byte) (*Registry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var schema Schema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("%w: decode registry: %v", ErrConfiguration, err)
	}

	return NewRegistry(schema)
}

func NewRegistry(schema Schema) (*Registry, error) {
	r := &Registry{
		forms:               make(map[Form][]Descriptor, len(schema.Forms)),
		index:               make(map[Form]map[string]int, len(schema.Forms)),
		doctors:             append([]Doctor(nil), schema.Doctors...),
		identificationTypes: append([]string(nil), schema.IdentificationTypes...),
		genderOptions:       append([]string(nil), schema.GenderOptions...),
	}

	seenDoctors := make(map[string]bool, len(r.doctors))
	for _, doc := range r.doctors {
		if doc.Name == "" || seenDoctors[doc.Name] {
			return nil, fmt.Errorf("%w: doctor names must be unique and non-empty, got %q", ErrConfiguration, doc.Name)
		}
		seenDoctors[doc.Name] = true
	}

	for f, fields := range schema.Forms {
		if f != FormPatient && f != FormAppointment {
			return nil, fmt.Errorf("%w: unknown form %q", ErrConfiguration, f)
		}

		descriptors := make([]Descriptor, 0, len(fields))
		idx := make(map[string]int, len(fields))
		for _, d := range fields {
			bound, err := r.bind(d)
			if err != nil {
				return nil, fmt.Errorf("form %q: %w", f, err)
			}
			if _, dup := idx[d.Name]; dup {
				return nil, fmt.Errorf("%w: form %q: duplicate field %q", ErrConfiguration, f, d.Name)
			}
			idx[d.Name] = len(descriptors)
			descriptors = append(descriptors, bound)
		}
		r.forms[f] = descriptors
		r.index[f] = idx
	}

	return r, nil
}

func (r *Registry) bind(d Descriptor) (Descriptor, error) {
	if d.Name == "" {
		return d, fmt.Errorf("%w: field without a name", ErrConfiguration)
	}
	if !d.Kind.Valid() {
		return d, fmt.Errorf("%w: field %q has unknown kind %q", ErrConfiguration, d.Name, d.Kind)
	}

	if d.Kind != KindCustom {
		if d.RenderOverride != nil || d.Custom != "" {
			return d, fmt.Errorf("%w: field %q of kind %q must not carry a render override", ErrConfiguration, d.Name, d.Kind)
		}
		if d.Kind == KindSelect {
			if _, err := r.Options(d.Options); err != nil {
				return d, err
			}
		}
		return d, nil
	}

	if d.RenderOverride != nil {
		return d, nil
	}
	factory, ok := overrides[d.Custom]
	if !ok {
		return d, fmt.Errorf("%w: custom field %q names unknown override %q", ErrConfiguration, d.Name, d.Custom)
	}
	fn, err := factory(d, r)
	if err != nil {
		return d, err
	}
	d.RenderOverride = fn
	return d, nil
}

func (r *Registry) Fields(f Form) []Descriptor {
	return append([]Descriptor(nil), r.forms[f]...)
}

// FieldsFor returns the descriptors shown in m, in form order.
func (r *Registry) FieldsFor(m Mode) ([]Descriptor, error) {
	f, ok := m.Form()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	rs, err := SelectRuleset(m)
	if err != nil {
		return nil, err
	}

	var out []Descriptor
	for _, d := range r.forms[f] {
		if rs.Visible(d.Name) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Lookup returns the descriptor of name. A miss is a programming error.
func (r *Registry) Lookup(f Form, name string) Descriptor {
	d, ok := r.Find(f, name)
	if !ok {
		panic(fmt.Sprintf("form: no field %q in form %q", name, f))
	}
	return d
}

func (r *Registry) Find(f Form, name string) (Descriptor, bool) {
	i, ok := r.index[f][name]
	if !ok {
		return Descriptor{}, false
	}
	return r.forms[f][i], true
}

// Defaults returns the initial values of the fields editable in m.
func (r *Registry) Defaults(m Mode) (Values, error) {
	fields, err := r.FieldsFor(m)
	if err != nil {
		return nil, err
	}
	rs, _ := SelectRuleset(m)

	values := make(Values)
	for _, d := range fields {
		if d.Default == nil || !rs.Editable(d.Name) {
			continue
		}
		v, err := Coerce(d, d.Default)
		if err != nil {
			return nil, fmt.Errorf("%w: default of %q: %v", ErrConfiguration, d.Name, err)
		}
		values[d.Name] = v
	}
	return values, nil
}

func (r *Registry) Doctors() []Doctor {
	return append([]Doctor(nil), r.doctors...)
}

func (r *Registry) Doctor(name string) (Doctor, bool) {
	for _, d := range r.doctors {
		if d.Name == name {
			return d, true
		}
	}
	return Doctor{}, false
}

func (r *Registry) IdentificationTypes() []string {
	return append([]string(nil), r.identificationTypes...)
}

func (r *Registry) GenderOptions() []string {
	return append([]string(nil), r.genderOptions...)
}

func (r *Registry) Options(list string) ([]Option, error) {
	switch list {
	case ListDoctors:
		opts := make([]Option, 0, len(r.doctors))
		for _, d := range r.doctors {
			opts = append(opts, Option{Label: d.Name, Value: d.Name, Image: d.Image})
		}
		return opts, nil
	case ListIdentificationTypes:
		return stringOptions(r.identificationTypes), nil
	case ListGenders:
		return stringOptions(r.genderOptions), nil
	}
	return nil, fmt.Errorf("%w: unknown option list %q", ErrConfiguration, list)
}

func stringOptions(values []string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
