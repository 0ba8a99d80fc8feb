package form

import (
	"fmt"
	"time"
)

const (
	ControlInput      = "input"
	ControlTextArea   = "textarea"
	ControlPhone      = "phone-input"
	ControlCheckbox   = "checkbox"
	ControlDatePicker = "date-picker"
	ControlSelect     = "select"
	ControlRadioGroup = "radio-group"
	ControlFileUpload = "file-upload"
)

const (
	OverrideRadioGroup = "radio-group"
	OverrideFileUpload = "file-upload"
)

// OptionSource resolves the named reference lists select controls draw from.
type OptionSource interface {
	Options(list string) ([]Option, error)
}

// OverrideFactory builds the render override of a custom descriptor.
type OverrideFactory func(d Descriptor, src OptionSource) (RenderFunc, error)

var overrides = map[string]OverrideFactory{
	OverrideRadioGroup: radioGroupOverride,
	OverrideFileUpload: fileUploadOverride,
}

var acceptedDocuments = []string{"image/png", "image/jpeg", "image/gif", "image/webp", "application/pdf"}

func radioGroupOverride(d Descriptor, src OptionSource) (RenderFunc, error) {
	opts, err := src.Options(d.Options)
	if err != nil {
		return nil, err
	}
	return func(value any, onChange ChangeFunc) *Fragment {
		if value == nil {
			value = d.Default
		}
		return &Fragment{
			Control:  ControlRadioGroup,
			Value:    value,
			Options:  append([]Option(nil), opts...),
			onChange: onChange,
		}
	}, nil
}

func fileUploadOverride(d Descriptor, _ OptionSource) (RenderFunc, error) {
	return func(value any, onChange ChangeFunc) *Fragment {
		return &Fragment{
			Control:  ControlFileUpload,
			Value:    value,
			Props:    map[string]any{"accept": append([]string(nil), acceptedDocuments...)},
			onChange: onChange,
		}
	}, nil
}

type Renderer struct {
	options OptionSource
}

func NewRenderer(options OptionSource) *Renderer {
	return &Renderer{options: options}
}

// Render turns d into a control fragment for mode. It returns nil without an
// error when d is not shown in mode. A descriptor that cannot be rendered is
// a configuration error and is never skipped.
func (r *Renderer) Render(d Descriptor, mode Mode, value any, onChange ChangeFunc) (*Fragment, error) {
	rs, err := SelectRuleset(mode)
	if err != nil {
		return nil, err
	}
	if !rs.Visible(d.Name) {
		return nil, nil
	}

	frag, err := r.dispatch(d, value, onChange)
	if err != nil {
		return nil, err
	}

	if frag.Name == "" {
		frag.Name = d.Name
	}
	if frag.Label == "" {
		frag.Label = d.Label
	}
	if frag.Placeholder == "" {
		frag.Placeholder = d.Placeholder
	}
	if frag.Icon == "" {
		frag.Icon = d.Icon
	}
	frag.Disabled = frag.Disabled || rs.Displayed(d.Name)

	return frag, nil
}

func (r *Renderer) dispatch(d Descriptor, value any, onChange ChangeFunc) (*Fragment, error) {
	if value == nil {
		value = d.Default
	}

	switch d.Kind {
	case KindText:
		return &Fragment{Control: ControlInput, Value: stringValue(value), onChange: onChange}, nil
	case KindTextArea:
		return &Fragment{Control: ControlTextArea, Value: stringValue(value), onChange: onChange}, nil
	case KindPhone:
		return &Fragment{Control: ControlPhone, Value: stringValue(value), onChange: onChange}, nil
	case KindCheckbox:
		checked, _ := value.(bool)
		return &Fragment{Control: ControlCheckbox, Value: checked, onChange: onChange}, nil
	case KindDate:
		return &Fragment{
			Control:    ControlDatePicker,
			Value:      dateValue(value, d.ShowTime),
			ShowTime:   d.ShowTime,
			DateFormat: d.DateFormat,
			onChange:   onChange,
		}, nil
	case KindSelect:
		if r.options == nil {
			return nil, fmt.Errorf("%w: select %q rendered without an option source", ErrConfiguration, d.Name)
		}
		opts, err := r.options.Options(d.Options)
		if err != nil {
			return nil, err
		}
		return &Fragment{Control: ControlSelect, Value: stringValue(value), Options: opts, onChange: onChange}, nil
	case KindCustom:
		if d.RenderOverride == nil {
			return nil, fmt.Errorf("%w: custom field %q has no render override", ErrConfiguration, d.Name)
		}
		frag := d.RenderOverride(value, onChange)
		if frag == nil {
			return nil, fmt.Errorf("%w: render override of %q returned nothing", ErrConfiguration, d.Name)
		}
		return frag, nil
	}

	return nil, fmt.Errorf("%w: field %q has unknown kind %q", ErrConfiguration, d.Name, d.Kind)
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}

func dateValue(value any, showTime bool) any {
	t, ok := value.(time.Time)
	if !ok || t.IsZero() {
		return nil
	}
	if !showTime {
		y, m, d := t.Date()
		t = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return t.UTC().Format(time.RFC3339)
}
