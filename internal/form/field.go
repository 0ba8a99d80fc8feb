package form

import "errors"

// FieldKind is the closed set of controls a descriptor can ask for. Custom
// is the only open variant and always carries a render override.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindPhone    FieldKind = "phone"
	KindCheckbox FieldKind = "checkbox"
	KindDate     FieldKind = "date"
	KindSelect   FieldKind = "select"
	KindCustom   FieldKind = "custom"
)

func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindTextArea, KindPhone, KindCheckbox, KindDate, KindSelect, KindCustom:
		return true
	}
	return false
}

var ErrConfiguration = errors.New("form configuration error")

type ChangeFunc func(value any)

type RenderFunc func(value any, onChange ChangeFunc) *Fragment

type Descriptor struct {
	Kind        FieldKind `yaml:"kind" json:"kind"`
	Name        string    `yaml:"name" json:"name"`
	Label       string    `yaml:"label" json:"label"`
	Placeholder string    `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Default     any       `yaml:"default,omitempty" json:"default,omitempty"`
	Icon        string    `yaml:"icon,omitempty" json:"icon,omitempty"`
	// Options names the reference list a select or radio group draws from.
	Options    string `yaml:"options,omitempty" json:"options,omitempty"`
	ShowTime   bool   `yaml:"showTime,omitempty" json:"showTime,omitempty"`
	DateFormat string `yaml:"dateFormat,omitempty" json:"dateFormat,omitempty"`
	// Custom names the built-in override bound to a custom descriptor at load.
	Custom         string     `yaml:"custom,omitempty" json:"custom,omitempty"`
	RenderOverride RenderFunc `yaml:"-" json:"-"`
}

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Image string `json:"image,omitempty"`
}

type Doctor struct {
	Name           string `yaml:"name" json:"name"`
	Image          string `yaml:"image" json:"image"`
	Specialization string `yaml:"specialization" json:"specialization"`
}

// Fragment is the rendered description of one control. The client draws it;
// edits come back through the controller.
type Fragment struct {
	Control     string         `json:"control"`
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Placeholder string         `json:"placeholder,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	Value       any            `json:"value"`
	Options     []Option       `json:"options,omitempty"`
	ShowTime    bool           `json:"showTime,omitempty"`
	DateFormat  string         `json:"dateFormat,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`
	Props       map[string]any `json:"props,omitempty"`

	onChange ChangeFunc
}

// Change forwards an edit to the callback the fragment was rendered with.
func (f *Fragment) Change(value any) {
	if f.onChange != nil {
		f.onChange(value)
	}
}
