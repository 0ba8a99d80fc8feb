package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"carepulse/internal/domain"
	"carepulse/pkg/validator"
)

var ErrInvalidValue = errors.New("invalid field value")

// Values is the field store of one form instance.
type Values map[string]any

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) Time(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

func (v Values) Attachment(name string) *domain.Attachment {
	a, _ := v[name].(*domain.Attachment)
	return a
}

const dateLayout = "2006-01-02"

// Coerce converts a transport value into the Go type of d's kind. A nil
// result means the value was cleared.
func Coerce(d Descriptor, raw any) (any, error) {
	switch d.Kind {
	case KindText, KindTextArea:
		s, err := asString(d, raw)
		if err != nil {
			return nil, err
		}
		return validator.SanitizeString(s), nil
	case KindPhone:
		s, err := asString(d, raw)
		if err != nil {
			return nil, err
		}
		return validator.FormatPhone(s), nil
	case KindSelect:
		s, err := asString(d, raw)
		if err != nil {
			return nil, err
		}
		return strings.TrimSpace(s), nil
	case KindCheckbox:
		switch b := raw.(type) {
		case nil:
			return false, nil
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return nil, fmt.Errorf("%w: %s expects a boolean", ErrInvalidValue, d.Name)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("%w: %s expects a boolean", ErrInvalidValue, d.Name)
	case KindDate:
		return coerceDate(d, raw)
	case KindCustom:
		return coerceCustom(d, raw)
	}
	return nil, fmt.Errorf("%w: field %q has unknown kind %q", ErrConfiguration, d.Name, d.Kind)
}

func asString(d Descriptor, raw any) (string, error) {
	switch s := raw.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	}
	return "", fmt.Errorf("%w: %s expects text", ErrInvalidValue, d.Name)
}

func coerceDate(d Descriptor, raw any) (any, error) {
	var t time.Time
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case time.Time:
		t = v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			parsed, err = time.Parse(dateLayout, v)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects an RFC 3339 timestamp", ErrInvalidValue, d.Name)
		}
		t = parsed
	default:
		return nil, fmt.Errorf("%w: %s expects a timestamp", ErrInvalidValue, d.Name)
	}

	if !d.ShowTime {
		y, m, day := t.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), nil
	}
	return t.UTC(), nil
}

func coerceCustom(d Descriptor, raw any) (any, error) {
	switch d.Custom {
	case OverrideFileUpload:
		switch a := raw.(type) {
		case nil:
			return nil, nil
		case *domain.Attachment:
			if a == nil {
				return nil, nil
			}
			return a, nil
		}
		return nil, fmt.Errorf("%w: %s expects an uploaded file", ErrInvalidValue, d.Name)
	case OverrideRadioGroup:
		return asString(d, raw)
	}
	return raw, nil
}
