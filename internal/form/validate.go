package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgvalidator "carepulse/pkg/validator"
)

// FieldErrors maps a field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator runs rulesets through go-playground/validator with the tags the
// forms need registered on top of the built-in ones.
type Validator struct {
	validate *validator.Validate
}

func NewValidator(reg *Registry) *Validator {
	v := validator.New()

	mustRegister(v, "intlphone", stringCheck(pkgvalidator.ValidatePhone))
	mustRegister(v, "mailbox", stringCheck(pkgvalidator.ValidateEmail))
	mustRegister(v, "gender", stringCheck(func(s string) bool {
		return contains(reg.genderOptions, s)
	}))
	mustRegister(v, "identificationtype", stringCheck(func(s string) bool {
		return contains(reg.identificationTypes, s)
	}))
	mustRegister(v, "doctor", stringCheck(func(s string) bool {
		_, ok := reg.Doctor(s)
		return ok
	}))

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: register %q validation: %v", tag, err))
	}
}

func stringCheck(check func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && check(s)
	}
}

// Validate checks values against rs and returns nil when every rule holds.
// Only the first failing rule of a field is reported.
func (v *Validator) Validate(rs Ruleset, values Values) FieldErrors {
	errs := make(FieldErrors)
	for _, rule := range rs.Rules {
		if _, failed := errs[rule.Field]; failed {
			continue
		}
		if rule.When != nil && !rule.When(values) {
			continue
		}
		if err := v.validate.Var(values[rule.Field], rule.Tag); err != nil {
			errs[rule.Field] = rule.Message
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
