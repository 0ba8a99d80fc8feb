package validator

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+\d{1,4}\d{9,15}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone accepts an international number: a leading '+', a 1-4 digit
// country code and the national number. The pattern alone lets some country
// codes through with too many digits, so the digit count is bounded as well.
func ValidatePhone(phone string) bool {
	if !phoneRegex.MatchString(phone) {
		return false
	}

	digits := DigitCount(phone)
	return digits >= MinPhoneDigits && digits <= MaxPhoneDigits
}

func DigitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// FormatPhone strips the separators phone inputs tend to insert. It does not
// guess a country code; a number without '+' stays invalid.
func FormatPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, strings.TrimSpace(phone))
}

// SanitizeString trims s and drops control characters other than line
// breaks and tabs. Printable text is kept as typed.
func SanitizeString(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s))
}
