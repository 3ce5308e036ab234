package patient

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var (
	validate = validator.New()

	dateLayouts = []string{
		DateLayout,
		"2006-01-02T15:04:05",
		time.RFC3339,
	}
)

// ParseDate accepts a plain calendar date or a full timestamp and returns
// the calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

// Validate checks the field constraints shared by create, update and patch.
func (p Patient) Validate() error {
	errs := make(map[string]string)

	if err := validate.Struct(p); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return err
		}
		for _, fe := range ves {
			name := jsonName(fe.Field())
			errs[name] = message(name, fe)
		}
	}

	if p.BirthDate.IsZero() {
		errs[string(FieldBirthDate)] = "birthDate is required"
	}

	if len(errs) == 0 {
		return nil
	}

	return &ValidationError{Fields: errs}
}

func message(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return name + " is invalid"
	}
}

func jsonName(goName string) string {
	r, size := utf8.DecodeRuneInString(goName)
	if r == utf8.RuneError {
		return goName
	}
	return string(unicode.ToLower(r)) + goName[size:]
}
