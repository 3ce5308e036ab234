package validator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	domain "patient-records-api/internal/domain/patient"
	"patient-records-api/internal/interface/api/rest/dto/patient"
)

var (
	ErrInvalidPage     = errors.New("page must be a positive integer")
	ErrInvalidPageSize = fmt.Errorf("pageSize must be an integer between 1 and %d", domain.MaxPageSize)
	ErrInvalidID       = errors.New("patient_id must be a positive integer")
)

// ValidatePagination applies the defaults for absent values and rejects
// anything that is not a positive integer.
func ValidatePagination(page, pageSize string) (int, int, error) {
	p, err := positiveInt(page, domain.DefaultPage)
	if err != nil {
		return 0, 0, ErrInvalidPage
	}

	ps, err := positiveInt(pageSize, domain.DefaultPageSize)
	if err != nil || ps > domain.MaxPageSize {
		return 0, 0, ErrInvalidPageSize
	}

	// the offset (p-1)*ps must fit in an int
	if p-1 > math.MaxInt/ps {
		return 0, 0, ErrInvalidPage
	}

	return p, ps, nil
}

func ParsePatientID(s string) (domain.ID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return domain.ID(id), nil
}

// ParseCreatedAfter returns the zero time for an empty value so that every
// patient matches.
func ParseCreatedAfter(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("date %q must be RFC3339, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD", s)
}

// ValidatePatient checks the shape of a create/replace body against the
// domain field constraints. The service re-validates the normalized record.
func ValidatePatient(r patient.Request) map[string]string {
	errs := make(map[string]string)

	p := domain.Patient{
		DocumentType:   r.DocumentType,
		DocumentNumber: r.DocumentNumber,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		PhoneNumber:    r.PhoneNumber,
		Email:          r.Email,
	}
	if bdate := strings.TrimSpace(r.BirthDate); bdate != "" {
		d, err := domain.ParseDate(bdate)
		if err != nil {
			errs["birthDate"] = "birthDate must be YYYY-MM-DD"
		}
		p.BirthDate = d
	}
	p.Normalize()

	var vErr *domain.ValidationError
	if err := p.Validate(); errors.As(err, &vErr) {
		for field, msg := range vErr.Fields {
			if _, ok := errs[field]; !ok {
				errs[field] = msg
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func positiveInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, errors.New("not positive")
	}
	return v, nil
}
