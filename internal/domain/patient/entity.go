package patient

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type (
	ID      int64
	Patient struct {
		ID             ID
		DocumentType   string `validate:"required,max=20"`
		DocumentNumber string `validate:"required,max=30"`
		FirstName      string `validate:"required,max=100"`
		LastName       string `validate:"required,max=100"`
		BirthDate      time.Time
		PhoneNumber    *string `validate:"omitempty,max=30"`
		Email          *string `validate:"omitempty,max=100"`

		CreatedAt time.Time
	}
	Patients []*Patient

	ListFilter struct {
		Page           int
		PageSize       int
		Name           string
		DocumentNumber string
	}
	Page struct {
		Items      Patients
		TotalItems int
		Page       int
		PageSize   int
	}
)

func (f ListFilter) Offset() int { return (f.Page - 1) * f.PageSize }

// Normalize trims and NFC-normalizes every text field so that document
// identities compare equal regardless of how the client composed them.
func (p *Patient) Normalize() {
	p.DocumentType = clean(p.DocumentType)
	p.DocumentNumber = clean(p.DocumentNumber)
	p.FirstName = clean(p.FirstName)
	p.LastName = clean(p.LastName)
	p.PhoneNumber = cleanOptional(p.PhoneNumber)
	p.Email = cleanOptional(p.Email)
}

// ApplyFrom copies the mutable fields of src, leaving ID and CreatedAt alone.
func (p *Patient) ApplyFrom(src Patient) {
	p.DocumentType = src.DocumentType
	p.DocumentNumber = src.DocumentNumber
	p.FirstName = src.FirstName
	p.LastName = src.LastName
	p.BirthDate = src.BirthDate
	p.PhoneNumber = src.PhoneNumber
	p.Email = src.Email
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := clean(*s)
	if v == "" {
		return nil
	}
	return &v
}
