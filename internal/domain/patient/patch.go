package patient

import (
	"errors"
	"strings"
	"time"
)

type Field string

const (
	FieldDocumentType   Field = "documentType"
	FieldDocumentNumber Field = "documentNumber"
	FieldFirstName      Field = "firstName"
	FieldLastName       Field = "lastName"
	FieldBirthDate      Field = "birthDate"
	FieldPhoneNumber    Field = "phoneNumber"
	FieldEmail          Field = "email"
)

var patchable = map[string]Field{}

func init() {
	for _, f := range []Field{
		FieldDocumentType,
		FieldDocumentNumber,
		FieldFirstName,
		FieldLastName,
		FieldBirthDate,
		FieldPhoneNumber,
		FieldEmail,
	} {
		patchable[strings.ToLower(string(f))] = f
	}
}

// LookupField resolves a patch path such as "/FirstName" to a patchable field.
// id and createdAt are not patchable.
func LookupField(path string) (Field, bool) {
	f, ok := patchable[strings.ToLower(strings.TrimPrefix(path, "/"))]
	return f, ok
}

type (
	// Change sets one field. A nil Value clears it.
	Change struct {
		Field Field
		Value *string
	}
	Changes []Change
)

// ApplyTo returns a copy of p with every change applied in order. The
// original is never modified. An unparseable birthDate is reported as a
// *ValidationError together with every other constraint the patched copy
// fails.
func (cs Changes) ApplyTo(p Patient) (Patient, error) {
	out := p
	errs := make(map[string]string)

	for _, c := range cs {
		switch c.Field {
		case FieldDocumentType:
			out.DocumentType = deref(c.Value)
		case FieldDocumentNumber:
			out.DocumentNumber = deref(c.Value)
		case FieldFirstName:
			out.FirstName = deref(c.Value)
		case FieldLastName:
			out.LastName = deref(c.Value)
		case FieldPhoneNumber:
			out.PhoneNumber = copyOptional(c.Value)
		case FieldEmail:
			out.Email = copyOptional(c.Value)
		case FieldBirthDate:
			if c.Value == nil {
				out.BirthDate = time.Time{}
				delete(errs, string(FieldBirthDate))
				continue
			}
			d, err := ParseDate(*c.Value)
			if err != nil {
				out.BirthDate = time.Time{}
				errs[string(FieldBirthDate)] = "birthDate must be YYYY-MM-DD"
				continue
			}
			out.BirthDate = d
			delete(errs, string(FieldBirthDate))
		}
	}

	if len(errs) == 0 {
		return out, nil
	}

	check := out
	check.Normalize()
	var vErr *ValidationError
	if err := check.Validate(); errors.As(err, &vErr) {
		for field, msg := range vErr.Fields {
			if _, ok := errs[field]; !ok {
				errs[field] = msg
			}
		}
	}

	return p, &ValidationError{Fields: errs}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func copyOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
