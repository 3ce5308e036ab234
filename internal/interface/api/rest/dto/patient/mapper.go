package patient

import (
	"bytes"
	"encoding/json"
	"strings"

	"patient-records-api/internal/domain/patient"
)

func ToResponsePatient(pDomain patient.Patient) Patient {
	var p = Patient{
		ID:             int64(pDomain.ID),
		DocumentType:   pDomain.DocumentType,
		DocumentNumber: pDomain.DocumentNumber,
		FirstName:      pDomain.FirstName,
		LastName:       pDomain.LastName,
		PhoneNumber:    pDomain.PhoneNumber,
		Email:          pDomain.Email,
		CreatedAt:      pDomain.CreatedAt,
	}
	if !pDomain.BirthDate.IsZero() {
		p.BirthDate = pDomain.BirthDate.Format(patient.DateLayout)
	}

	return p
}

func ToResponsePatients(psDomain patient.Patients) Patients {
	ps := make(Patients, len(psDomain))
	for idx, p := range psDomain {
		ps[idx] = ToResponsePatient(*p)
	}

	return ps
}

func ToListResult(page patient.Page) ListResult {
	return ListResult{
		TotalItems: page.TotalItems,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Items:      ToResponsePatients(page.Items),
	}
}

func ToDomainPatient(pRequest Request) (patient.Patient, error) {
	d, err := patient.ParseDate(pRequest.BirthDate)
	if err != nil {
		return patient.Patient{}, err
	}

	var p = patient.Patient{
		DocumentType:   pRequest.DocumentType,
		DocumentNumber: pRequest.DocumentNumber,
		FirstName:      pRequest.FirstName,
		LastName:       pRequest.LastName,
		BirthDate:      d,
		PhoneNumber:    pRequest.PhoneNumber,
		Email:          pRequest.Email,
	}

	return p, nil
}

var jsonNull = []byte("null")

// ToDomainChanges maps a JSON Patch document onto the closed set of
// patchable fields. Anything outside that set is a *patient.PatchError.
func ToDomainChanges(doc PatchDocument) (patient.Changes, error) {
	changes := make(patient.Changes, 0, len(doc))

	for i, op := range doc {
		field, ok := patient.LookupField(op.Path)
		if !ok {
			return nil, &patient.PatchError{Index: i, Op: op.Op, Path: op.Path, Reason: "path is not patchable"}
		}

		switch strings.ToLower(op.Op) {
		case "remove":
			changes = append(changes, patient.Change{Field: field})
		case "add", "replace":
			raw := bytes.TrimSpace(op.Value)
			if len(raw) == 0 {
				return nil, &patient.PatchError{Index: i, Op: op.Op, Path: op.Path, Reason: "value is required"}
			}
			if bytes.Equal(raw, jsonNull) {
				changes = append(changes, patient.Change{Field: field})
				continue
			}
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, &patient.PatchError{Index: i, Op: op.Op, Path: op.Path, Reason: "value must be a string or null"}
			}
			changes = append(changes, patient.Change{Field: field, Value: &v})
		default:
			return nil, &patient.PatchError{Index: i, Op: op.Op, Path: op.Path, Reason: "unsupported operation"}
		}
	}

	return changes, nil
}
