package patient

import (
	domain "patient-records-api/internal/domain/patient"
)

func fromDBModel(model *Patient) *domain.Patient {
	var p = &domain.Patient{
		ID:             domain.ID(model.ID),
		DocumentType:   model.DocumentType,
		DocumentNumber: model.DocumentNumber,
		FirstName:      model.FirstName,
		LastName:       model.LastName,
		BirthDate:      model.BirthDate,
		PhoneNumber:    model.PhoneNumber,
		Email:          model.Email,

		CreatedAt: model.CreatedAt,
	}

	return p
}

func fromDBModels(models Patients) domain.Patients {
	ps := make(domain.Patients, len(models))
	for idx, p := range models {
		ps[idx] = fromDBModel(p)
	}

	return ps
}
