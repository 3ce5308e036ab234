package ports

import (
	"context"
	"time"

	"patient-records-api/internal/domain/patient"
)

type PatientService interface {
	FindPatients(ctx context.Context, filter patient.ListFilter) (*patient.Page, error)
	FindPatientByID(ctx context.Context, id patient.ID) (*patient.Patient, error)
	FindPatientsCreatedAfter(ctx context.Context, ts time.Time) (patient.Patients, error)
	CreatePatient(ctx context.Context, p patient.Patient) (*patient.Patient, error)
	UpdatePatient(ctx context.Context, p patient.Patient) (*patient.Patient, error)
	PatchPatient(ctx context.Context, id patient.ID, changes patient.Changes) (*patient.Patient, error)
	DeletePatient(ctx context.Context, id patient.ID) error
}
