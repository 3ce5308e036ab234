package patient

import (
	"context"
	"time"
)

type Repository interface {
	FetchPatients(ctx context.Context, filter ListFilter) (Patients, int, error)
	FetchPatientByID(ctx context.Context, id ID) (*Patient, error)
	FetchPatientsCreatedAfter(ctx context.Context, ts time.Time) (Patients, error)
	ExistsByDocument(ctx context.Context, documentType, documentNumber string) (bool, error)
	CreatePatient(ctx context.Context, req Patient) (*Patient, error)
	UpdatePatient(ctx context.Context, req Patient) (*Patient, error)
	DeletePatient(ctx context.Context, id ID) (*Patient, error)
}
