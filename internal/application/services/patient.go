package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"patient-records-api/internal/application/ports"
	domain "patient-records-api/internal/domain/patient"
	"patient-records-api/internal/infrastructure/metrics"
	"patient-records-api/internal/infrastructure/mq"
	"patient-records-api/internal/interface/api/rest/dto/patient"
)

type PatientService struct {
	patientRepository domain.Repository
	mq                ports.RabbitMQ
	mCounter          *prometheus.CounterVec
}

// NewPatientService wires the service. mq may be nil, in which case no
// change events are emitted.
func NewPatientService(
	patientRepository domain.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.PatientService {
	return &PatientService{
		patientRepository: patientRepository,
		mq:                mq,
		mCounter:          mCounter,
	}
}

func (ps *PatientService) FindPatients(ctx context.Context, filter domain.ListFilter) (*domain.Page, error) {
	items, total, err := ps.patientRepository.FetchPatients(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &domain.Page{
		Items:      items,
		TotalItems: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

func (ps *PatientService) FindPatientByID(ctx context.Context, id domain.ID) (*domain.Patient, error) {
	p, err := ps.patientRepository.FetchPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	return p, nil
}

func (ps *PatientService) FindPatientsCreatedAfter(ctx context.Context, ts time.Time) (domain.Patients, error) {
	return ps.patientRepository.FetchPatientsCreatedAfter(ctx, ts)
}

func (ps *PatientService) CreatePatient(ctx context.Context, p domain.Patient) (*domain.Patient, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// fast path only: the unique index decides under concurrent creates
	exists, err := ps.patientRepository.ExistsByDocument(ctx, p.DocumentType, p.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		ps.inc(metrics.PatientConflictTotal)
		return nil, domain.ErrDuplicateDocument
	}

	pRet, err := ps.patientRepository.CreatePatient(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateDocument) {
			ps.inc(metrics.PatientConflictTotal)
		}
		return nil, err
	}

	ps.publish(ctx, http.MethodPost, pRet)
	ps.inc(metrics.PatientCreatedTotal)

	return pRet, nil
}

func (ps *PatientService) UpdatePatient(ctx context.Context, p domain.Patient) (*domain.Patient, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	pRet, err := ps.save(ctx, p)
	if err != nil {
		return nil, err
	}

	ps.publish(ctx, http.MethodPut, pRet)
	ps.inc(metrics.PatientUpdatedTotal)

	return pRet, nil
}

func (ps *PatientService) PatchPatient(ctx context.Context, id domain.ID, changes domain.Changes) (*domain.Patient, error) {
	current, err := ps.FindPatientByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patched, err := changes.ApplyTo(*current)
	if err != nil {
		return nil, err
	}
	patched.Normalize()
	if err = patched.Validate(); err != nil {
		return nil, err
	}

	pRet, err := ps.save(ctx, patched)
	if err != nil {
		return nil, err
	}

	ps.publish(ctx, http.MethodPatch, pRet)
	ps.inc(metrics.PatientPatchedTotal)

	return pRet, nil
}

func (ps *PatientService) DeletePatient(ctx context.Context, id domain.ID) error {
	p, err := ps.patientRepository.DeletePatient(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}

	ps.publish(ctx, http.MethodDelete, p)
	ps.inc(metrics.PatientDeletedTotal)

	return nil
}

func (ps *PatientService) save(ctx context.Context, p domain.Patient) (*domain.Patient, error) {
	pRet, err := ps.patientRepository.UpdatePatient(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateDocument) {
			ps.inc(metrics.PatientConflictTotal)
		}
		return nil, err
	}
	if pRet == nil {
		return nil, domain.ErrNotFound
	}

	return pRet, nil
}

func (ps *PatientService) publish(ctx context.Context, method string, p *domain.Patient) {
	if ps.mq == nil {
		return
	}

	e := mq.Event{
		Id:        uuid.New(),
		TS:        time.Now().UTC(),
		Method:    method,
		PatientID: int64(p.ID),
		Payload:   patient.ToResponsePatient(*p),
	}

	select {
	case ps.mq.GetInputChan() <- e:
	case <-ctx.Done():
	}
}

func (ps *PatientService) inc(result string) {
	if ps.mCounter != nil {
		ps.mCounter.WithLabelValues(result).Inc()
	}
}
