package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"patient-records-api/internal/domain/patient"
	"patient-records-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) patient.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchPatients(ctx context.Context, filter patient.ListFilter) (patient.Patients, int, error) {
	where, args := listWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, CountPatients+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		pageQuery(where, len(args)),
		append(args, filter.PageSize, filter.Offset())...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select patients: %w", err)
	}

	ps, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}

	return ps, int(total), nil
}

func (r *Repository) FetchPatientByID(ctx context.Context, id patient.ID) (*patient.Patient, error) {
	p, err := scanPatient(r.db.QueryRow(ctx, SelectPatientByID, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) FetchPatientsCreatedAfter(ctx context.Context, ts time.Time) (patient.Patients, error) {
	rows, err := r.db.Query(ctx, SelectPatientsCreatedAfter, ts)
	if err != nil {
		return nil, fmt.Errorf("select patients created after: %w", err)
	}

	return collect(rows)
}

func (r *Repository) ExistsByDocument(ctx context.Context, documentType, documentNumber string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectDocumentExists, documentType, documentNumber).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) CreatePatient(ctx context.Context, req patient.Patient) (*patient.Patient, error) {
	p, err := scanPatient(r.db.QueryRow(
		ctx,
		InsertPatient,
		req.DocumentType, req.DocumentNumber, req.FirstName, req.LastName, req.BirthDate, req.PhoneNumber, req.Email,
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, patient.ErrDuplicateDocument
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) UpdatePatient(ctx context.Context, req patient.Patient) (*patient.Patient, error) {
	p, err := scanPatient(r.db.QueryRow(
		ctx,
		UpdatePatientByID,
		req.DocumentType, req.DocumentNumber, req.FirstName, req.LastName, req.BirthDate, req.PhoneNumber, req.Email,
		int64(req.ID),
	))
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, patient.ErrDuplicateDocument
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func (r *Repository) DeletePatient(ctx context.Context, id patient.ID) (*patient.Patient, error) {
	p, err := scanPatient(r.db.QueryRow(ctx, DeletePatientByID, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(p), nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	p := new(Patient)
	if err := row.Scan(
		&p.ID,
		&p.DocumentType,
		&p.DocumentNumber,
		&p.FirstName,
		&p.LastName,
		&p.BirthDate,
		&p.PhoneNumber,
		&p.Email,

		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	return p, nil
}

func collect(rows pgx.Rows) (patient.Patients, error) {
	defer rows.Close()

	var ps Patients
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(ps), nil
}
