package patient

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "patient-records-api/internal/domain/patient"
)

var columns = []string{
	"patient_id", "document_type", "document_number", "first_name", "last_name",
	"birth_date", "phone_number", "email", "created_at",
}

var (
	birth   = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	created = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
)

func strPtr(s string) *string { return &s }

func newMock(t *testing.T) (pgxmock.PgxPoolIface, domain.Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewRepository(mock)
}

func patientRow(id int64, first, last string) []any {
	return []any{id, "DNI", "123", first, last, birth, strPtr("+34600000000"), nil, created}
}

func TestRepository_FetchPatients(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.ListFilter
		countSQL  string
		pageSQL   string
		countArgs []any
		pageArgs  []any
		total     int64
		rows      [][]any
		wantLen   int
		wantFirst string
	}{
		{
			name:      "no filters",
			filter:    domain.ListFilter{Page: 1, PageSize: 10},
			countSQL:  `SELECT COUNT(*) FROM patients`,
			pageSQL:   `FROM patients ORDER BY patient_id LIMIT $1 OFFSET $2`,
			pageArgs:  []any{10, 0},
			total:     2,
			rows:      [][]any{patientRow(1, "Leonardo", "Perez"), patientRow(2, "Maria", "Gomez")},
			wantLen:   2,
			wantFirst: "Leonardo",
		},
		{
			name:      "name filter, second page",
			filter:    domain.ListFilter{Page: 2, PageSize: 10, Name: "leo"},
			countSQL:  `SELECT COUNT(*) FROM patients WHERE (first_name ILIKE $1 OR last_name ILIKE $1)`,
			pageSQL:   `WHERE (first_name ILIKE $1 OR last_name ILIKE $1) ORDER BY patient_id LIMIT $2 OFFSET $3`,
			countArgs: []any{"%leo%"},
			pageArgs:  []any{"%leo%", 10, 10},
			total:     11,
			rows:      [][]any{patientRow(11, "Leopoldo", "Ruiz")},
			wantLen:   1,
			wantFirst: "Leopoldo",
		},
		{
			name:      "both filters compose, wildcards escaped",
			filter:    domain.ListFilter{Page: 1, PageSize: 5, Name: "a_b", DocumentNumber: "12%"},
			countSQL:  `WHERE (first_name ILIKE $1 OR last_name ILIKE $1) AND document_number LIKE $2`,
			pageSQL:   `AND document_number LIKE $2 ORDER BY patient_id LIMIT $3 OFFSET $4`,
			countArgs: []any{`%a\_b%`, `%12\%%`},
			pageArgs:  []any{`%a\_b%`, `%12\%%`, 5, 0},
			total:     0,
			wantLen:   0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)

			mock.ExpectQuery(regexp.QuoteMeta(tt.countSQL)).
				WithArgs(tt.countArgs...).
				WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(tt.total))

			rows := pgxmock.NewRows(columns)
			for _, r := range tt.rows {
				rows.AddRow(r...)
			}
			mock.ExpectQuery(regexp.QuoteMeta(tt.pageSQL)).
				WithArgs(tt.pageArgs...).
				WillReturnRows(rows)

			ps, total, err := repo.FetchPatients(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int(tt.total), total)
			require.Len(t, ps, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, ps[0].FirstName)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FetchPatients_CountError(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM patients`)).
		WillReturnError(errors.New("connection reset"))

	_, _, err := repo.FetchPatients(context.Background(), domain.ListFilter{Page: 1, PageSize: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count patients")
}

func TestRepository_FetchPatientByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE patient_id = $1`)).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(patientRow(1, "Ana", "Ruiz")...))

		p, err := repo.FetchPatientByID(context.Background(), 1)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, domain.ID(1), p.ID)
		assert.Equal(t, birth, p.BirthDate)
		assert.Equal(t, created, p.CreatedAt)
		require.NotNil(t, p.PhoneNumber)
		assert.Nil(t, p.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`WHERE patient_id = $1`)).
			WithArgs(int64(404)).
			WillReturnError(pgx.ErrNoRows)

		p, err := repo.FetchPatientByID(context.Background(), 404)
		require.NoError(t, err)
		assert.Nil(t, p)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FetchPatientsCreatedAfter(t *testing.T) {
	mock, repo := newMock(t)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM patients_created_after($1)`)).
		WithArgs(since).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(patientRow(3, "Ana", "Ruiz")...).
			AddRow(patientRow(4, "Luis", "Diaz")...))

	ps, err := repo.FetchPatientsCreatedAfter(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, domain.ID(4), ps[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsByDocument(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS`)).
		WithArgs("DNI", "123").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByDocument(context.Background(), "DNI", "123")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreatePatient(t *testing.T) {
	req := domain.Patient{
		DocumentType:   "DNI",
		DocumentNumber: "123",
		FirstName:      "Ana",
		LastName:       "Ruiz",
		BirthDate:      birth,
	}

	t.Run("inserted", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO patients`)).
			WithArgs("DNI", "123", "Ana", "Ruiz", birth, req.PhoneNumber, req.Email).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(patientRow(9, "Ana", "Ruiz")...))

		p, err := repo.CreatePatient(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.ID(9), p.ID)
		assert.Equal(t, created, p.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique index violation", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO patients`)).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "patients_document_uidx"})

		p, err := repo.CreatePatient(context.Background(), req)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, domain.ErrDuplicateDocument)
	})
}

func TestRepository_UpdatePatient(t *testing.T) {
	req := domain.Patient{
		ID:             5,
		DocumentType:   "DNI",
		DocumentNumber: "123",
		FirstName:      "Ana",
		LastName:       "Ruiz",
		BirthDate:      birth,
		Email:          strPtr("ana@example.com"),
	}

	tests := []struct {
		name    string
		expect  func(m pgxmock.PgxPoolIface)
		wantNil bool
		wantErr error
	}{
		{
			name: "updated",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta(`UPDATE patients`)).
					WithArgs("DNI", "123", "Ana", "Ruiz", birth, req.PhoneNumber, req.Email, int64(5)).
					WillReturnRows(pgxmock.NewRows(columns).AddRow(patientRow(5, "Ana", "Ruiz")...))
			},
		},
		{
			name: "missing row",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta(`UPDATE patients`)).WillReturnError(pgx.ErrNoRows)
			},
			wantNil: true,
		},
		{
			name: "duplicate document",
			expect: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(regexp.QuoteMeta(`UPDATE patients`)).WillReturnError(&pgconn.PgError{Code: "23505"})
			},
			wantNil: true,
			wantErr: domain.ErrDuplicateDocument,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMock(t)
			tt.expect(mock)

			p, err := repo.UpdatePatient(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantNil, p == nil)
		})
	}
}

func TestRepository_DeletePatient(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM patients`)).
			WithArgs(int64(2)).
			WillReturnRows(pgxmock.NewRows(columns).AddRow(patientRow(2, "Ana", "Ruiz")...))

		p, err := repo.DeletePatient(context.Background(), 2)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, domain.ID(2), p.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		mock, repo := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM patients`)).
			WithArgs(int64(2)).
			WillReturnError(pgx.ErrNoRows)

		p, err := repo.DeletePatient(context.Background(), 2)
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}
