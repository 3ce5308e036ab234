package validator

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "patient-records-api/internal/domain/patient"
	"patient-records-api/internal/interface/api/rest/dto/patient"
)

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page, size   string
		wantPage     int
		wantPageSize int
		wantErr      error
	}{
		{name: "defaults", wantPage: 1, wantPageSize: 10},
		{name: "explicit", page: "3", size: "25", wantPage: 3, wantPageSize: 25},
		{name: "max page size", page: "1", size: "100", wantPage: 1, wantPageSize: 100},
		{name: "zero page", page: "0", wantErr: ErrInvalidPage},
		{name: "negative page", page: "-2", wantErr: ErrInvalidPage},
		{name: "text page", page: "abc", wantErr: ErrInvalidPage},
		{name: "zero size", size: "0", wantErr: ErrInvalidPageSize},
		{name: "size too big", size: "101", wantErr: ErrInvalidPageSize},
		{name: "last page whose offset fits", page: strconv.Itoa(math.MaxInt/100 + 1), size: "100", wantPage: math.MaxInt/100 + 1, wantPageSize: 100},
		{name: "offset overflows", page: strconv.Itoa(math.MaxInt/100 + 2), size: "100", wantErr: ErrInvalidPage},
		{name: "max int page", page: strconv.Itoa(math.MaxInt), size: "10", wantErr: ErrInvalidPage},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p, ps, err := ValidatePagination(tt.page, tt.size)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, p)
			assert.Equal(t, tt.wantPageSize, ps)
		})
	}
}

func TestParsePatientID(t *testing.T) {
	id, err := ParsePatientID("42")
	require.NoError(t, err)
	assert.Equal(t, domain.ID(42), id)

	for _, bad := range []string{"", "0", "-1", "x1", "1.5"} {
		_, err = ParsePatientID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, bad)
	}
}

func TestParseCreatedAfter(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "", want: time.Time{}},
		{in: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-01T10:20:30", want: time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{in: "2024-03-01T10:20:30+02:00", want: time.Date(2024, 3, 1, 8, 20, 30, 0, time.UTC)},
		{in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseCreatedAfter(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), tt.in)
	}
}

func TestValidatePatient(t *testing.T) {
	phone := strings.Repeat("9", 31)

	tests := []struct {
		name       string
		req        patient.Request
		wantFields []string
	}{
		{
			name: "valid",
			req: patient.Request{
				DocumentType: "CC", DocumentNumber: "1", FirstName: "Ana", LastName: "Diaz", BirthDate: "1990-01-01",
			},
		},
		{
			name:       "empty",
			req:        patient.Request{},
			wantFields: []string{"documentType", "documentNumber", "firstName", "lastName", "birthDate"},
		},
		{
			name: "bad date and long phone",
			req: patient.Request{
				DocumentType: "CC", DocumentNumber: "1", FirstName: "Ana", LastName: "Diaz",
				BirthDate: "01/01/1990", PhoneNumber: &phone,
			},
			wantFields: []string{"birthDate", "phoneNumber"},
		},
		{
			name: "blank names after trimming",
			req: patient.Request{
				DocumentType: "CC", DocumentNumber: "1", FirstName: "   ", LastName: "\t", BirthDate: "1990-01-01",
			},
			wantFields: []string{"firstName", "lastName"},
		},
		{
			name: "document type too long",
			req: patient.Request{
				DocumentType: strings.Repeat("A", 21), DocumentNumber: "1", FirstName: "Ana", LastName: "Diaz", BirthDate: "1990-01-01",
			},
			wantFields: []string{"documentType"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePatient(tt.req)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, errs)
				return
			}
			require.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}
