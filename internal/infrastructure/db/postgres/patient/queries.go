package patient

import (
	"fmt"
	"strings"

	domain "patient-records-api/internal/domain/patient"
)

const (
	patientColumns = `patient_id, document_type, document_number, first_name, last_name, birth_date, phone_number, email, created_at`

	CountPatients  = `SELECT COUNT(*) FROM patients`
	SelectPatients = `
		SELECT ` + patientColumns + `
		FROM patients`
	SelectPatientByID = `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE patient_id = $1
	`
	SelectPatientsCreatedAfter = `
		SELECT ` + patientColumns + `
		FROM patients_created_after($1)
	`
	SelectDocumentExists = `
		SELECT EXISTS (
			SELECT 1 FROM patients
			WHERE document_type = $1 AND document_number = $2
		)
	`
	InsertPatient = `
		INSERT INTO patients (document_type, document_number, first_name, last_name, birth_date, phone_number, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + patientColumns
	UpdatePatientByID = `
		UPDATE patients
		SET document_type = $1,
		    document_number = $2,
		    first_name = $3,
		    last_name = $4,
		    birth_date = $5,
		    phone_number = $6,
		    email = $7
		WHERE patient_id = $8
		RETURNING ` + patientColumns
	DeletePatientByID = `
		DELETE FROM patients
		WHERE patient_id = $1
		RETURNING ` + patientColumns
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listWhere builds the shared WHERE clause of the count and page queries.
func listWhere(f domain.ListFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Name != "" {
		args = append(args, contains(f.Name))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n))
	}
	if f.DocumentNumber != "" {
		args = append(args, contains(f.DocumentNumber))
		conds = append(conds, fmt.Sprintf("document_number LIKE $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func pageQuery(where string, argc int) string {
	return fmt.Sprintf("%s%s ORDER BY patient_id LIMIT $%d OFFSET $%d", SelectPatients, where, argc+1, argc+2)
}
