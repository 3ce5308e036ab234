package patient

import "time"

type (
	Patient struct {
		ID             int64
		DocumentType   string
		DocumentNumber string
		FirstName      string
		LastName       string
		BirthDate      time.Time
		PhoneNumber    *string
		Email          *string

		CreatedAt time.Time
	}
	Patients []*Patient
)
