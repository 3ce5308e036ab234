package patient

import "time"

type (
	Patient struct {
		ID             int64     `json:"id"`
		DocumentType   string    `json:"documentType"`
		DocumentNumber string    `json:"documentNumber"`
		FirstName      string    `json:"firstName"`
		LastName       string    `json:"lastName"`
		BirthDate      string    `json:"birthDate"`
		PhoneNumber    *string   `json:"phoneNumber"`
		Email          *string   `json:"email"`
		CreatedAt      time.Time `json:"createdAt"`
	}
	Patients   []Patient
	ListResult struct {
		TotalItems int      `json:"totalItems"`
		Page       int      `json:"page"`
		PageSize   int      `json:"pageSize"`
		Items      Patients `json:"items"`
	}
)
