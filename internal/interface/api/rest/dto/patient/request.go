package patient

import "encoding/json"

type (
	Request struct {
		DocumentType   string  `json:"documentType"`
		DocumentNumber string  `json:"documentNumber"`
		FirstName      string  `json:"firstName"`
		LastName       string  `json:"lastName"`
		BirthDate      string  `json:"birthDate"`
		PhoneNumber    *string `json:"phoneNumber"`
		Email          *string `json:"email"`
	}

	// PatchOperation is one entry of a JSON Patch document.
	PatchOperation struct {
		Op    string          `json:"op"`
		Path  string          `json:"path"`
		Value json.RawMessage `json:"value,omitempty" swaggertype:"string"`
		From  string          `json:"from,omitempty"`
	}
	PatchDocument []PatchOperation
)
