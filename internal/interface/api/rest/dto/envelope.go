package dto

type (
	// Envelope wraps every JSON answer of the patients API.
	Envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    any    `json:"data"`
	}

	ProblemDetails struct {
		Type   string              `json:"type"`
		Title  string              `json:"title"`
		Status int                 `json:"status"`
		Errors map[string][]string `json:"errors"`
	}

	ErrorResponse struct {
		Error   string `json:"error"`
		Details any    `json:"details,omitempty"`
	}
)

func OK(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

const validationProblemType = "https://tools.ietf.org/html/rfc4918#section-11.2"

func ValidationProblem(status int, fields map[string]string) ProblemDetails {
	errs := make(map[string][]string, len(fields))
	for k, v := range fields {
		errs[k] = []string{v}
	}

	return ProblemDetails{
		Type:   validationProblemType,
		Title:  "One or more validation errors occurred.",
		Status: status,
		Errors: errs,
	}
}
