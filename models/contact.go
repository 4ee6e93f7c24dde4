package models

// ContactFormData is the body of a contact form submission.
type ContactFormData struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"min=10"`
}

// EmailOutcome classifies an EmailResult for the transport layer.
type EmailOutcome int

const (
	EmailSent EmailOutcome = iota
	EmailInvalid
	EmailFailed
)

type EmailResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Outcome EmailOutcome `json:"-"`
}
