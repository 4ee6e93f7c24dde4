package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/models"
)

// ruleMessages maps a field and its failed tag to the text shown to the visitor.
var ruleMessages = map[string]string{
	"Name.min":         "Name must be at least 2 characters",
	"Name.required":    "Name must be at least 2 characters",
	"Email.required":   "Please enter a valid email address",
	"Email.email":      "Please enter a valid email address",
	"Message.min":      "Message must be at least 10 characters",
	"Message.required": "Message must be at least 10 characters",
}

var contactTemplate = template.Must(template.New("contact").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #8b5cf6; margin-bottom: 20px;">New Contact Form Submission</h2>

  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h3 style="margin-top: 0; color: #333;">Contact Details</h3>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
  </div>

  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px;">
    <h3 style="margin-top: 0; color: #333;">Message</h3>
    <p style="line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
  </div>

  <div style="margin-top: 20px; padding-top: 20px; border-top: 1px solid #e0e0e0;">
    <p style="color: #666; font-size: 14px;">
      This email was sent from the contact form on sumit.codes
    </p>
  </div>
</div>
`))

var headerSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

type EmailService struct {
	mailer   Mailer
	validate *validator.Validate
	from     string
	to       string
	logger   zerolog.Logger
}

func NewEmailService(mailer Mailer, cfg config.SMTPConfig) *EmailService {
	to := cfg.To
	if to == "" {
		to = config.ContactRecipient
	}
	return &EmailService{
		mailer:   mailer,
		validate: validator.New(),
		from:     cfg.From,
		to:       to,
		logger:   log.With().Str("service", "email").Logger(),
	}
}

// Send validates a contact submission and mails it to the site owner. It never
// returns an error; failures are described by the result.
func (s *EmailService) Send(ctx context.Context, form models.ContactFormData) models.EmailResult {
	if msg := s.firstViolation(form); msg != "" {
		return models.EmailResult{Success: false, Message: msg, Outcome: models.EmailInvalid}
	}

	body, err := renderContactEmail(form)
	if err != nil {
		s.logger.Error().Err(err).Msg("error rendering contact email")
		return models.EmailResult{Success: false, Message: config.MsgEmailFailed, Outcome: models.EmailFailed}
	}

	err = s.mailer.Send(ctx, Email{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: form.Email,
		Subject: "Contact Form: Message from " + headerSanitizer.Replace(form.Name),
		HTML:    body,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("replyTo", form.Email).Msg("error sending email")
		return models.EmailResult{Success: false, Message: config.MsgEmailFailed, Outcome: models.EmailFailed}
	}

	return models.EmailResult{Success: true, Message: config.MsgEmailSent, Outcome: models.EmailSent}
}

// Verify checks the mail transport when it supports a dry connection.
func (s *EmailService) Verify(ctx context.Context) error {
	v, ok := s.mailer.(interface {
		Verify(ctx context.Context) error
	})
	if !ok {
		return errors.New("mailer does not support verification")
	}
	return v.Verify(ctx)
}

func (s *EmailService) firstViolation(form models.ContactFormData) string {
	err := s.validate.Struct(form)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return config.MsgValidationFailed
	}
	fe := verrs[0]
	if msg, ok := ruleMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func renderContactEmail(form models.ContactFormData) (string, error) {
	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, form); err != nil {
		return "", err
	}
	return buf.String(), nil
}
