package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sumitcodes/portfolio-backend/config"
	"github.com/sumitcodes/portfolio-backend/errs"
	"github.com/wneessen/go-mail"
)

// Email is a single outgoing HTML message.
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers composed messages.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// SMTPMailer sends mail through the configured SMTP relay. STARTTLS is used
// when the server offers it; port 465 switches to implicit TLS.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	if m.cfg.Host == "" {
		return nil, fmt.Errorf("%w: SMTP_HOST is not set", errs.ErrConfigMissing)
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTimeout(m.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if m.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.User),
			mail.WithPassword(m.cfg.Password),
		)
	}

	c, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return c, nil
}

// Send dials the relay, delivers email and closes the connection.
func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	msg := mail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return fmt.Errorf("invalid from address %q: %w", email.From, err)
	}
	if err := msg.To(email.To...); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return fmt.Errorf("invalid reply-to address %q: %w", email.ReplyTo, err)
		}
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)

	c, err := m.client()
	if err != nil {
		return err
	}
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email via %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}

	log.Info().Strs("to", email.To).Str("subject", email.Subject).Msg("Successfully sent email via SMTP")
	return nil
}

// Verify connects and authenticates without sending anything.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	c, err := m.client()
	if err != nil {
		return err
	}
	if err := c.DialWithContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s:%d: %w", m.cfg.Host, m.cfg.Port, err)
	}
	return c.Close()
}
