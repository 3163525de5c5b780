package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"
)

var ErrDeliveryFailed = errors.New("email delivery failed")

// Mailer is the outbound email port. Callers must treat a send failure as a
// hard failure: for OTP mail the recipient has no other way to get the code.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string, validFor time.Duration) error
	SendPasswordResetOTP(ctx context.Context, to, code string, validFor time.Duration) error
}

var otpTemplate = template.Must(template.New("otp").Parse(
	`Hello,

Your verification code is {{.Code}}.

It expires in {{.Minutes}} minutes. If you did not request this code, you can ignore this email.

— The InternHub team
`))

var resetTemplate = template.Must(template.New("reset").Parse(
	`Hello,

Your password reset code is {{.Code}}.

It expires in {{.Minutes}} minutes. If you did not request a password reset, you can ignore this email.

— The InternHub team
`))

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string, validFor time.Duration) error {
	return m.send(ctx, to, "Your InternHub verification code", otpTemplate, code, validFor)
}

func (m *SMTPMailer) SendPasswordResetOTP(ctx context.Context, to, code string, validFor time.Duration) error {
	return m.send(ctx, to, "Your InternHub password reset code", resetTemplate, code, validFor)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject string, tmpl *template.Template, code string, validFor time.Duration) error {
	var body bytes.Buffer
	data := struct {
		Code    string
		Minutes int
	}{Code: code, Minutes: int(validFor.Minutes())}
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render otp email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body.String())

	// gomail has no context support; honor cancellation around the dial.
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
