package services

import (
	"sonervous/app/apperror"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text email through the outbound relay.
type Mailer interface {
	Send(to, subject, text string) error
}

// MailService implements Mailer over SMTP.
type MailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailService creates a new MailService
func NewMailService(host string, port int, username, password, from string) *MailService {
	return &MailService{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send relays one message. Failures map to internal errors; there are no
// retries.
func (s *MailService) Send(to, subject, text string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)

	if err := s.dialer.DialAndSend(m); err != nil {
		return apperror.NewInternalError(err.Error(), err)
	}
	return nil
}
