package mailer

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. Services depend on this interface so tests
// can substitute a recorder.
type Mailer interface {
	SendOTP(to, name, code, purpose string) error
}

type smtpMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTPMailer builds a Mailer from SMTP_* environment variables.
func NewSMTPMailer() Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return &smtpMailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: os.Getenv("SMTP_FROM"),
	}
}

func (m *smtpMailer) SendOTP(to, name, code, purpose string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your %s code", purpose))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour %s code is %s. It expires in 5 minutes.\n", name, purpose, code))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send mail")
		return err
	}
	return nil
}
