// Package mailer sends transactional email over SMTP. When no SMTP host
// is configured the service keeps working; callers fall back to logging
// or report the feature as unavailable.
package mailer

import (
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/wpras/golfku/config"
)

type Mailer struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured reports whether an SMTP host and user are set.
func (m *Mailer) Configured() bool {
	return m.cfg.SMTP.Host != "" && m.cfg.SMTP.Username != ""
}

// SendOTP emails a one-time code for the given purpose.
func (m *Mailer) SendOTP(to, code, purpose string) error {
	var subject string
	switch purpose {
	case "login":
		subject = "Your GolfKu login code"
	case "reset":
		subject = "Your GolfKu password reset code"
	default:
		subject = "Your GolfKu verification code"
	}
	body := fmt.Sprintf("Your code is: %s\n\nThis code expires in 5 minutes. If you did not request it, you can ignore this email.", code)
	return m.send(to, subject, body, "", nil)
}

// SendScorecard emails a finished round's scorecard PDF as an attachment.
func (m *Mailer) SendScorecard(to, date string, pdf []byte) error {
	subject := fmt.Sprintf("Your Golf Scorecard - %s", date)
	body := "Please find your golf scorecard attached."
	filename := fmt.Sprintf("scorecard_%s.pdf", date)
	return m.send(to, subject, body, filename, pdf)
}

func (m *Mailer) send(to, subject, body, attachName string, attachment []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTP.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if len(attachment) > 0 {
		msg.Attach(attachName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	d := gomail.NewDialer(m.cfg.SMTP.Host, m.cfg.SMTP.Port, m.cfg.SMTP.Username, m.cfg.SMTP.Password)
	return d.DialAndSend(msg)
}
