package mailer

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP connection details. Leave Host empty to run the mailer
// in noop mode: links are logged instead of sent, which is handy in dev.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends transactional email over SMTP.
type Mailer struct {
	cfg  Config
	noop bool
}

// New creates a new Mailer.
func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:  cfg,
		noop: cfg.Host == "",
	}
}

// SendVerificationEmail mails the account-verification link to a new user.
func (m *Mailer) SendVerificationEmail(to, verifyLink string) error {
	if m.noop {
		log.Printf("Mailer not configured, skipping verification email for %s: %s", to, verifyLink)
		return nil
	}

	body := `<h3>Here is your verification link:</h3>
		<h3><a href="` + verifyLink + `">` + verifyLink + `</a></h3>
		<h3>Sincerely,<br/>The board team</h3>`

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Please verify your email before using our services!")
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification email to %s: %w", to, err)
	}
	return nil
}
