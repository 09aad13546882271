package email

import (
	"fmt"
	"io"
	"time"

	"github.com/Devansh2835/EventSpark/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// EventDetails is the slice of an event that appears in a confirmation
// mail. Declared here so this package does not import the event domain.
type EventDetails struct {
	Title    string
	Venue    string
	StartsAt time.Time
}

// Sender delivers transactional mail. Tests substitute a recorder fake;
// registration email failures are logged, not surfaced to the student.
type Sender interface {
	SendOTP(to, name, code string) error
	SendRegistrationConfirmation(to, name string, ev EventDetails, qrPNG []byte) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

func (s *SMTPSender) SendOTP(to, name, code string) error {
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Email Verification</h2>
  <p>Hi %s,</p>
  <p>Your verification code is:</p>
  <div style="font-size: 32px; font-weight: bold; letter-spacing: 5px;">%s</div>
  <p>This code expires in 10 minutes. If you didn't request it, ignore this email.</p>
</div>`, name, code)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "EventSpark: verify your email")
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

func (s *SMTPSender) SendRegistrationConfirmation(to, name string, ev EventDetails, qrPNG []byte) error {
	body := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>You're registered!</h2>
  <p>Hi %s,</p>
  <p>Your spot for <strong>%s</strong> is confirmed.</p>
  <p>Venue: %s<br>Starts: %s</p>
  <p>Show this QR code at the entrance:</p>
  <img src="cid:ticket.png" alt="registration QR code">
</div>`, name, ev.Title, ev.Venue, ev.StartsAt.Format(time.RFC1123))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("EventSpark: registration confirmed for %s", ev.Title))
	m.SetBody("text/html", body)
	m.Embed("ticket.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(qrPNG)
		return err
	}))

	return s.dialer.DialAndSend(m)
}
