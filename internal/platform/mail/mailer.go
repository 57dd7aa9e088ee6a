package mail

import (
	"fmt"

	"ambassador_portal/internal/platform/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers password reset links. Delivery failures are logged by the
// caller and never surfaced to the requester.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

type SMTPMailer struct {
	cfg *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.MailFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Ambassador Portal - Password Reset")
	msg.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Reset Your Password</h2>
			<p>You requested a password reset for your Ambassador Portal account.</p>
			<p>Click the link below to reset your password. This link will expire in 1 hour.</p>
			<p><a href="%[1]s">Reset Password</a></p>
			<p>If you didn't request this, please ignore this email.</p>
			<p>Or copy and paste this link into your browser:</p>
			<p><a href="%[1]s">%[1]s</a></p>
		</div>`, resetURL))

	d := gomail.NewDialer(
		m.cfg.SMTPHost,
		m.cfg.SMTPPort,
		m.cfg.SMTPUser,
		m.cfg.SMTPPassword,
	)

	return d.DialAndSend(msg)
}
