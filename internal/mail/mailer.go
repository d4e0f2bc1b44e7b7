// Package mail delivers account confirmation and password-reset emails over
// SMTP. Delivery is fire-and-forget: failures are logged, never surfaced to
// the request that triggered them.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"taskhub_backend/internal/logger"
)

type SMTPMailer struct {
	host        string
	port        string
	user        string
	pass        string
	from        string
	frontendURL string
}

func NewSMTPMailer(host, port, user, pass, from, frontendURL string) *SMTPMailer {
	return &SMTPMailer{
		host:        host,
		port:        port,
		user:        user,
		pass:        pass,
		from:        from,
		frontendURL: frontendURL,
	}
}

func (m *SMTPMailer) SendConfirmation(email, name, token string) {
	link := m.frontendURL + "/confirm/" + token
	body := fmt.Sprintf(
		`<html><body>
<h2>Hi %s, welcome to TaskHub</h2>
<p>Click the link below to confirm your account:</p>
<a href="%s">Confirm account</a>
<p>If you did not create this account, ignore this email.</p>
</body></html>`, name, link)

	go m.send(email, "TaskHub - Confirm your account", body)
}

func (m *SMTPMailer) SendPasswordReset(email, name, token string) {
	link := m.frontendURL + "/forgot-password/" + token
	body := fmt.Sprintf(
		`<html><body>
<h2>Hi %s, you requested a password reset</h2>
<p>Click the link below to set a new password:</p>
<a href="%s">Reset password</a>
<p>If you did not request this, ignore this email.</p>
</body></html>`, name, link)

	go m.send(email, "TaskHub - Reset your password", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) {
	if m.host == "" {
		logger.Warn("email host not configured, skipping delivery", "to", to, "subject", subject)
		return
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		logger.Error("email delivery failed", "to", to, "subject", subject, "error", err)
		return
	}
	logger.Info("email sent", "to", to, "subject", subject)
}
