// Package notify emails the site owner when a contact message is saved.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio/internal/contact"
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends a plain-text email per contact message.
type SMTPNotifier struct {
	host string
	port int
	user string
	pass string
	to   string

	send SendFunc
}

// NewSMTPNotifier builds a notifier for the given relay. user and pass are
// required; the message is sent from user to to.
func NewSMTPNotifier(host string, port int, user, pass, to string) (*SMTPNotifier, error) {
	if strings.TrimSpace(user) == "" || strings.TrimSpace(pass) == "" {
		return nil, fmt.Errorf("SMTP credentials not configured")
	}
	if strings.TrimSpace(host) == "" {
		host = "smtp.gmail.com"
	}
	if port == 0 {
		port = 587
	}
	if strings.TrimSpace(to) == "" {
		to = user
	}
	return &SMTPNotifier{
		host: host,
		port: port,
		user: user,
		pass: pass,
		to:   to,
		send: smtp.SendMail,
	}, nil
}

// NotifyContact implements contact.Notifier.
func (n *SMTPNotifier) NotifyContact(ctx context.Context, sub contact.Submission, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	auth := smtp.PlainAuth("", n.user, n.pass, n.host)
	msg := buildMessage(n.user, n.to, sub, id)

	if err := n.send(addr, auth, n.user, []string{n.to}, []byte(msg)); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}
	return nil
}

func buildMessage(from, to string, sub contact.Submission, id int64) string {
	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Saved as message #%d
`, sub.Name, sub.Email, sub.Message, id)

	headers := []string{
		"To: " + to,
		"Subject: " + headerSafe("Portfolio Contact: "+sub.Name),
		"From: " + from,
		"Reply-To: " + headerSafe(sub.Email),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}

// headerSafe strips line breaks so user input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
