// Package mail delivers notification messages to subscribers. Delivery is
// best-effort, callers log failures and move on.
package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// SMTP submits mail to a relay without authentication, e.g. a local MTA.
type SMTP struct {
	Addr string // host:port
	From string
}

func (m *SMTP) Send(subject, body string, to []string) error {

	if len(to) == 0 {
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.From + "\r\n")
	msg.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(m.Addr, nil, m.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

// Log writes mail to the log instead of sending it. Default in development.
type Log struct{}

func (Log) Send(subject, body string, to []string) error {
	log.Printf("mail to %s: %s", strings.Join(to, ", "), subject)
	return nil
}
