// Package mail delivers the account and security mails of the application.
package mail

import (
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"

	"menuplanner-backend/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends HTML mails through a single SMTP relay.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPSender(host, port, username, password, from string) *SMTPSender {
	s := &SMTPSender{addr: net.JoinHostPort(host, port), from: from}
	if username != "" {
		s.auth = smtp.PlainAuth("", username, password, host)
	}
	return s
}

func (s *SMTPSender) Send(msg Message) error {
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{msg.To}, buildMIME(s.from, msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// LogSender sadece loglar, SMTP ayarlanmamış ortamlar için
type LogSender struct{}

func (LogSender) Send(msg Message) error {
	log.Printf("[MAIL] to=%s subject=%q\n%s", msg.To, msg.Subject, msg.HTML)
	return nil
}

// NewSender picks SMTP when a host is configured and falls back to logging.
func NewSender(cfg *config.Config) Sender {
	if cfg.SMTPHost == "" {
		log.Println("[WARN] SMTP_HOST is not set, mails are only logged.")
		return LogSender{}
	}
	return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
